package commands

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/txwizard/internal/catalog"
	"github.com/jask/txwizard/internal/clipboard"
	"github.com/jask/txwizard/internal/config"
	"github.com/jask/txwizard/internal/database"
	"github.com/jask/txwizard/internal/database/repository"
	"github.com/jask/txwizard/internal/tui"
	"github.com/jask/txwizard/internal/wizard"
)

var (
	cfgPath   string
	catalogDB string
	logFile   string
	cfg       config.Config
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "txwizard",
		Short:        "Guided transfer request wizard",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if catalogDB != "" {
				c.Catalog.Path = catalogDB
			}
			if logFile != "" {
				c.Log.File = logFile
			}
			cfg = c
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWizard(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ~/.config/txwizard/config.toml)")
	root.PersistentFlags().StringVar(&catalogDB, "catalog-db", "", "catalog sqlite file (overrides catalog.path)")
	root.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs here while the wizard runs")

	root.AddCommand(catalogCmd(), configCmd())
	return root
}

func runWizard(ctx context.Context) error {
	closeLog, err := setupLogging(cfg.Log.File)
	if err != nil {
		return err
	}
	defer closeLog()

	cat, err := loadCatalog(ctx)
	if err != nil {
		return err
	}
	clip, err := clipboard.New(cfg.UI.Clipboard)
	if err != nil {
		return err
	}

	ctrl := wizard.New(cat, wizard.Options{
		Clipboard:        clip,
		CountdownSeconds: cfg.Session.CountdownSeconds,
		TickInterval:     cfg.Session.TickInterval,
		FlashDuration:    cfg.Session.FlashDuration,
	})

	var opts []tea.ProgramOption
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if _, err := tea.NewProgram(tui.New(ctrl), opts...).Run(); err != nil {
		return fmt.Errorf("run wizard: %w", err)
	}
	return nil
}

// setupLogging routes the standard logger away from the terminal the TUI
// owns.
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	f, err := tea.LogToFile(path, "txwizard")
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return func() { _ = f.Close() }, nil
}

// openCatalogDB opens the catalog database, migrating and seeding it on
// first use.
func openCatalogDB(ctx context.Context) (*sql.DB, error) {
	path := cfg.Catalog.Path
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := database.RunMigrations(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := database.SeedDefaults(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seed defaults: %w", err)
	}
	return db, nil
}

// loadCatalog reads the catalog from catalog.file when set, otherwise from
// the sqlite store.
func loadCatalog(ctx context.Context) (catalog.Catalog, error) {
	if cfg.Catalog.File != "" {
		c, err := catalog.LoadFile(cfg.Catalog.File)
		if err != nil {
			return catalog.Catalog{}, fmt.Errorf("load catalog %s: %w", cfg.Catalog.File, err)
		}
		return c, nil
	}

	db, err := openCatalogDB(ctx)
	if err != nil {
		return catalog.Catalog{}, err
	}
	defer db.Close()

	c, err := repository.NewCatalogRepo(db).Load(ctx)
	if err != nil {
		return catalog.Catalog{}, fmt.Errorf("load catalog: %w", err)
	}
	if err := catalog.Validate(c); err != nil {
		return catalog.Catalog{}, fmt.Errorf("stored catalog: %w", err)
	}
	return c, nil
}
