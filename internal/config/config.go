package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Catalog CatalogConfig
	Session SessionConfig
	UI      UIConfig
	Log     LogConfig
}

// CatalogConfig says where reference data comes from.
type CatalogConfig struct {
	Path string // sqlite file, seeded on first run
	File string // optional TOML catalog; overrides Path when set
}

// SessionConfig tunes the wizard timers.
type SessionConfig struct {
	CountdownSeconds int           `mapstructure:"countdown_seconds"`
	TickInterval     time.Duration `mapstructure:"tick_interval"`
	FlashDuration    time.Duration `mapstructure:"flash_duration"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	AltScreen bool   `mapstructure:"alt_screen"`
	Clipboard string // system, osc52 or auto
}

// LogConfig controls where log output goes while the TUI runs.
type LogConfig struct {
	File string
}

// Path returns the config file location. TXWIZARD_CONFIG wins.
func Path() string {
	if p := os.Getenv("TXWIZARD_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "txwizard", "config.toml")
}

func defaults(v *viper.Viper) {
	v.SetDefault("catalog.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "txwizard", "catalog.db"))
	v.SetDefault("catalog.file", "")
	v.SetDefault("session.countdown_seconds", 300)
	v.SetDefault("session.tick_interval", "1s")
	v.SetDefault("session.flash_duration", "2s")
	v.SetDefault("ui.alt_screen", true)
	v.SetDefault("ui.clipboard", "auto")
	v.SetDefault("log.file", "")
}

// Load reads configuration from file and env. Env var overrides use prefix TXWIZARD_.
// An explicit path, when non-empty, takes precedence over Path().
func Load(path string) (Config, error) {
	v := viper.New()
	defaults(v)

	v.SetConfigType("toml")
	if path == "" {
		path = Path()
	}
	v.SetConfigFile(path)

	v.SetEnvPrefix("TXWIZARD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil && !missing(err) {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Session.CountdownSeconds <= 0 {
		return Config{}, fmt.Errorf("session.countdown_seconds must be positive, got %d", c.Session.CountdownSeconds)
	}
	return c, nil
}

func missing(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.As(err, &nf) || errors.Is(err, fs.ErrNotExist)
}

// Default returns the built-in configuration.
func Default() Config {
	v := viper.New()
	defaults(v)
	var c Config
	_ = v.Unmarshal(&c)
	return c
}

// Save writes the provided config to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if path == "" {
		path = Path()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("catalog.path", cfg.Catalog.Path)
	v.Set("catalog.file", cfg.Catalog.File)
	v.Set("session.countdown_seconds", cfg.Session.CountdownSeconds)
	v.Set("session.tick_interval", cfg.Session.TickInterval.String())
	v.Set("session.flash_duration", cfg.Session.FlashDuration.String())
	v.Set("ui.alt_screen", cfg.UI.AltScreen)
	v.Set("ui.clipboard", cfg.UI.Clipboard)
	v.Set("log.file", cfg.Log.File)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
