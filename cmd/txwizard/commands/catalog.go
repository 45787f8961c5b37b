package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/jask/txwizard/internal/catalog"
	"github.com/jask/txwizard/internal/database"
)

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect or replace the reference catalog",
	}
	cmd.AddCommand(catalogListCmd(), catalogShowCmd(), catalogImportCmd())
	return cmd
}

func catalogListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print networks, plans and payment methods",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCatalog(cmd.Context())
			if err != nil {
				return err
			}

			networks := make([][]string, 0, len(c.Networks))
			for _, n := range c.Networks {
				networks = append(networks, []string{n.ID, n.Name, n.Short})
			}
			plans := make([][]string, 0, len(c.Plans))
			for _, p := range c.Plans {
				plans = append(plans, []string{p.Amount, "$" + p.Fee})
			}
			methods := make([][]string, 0, len(c.PaymentMethods))
			for _, m := range c.PaymentMethods {
				methods = append(methods, []string{m.Name, m.Network, m.Address})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Networks")
			fmt.Fprintln(out, renderTable([]string{"ID", "NAME", "SHORT"}, networks))
			fmt.Fprintln(out, "Plans")
			fmt.Fprintln(out, renderTable([]string{"AMOUNT", "FEE"}, plans))
			fmt.Fprintln(out, "Payment methods")
			fmt.Fprintln(out, renderTable([]string{"NAME", "NETWORK", "ADDRESS"}, methods))
			if c.SupportURL != "" {
				fmt.Fprintf(out, "Support: %s\n", c.SupportURL)
			}
			return nil
		},
	}
}

func catalogShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <network-id>",
		Short: "Print one network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			id := strings.TrimSpace(args[0])
			n, ok := c.NetworkByID(id)
			if !ok {
				if s, found := c.SuggestNetwork(id); found {
					return fmt.Errorf("unknown network %q; did you mean %q?", id, s)
				}
				return fmt.Errorf("unknown network %q", id)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "NAME", "SHORT"},
				[][]string{{n.ID, n.Name, n.Short}},
			))
			return nil
		},
	}
}

func catalogImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.toml>",
		Short: "Validate a TOML catalog and replace the stored one with it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.LoadFile(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			db, err := openCatalogDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.ImportCatalog(ctx, db, c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d networks, %d plans, %d payment methods into %s\n",
				len(c.Networks), len(c.Plans), len(c.PaymentMethods), cfg.Catalog.Path)
			return nil
		},
	}
}

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		String()
}
