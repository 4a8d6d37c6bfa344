package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newCatalogCommand(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the box score catalog.",
	}
	cmd.AddCommand(newCatalogImportCommand(ctx), newCatalogCountCommand(ctx))
	return cmd
}

func newCatalogImportCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: `Import JSON lines of {"gamePK","boxscore"} ("-" reads stdin).`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, done, err := setup()
			if err != nil {
				return err
			}
			defer done()
			cat, err := openCatalog(cfg)
			if err != nil {
				return err
			}
			defer cat.Close()

			in := cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			n, err := cat.Import(ctx, in)
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d games\n", n)
			return nil
		},
	}
}

func newCatalogCountCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Show how many games each mode can draw from.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, done, err := setup()
			if err != nil {
				return err
			}
			defer done()
			cat, err := openCatalog(cfg)
			if err != nil {
				return err
			}
			defer cat.Close()

			for _, m := range cfg.Ranges.Modes() {
				n, err := cat.Count(ctx, m)
				if err != nil {
					return err
				}
				yr := cfg.Ranges[m]
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %d-%d  %d games\n", m, yr.From, yr.To, n)
			}
			return nil
		},
	}
}
