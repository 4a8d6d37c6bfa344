// apps/go-server/main.go
//
// Entry point for the MLB Wordle Go server.
//   - mlbwordle serve                  → HTTP API (default when no subcommand is given)
//   - mlbwordle catalog import <file>  → load JSON-lines box scores into the catalog
//   - mlbwordle catalog count          → games available per mode
//
// Settings come from the environment (optionally a .env file); see internal/config.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/mlbwordle/apps/go-server/internal/catalog"
	"github.com/robalobadob/mlbwordle/apps/go-server/internal/config"
	"github.com/robalobadob/mlbwordle/apps/go-server/internal/logging"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(ctx).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCommand(ctx context.Context) *cobra.Command {
	serve := newServeCommand(ctx)
	cmd := &cobra.Command{
		Use:           "mlbwordle",
		Short:         "Guess the date of an MLB game from its box score.",
		RunE:          serve.RunE,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(serve, newCatalogCommand(ctx))
	return cmd
}

// setup loads config and installs the logger. The returned func flushes the
// log file, if any.
func setup() (config.Config, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	closer, err := logging.Setup(logging.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("logging: %w", err)
	}
	done := func() {
		if closer != nil {
			_ = closer.Close()
		}
	}
	return cfg, done, nil
}

func openCatalog(cfg config.Config) (*catalog.Catalog, error) {
	cat, err := catalog.Open(cfg.DBPath, cfg.Ranges)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", cfg.DBPath, err)
	}
	log.Debug().Str("path", cfg.DBPath).Msg("catalog opened")
	return cat, nil
}
