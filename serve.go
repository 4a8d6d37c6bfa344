package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/mlbwordle/apps/go-server/internal/catalog"
	"github.com/robalobadob/mlbwordle/apps/go-server/internal/config"
	"github.com/robalobadob/mlbwordle/apps/go-server/internal/httpserver"
	"github.com/robalobadob/mlbwordle/apps/go-server/internal/provider"
	"github.com/robalobadob/mlbwordle/apps/go-server/internal/store"
)

func newServeCommand(ctx context.Context) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, done, err := setup()
			if err != nil {
				return err
			}
			defer done()
			if port != "" {
				cfg.Port = port
			}
			return serve(ctx, cfg)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT)")
	return cmd
}

func serve(ctx context.Context, cfg config.Config) error {
	cat, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer cat.Close()

	if n, err := cat.SeedIfEmpty(ctx); err != nil {
		log.Warn().Err(err).Msg("seed catalog")
	} else if n > 0 {
		log.Info().Int("games", n).Msg("seeded empty catalog")
	}

	prov := selectProvider(cfg, cat)

	mem := store.NewMemoryStore()
	go store.Janitor(ctx, mem, cfg.SessionTTL, janitorInterval(cfg.SessionTTL))

	srv := httpserver.New(httpserver.Options{
		Store:          mem,
		Provider:       prov,
		Daily:          cat,
		Ranges:         cfg.Ranges,
		Origins:        cfg.ClientOrigins,
		SessionSecret:  cfg.SessionSecret,
		SessionTTL:     cfg.SessionTTL,
		DailySalt:      cfg.DailySalt,
		SecureCookies:  cfg.Production,
		RequestTimeout: cfg.ScriptTimeout + 5*time.Second, // room for one slow script call
	})

	log.Info().Str("port", cfg.Port).Str("provider", cfg.Provider).Msg("starting go-server")
	if err := srv.Start(ctx, ":"+cfg.Port); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}

// selectProvider serves rounds from the catalog, or from the statistics
// script with every fetched box score written through to the catalog.
func selectProvider(cfg config.Config, cat *catalog.Catalog) provider.Provider {
	if cfg.Provider != config.ProviderScript {
		return cat
	}
	return &catalog.WriteThrough{
		Upstream: &provider.Script{
			Bin:     cfg.PythonBin,
			Path:    cfg.StatsScript,
			Timeout: cfg.ScriptTimeout,
		},
		Catalog: cat,
	}
}

func janitorInterval(ttl time.Duration) time.Duration {
	if d := ttl / 4; d > time.Minute {
		return d
	}
	return time.Minute
}
