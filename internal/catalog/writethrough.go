package catalog

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/mlbwordle/apps/go-server/internal/provider"
)

// WriteThrough serves games from an upstream provider and keeps a copy of
// every box score it sees in the catalog. Caching is best effort: a failed
// Put is logged and the upstream game is still returned.
type WriteThrough struct {
	Upstream provider.Provider
	Catalog  *Catalog
}

func (w *WriteThrough) RandomGame(ctx context.Context, mode provider.Mode) (provider.Game, error) {
	g, err := w.Upstream.RandomGame(ctx, mode)
	if err != nil {
		return g, err
	}
	w.keep(ctx, g)
	return g, nil
}

func (w *WriteThrough) GameIDs(ctx context.Context, mode provider.Mode) ([]int, error) {
	return w.Upstream.GameIDs(ctx, mode)
}

// BoxScore prefers the cached copy and only asks upstream on a miss.
func (w *WriteThrough) BoxScore(ctx context.Context, gamePK int) (provider.Game, error) {
	if g, err := w.Catalog.BoxScore(ctx, gamePK); err == nil {
		return g, nil
	}
	g, err := w.Upstream.BoxScore(ctx, gamePK)
	if err != nil {
		return g, err
	}
	w.keep(ctx, g)
	return g, nil
}

func (w *WriteThrough) keep(ctx context.Context, g provider.Game) {
	if err := w.Catalog.Put(ctx, g); err != nil {
		log.Warn().Err(err).Int("gamePK", g.GamePK).Msg("cache box score")
	}
}
