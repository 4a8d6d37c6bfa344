// apps/go-server/internal/provider/provider.go
//
// Data provider contract for box scores.
// A provider hands out games for a difficulty mode; each game is the opaque
// box score text plus its MLB game id (gamePK). Extracting the date from the
// text is done by the boxscore package, not here.
//
// Implementations:
//   - Script (this package): relays to the statistics script as a subprocess.
//   - catalog.Catalog: SQLite-backed cache of box scores.

package provider

import (
	"context"
	"errors"
)

var (
	ErrNoGames  = errors.New("no games for mode")
	ErrNotFound = errors.New("game not found")
)

// Game is one box score as handed out by a provider.
type Game struct {
	GamePK   int    `json:"gamePK"`
	BoxScore string `json:"boxscore"`
}

// Provider supplies box scores per difficulty mode.
type Provider interface {
	// RandomGame picks a game for mode.
	RandomGame(ctx context.Context, mode Mode) (Game, error)

	// GameIDs lists the game ids available for mode.
	GameIDs(ctx context.Context, mode Mode) ([]int, error)

	// BoxScore fetches one game by id.
	BoxScore(ctx context.Context, gamePK int) (Game, error)
}
