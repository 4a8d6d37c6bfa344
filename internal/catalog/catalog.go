// Package catalog is a SQLite-backed store of box scores. It implements
// provider.Provider by drawing games whose season falls inside the mode's
// year range.
package catalog

import (
	"bufio"
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/mlbwordle/apps/go-server/assets"
	"github.com/robalobadob/mlbwordle/apps/go-server/internal/boxscore"
	"github.com/robalobadob/mlbwordle/apps/go-server/internal/provider"
)

// Catalog implements provider.Provider over the boxscores table.
type Catalog struct {
	db     *sql.DB
	ranges provider.Ranges
}

// Open opens the database at dsn and applies migrations.
func Open(dsn string, ranges provider.Ranges) (*Catalog, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db, assets.FS); err != nil {
		_ = db.Close()
		return nil, err
	}
	if ranges == nil {
		ranges = provider.DefaultRanges()
	}
	return &Catalog{db: db, ranges: ranges}, nil
}

// Close closes the underlying database.
func (c *Catalog) Close() error { return c.db.Close() }

// Put stores (or replaces) a game. The season and date come from the box
// score text; games without a parseable date are rejected.
func (c *Catalog) Put(ctx context.Context, g provider.Game) error {
	if g.GamePK <= 0 {
		return fmt.Errorf("catalog: invalid gamePK %d", g.GamePK)
	}
	d, err := boxscore.ExtractDate(g.BoxScore)
	if err != nil {
		return fmt.Errorf("catalog: game %d: %w", g.GamePK, err)
	}
	_, err = c.db.ExecContext(ctx, `
        INSERT INTO boxscores (game_pk, season, game_date, text)
        VALUES (?, ?, ?, ?)
        ON CONFLICT(game_pk) DO UPDATE SET
            season=excluded.season, game_date=excluded.game_date, text=excluded.text`,
		g.GamePK, d.Year(), fmt.Sprintf("%04d-%02d-%02d", d.Year(), d.Month(), d.Day()), g.BoxScore,
	)
	return err
}

// Count returns how many games are playable in mode.
func (c *Catalog) Count(ctx context.Context, mode provider.Mode) (int, error) {
	yr, err := c.ranges.For(mode)
	if err != nil {
		return 0, err
	}
	var n int
	err = c.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM boxscores WHERE season BETWEEN ? AND ?`, yr.From, yr.To,
	).Scan(&n)
	return n, err
}

// RandomGame picks uniformly among the mode's games.
func (c *Catalog) RandomGame(ctx context.Context, mode provider.Mode) (provider.Game, error) {
	n, err := c.Count(ctx, mode)
	if err != nil {
		return provider.Game{}, err
	}
	if n == 0 {
		return provider.Game{}, fmt.Errorf("%w: %s", provider.ErrNoGames, mode)
	}
	off, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return provider.Game{}, err
	}
	return c.nth(ctx, mode, int(off.Int64()))
}

// nth returns the i-th game of mode ordered by gamePK.
func (c *Catalog) nth(ctx context.Context, mode provider.Mode, i int) (provider.Game, error) {
	yr, err := c.ranges.For(mode)
	if err != nil {
		return provider.Game{}, err
	}
	var g provider.Game
	err = c.db.QueryRowContext(ctx, `
        SELECT game_pk, text FROM boxscores
        WHERE season BETWEEN ? AND ?
        ORDER BY game_pk
        LIMIT 1 OFFSET ?`, yr.From, yr.To, i,
	).Scan(&g.GamePK, &g.BoxScore)
	if errors.Is(err, sql.ErrNoRows) {
		return provider.Game{}, fmt.Errorf("%w: %s", provider.ErrNoGames, mode)
	}
	return g, err
}

// GameIDs lists the mode's game ids in ascending order.
func (c *Catalog) GameIDs(ctx context.Context, mode provider.Mode) ([]int, error) {
	yr, err := c.ranges.For(mode)
	if err != nil {
		return nil, err
	}
	rows, err := c.db.QueryContext(ctx,
		`SELECT game_pk FROM boxscores WHERE season BETWEEN ? AND ? ORDER BY game_pk`, yr.From, yr.To,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", provider.ErrNoGames, mode)
	}
	return out, nil
}

func (c *Catalog) BoxScore(ctx context.Context, gamePK int) (provider.Game, error) {
	g := provider.Game{GamePK: gamePK}
	err := c.db.QueryRowContext(ctx, `SELECT text FROM boxscores WHERE game_pk=?`, gamePK).Scan(&g.BoxScore)
	if errors.Is(err, sql.ErrNoRows) {
		return provider.Game{}, fmt.Errorf("%w: %d", provider.ErrNotFound, gamePK)
	}
	return g, err
}

// Import reads JSON lines shaped like the statistics script's random-game
// output ({"gamePK": n, "boxscore": "..."}) and stores each game. Lines that
// fail to decode or carry no date are skipped and logged; the count of
// stored games is returned.
func (c *Catalog) Import(ctx context.Context, r io.Reader) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	stored, lineNo := 0, 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		var g provider.Game
		if err := json.Unmarshal([]byte(line), &g); err != nil {
			log.Warn().Err(err).Int("line", lineNo).Msg("import: bad json")
			continue
		}
		if err := c.Put(ctx, g); err != nil {
			log.Warn().Err(err).Int("line", lineNo).Msg("import: skipped game")
			continue
		}
		stored++
	}
	return stored, sc.Err()
}

// SeedIfEmpty imports the embedded seed games when the catalog holds none.
func (c *Catalog) SeedIfEmpty(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM boxscores`).Scan(&n); err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	f, err := assets.Seed()
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return c.Import(ctx, f)
}
