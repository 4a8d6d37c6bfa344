package catalog

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/robalobadob/mlbwordle/apps/go-server/internal/provider"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// DailyIndex returns a deterministic index for a date and mode using
// HMAC(salt, YYYY-MM-DD|mode) % n.
func DailyIndex(date time.Time, mode provider.Mode, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date) + "|" + string(mode)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for modulus distribution
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// DailyGame returns the game every player of mode gets on date. The pick is
// stable for a given catalog content and salt.
func (c *Catalog) DailyGame(ctx context.Context, mode provider.Mode, date time.Time, salt string) (provider.Game, error) {
	n, err := c.Count(ctx, mode)
	if err != nil {
		return provider.Game{}, err
	}
	if n == 0 {
		return provider.Game{}, fmt.Errorf("%w: %s", provider.ErrNoGames, mode)
	}
	return c.nth(ctx, mode, DailyIndex(date, mode, salt, n))
}
