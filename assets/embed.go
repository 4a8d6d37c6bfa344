// Package assets embeds the catalog migrations and the small seed set of box
// scores the server falls back to when no catalog has been imported.
package assets

import (
	"embed"
	"io"
)

// FS holds sql/*.sql (catalog migrations, applied in lexical order) and
// seed_games.jsonl.
//
//go:embed sql/*.sql seed_games.jsonl
var FS embed.FS

// Seed opens the embedded box score seed (JSON lines, one game per line).
func Seed() (io.ReadCloser, error) {
	return FS.Open("seed_games.jsonl")
}
