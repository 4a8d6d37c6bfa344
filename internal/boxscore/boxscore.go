// Package boxscore extracts the game date from box score text and redacts it
// for display.
//
// The statistics script renders a box score as plain text whose trailing
// lines are:
//
//	...
//	<game date>
//	<blank>
//	<blank>
//
// so the date sits on the third line from the end.
package boxscore

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robalobadob/mlbwordle/apps/go-server/internal/game"
)

// Mask replaces the redacted trailer in displayed box scores.
const Mask = "**********"

// trailer is the number of lines hidden from players (date + two blanks).
const trailer = 3

var ErrNoDate = errors.New("box score has no date line")

var layouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"Monday, January 2, 2006",
	"Mon, Jan 2, 2006",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
}

// ExtractDate finds and parses the date line. Errors wrap game.ErrInvalidDate
// when a line exists but does not hold a usable date.
func ExtractDate(text string) (game.Date, error) {
	lines := splitLines(text)
	if len(lines) < trailer {
		return game.Date{}, ErrNoDate
	}
	raw := strings.TrimSpace(lines[len(lines)-trailer])
	if raw == "" {
		return game.Date{}, ErrNoDate
	}
	for _, layout := range layouts {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		return game.NewDate(t.Year(), int(t.Month()), t.Day())
	}
	return game.Date{}, fmt.Errorf("%w: unrecognised date line %q", game.ErrInvalidDate, raw)
}

// Redact drops the trailer and appends Mask.
func Redact(text string) string {
	lines := splitLines(text)
	if len(lines) < trailer {
		return Mask
	}
	kept := append(lines[:len(lines)-trailer:len(lines)-trailer], Mask)
	return strings.Join(kept, "\n")
}

func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
