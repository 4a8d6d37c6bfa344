package provider

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Mode is a named difficulty level. Each maps to a span of seasons the
// provider may draw games from.
type Mode string

const (
	Beginner     Mode = "Beginner"
	Intermediate Mode = "Intermediate"
	Expert       Mode = "Expert"
)

var ErrUnknownMode = errors.New("invalid mode")

// ParseMode matches case-insensitively. An empty string selects Beginner.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "beginner":
		return Beginner, nil
	case "intermediate":
		return Intermediate, nil
	case "expert":
		return Expert, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// YearRange is an inclusive span of seasons.
type YearRange struct {
	From int `json:"from" toml:"from"`
	To   int `json:"to" toml:"to"`
}

// Contains reports whether season lies within the range.
func (r YearRange) Contains(season int) bool { return season >= r.From && season <= r.To }

// Ranges maps each mode to its seasons.
type Ranges map[Mode]YearRange

// DefaultRanges mirrors the game-id collections the statistics database was
// seeded with.
func DefaultRanges() Ranges {
	return Ranges{
		Beginner:     {From: 2021, To: 2024},
		Intermediate: {From: 2000, To: 2024},
		Expert:       {From: 1980, To: 2024},
	}
}

// For returns the range for m.
func (r Ranges) For(m Mode) (YearRange, error) {
	yr, ok := r[m]
	if !ok {
		return YearRange{}, fmt.Errorf("%w: %q", ErrUnknownMode, m)
	}
	return yr, nil
}

// Modes lists configured modes ordered from easiest (narrowest span) to hardest.
func (r Ranges) Modes() []Mode {
	out := make([]Mode, 0, len(r))
	for m := range r {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := r[out[i]], r[out[j]]
		if a.To-a.From != b.To-b.From {
			return a.To-a.From < b.To-b.From
		}
		return out[i] < out[j]
	})
	return out
}
