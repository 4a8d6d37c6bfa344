// apps/go-server/internal/game/types.go
//
// Core type definitions for the date-guessing engine.
// Defines:
//   - Date: a validated calendar date used as a round's target.
//   - Guess: a player's (month, day, year) submission.
//   - FeedbackLevel: per-component result of a guess.
//   - Status: round lifecycle state (playing/won/lost).
//   - Sentinel errors shared by the engine and its callers.

package game

import (
	"errors"
	"fmt"
)

// MaxGuesses is the number of attempts a player gets per round.
const MaxGuesses = 5

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrMalformedGuess  = errors.New("malformed guess")
	ErrRoundEnded      = errors.New("round already ended")
	ErrRoundNotEnded   = errors.New("round not ended")
	ErrOutcomeRecorded = errors.New("round outcome already recorded")
)

// FeedbackLevel represents the evaluation of one date component.
// Values match the class names the web client colours tiles with.
type FeedbackLevel string

const (
	Correct   FeedbackLevel = "correct"
	VeryClose FeedbackLevel = "very-close"
	Close     FeedbackLevel = "close"
	Incorrect FeedbackLevel = "incorrect"
)

// Status is the coarse state of a round.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// Ended reports whether the status is terminal.
func (s Status) Ended() bool { return s == StatusWon || s == StatusLost }

// Date is an immutable calendar date. The zero value is not a valid date.
type Date struct {
	year  int
	month int
	day   int
}

// NewDate validates and builds a Date.
func NewDate(year, month, day int) (Date, error) {
	if year < 1000 || year > 9999 {
		return Date{}, fmt.Errorf("%w: year %d", ErrInvalidDate, year)
	}
	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("%w: month %d", ErrInvalidDate, month)
	}
	if day < 1 || day > daysIn(year, month) {
		return Date{}, fmt.Errorf("%w: day %d for %04d-%02d", ErrInvalidDate, day, year, month)
	}
	return Date{year: year, month: month, day: day}, nil
}

func (d Date) Year() int  { return d.year }
func (d Date) Month() int { return d.month }
func (d Date) Day() int   { return d.day }

// IsZero reports whether d was never constructed through NewDate.
func (d Date) IsZero() bool { return d == Date{} }

// String formats the date as MM-DD-YYYY, the layout players type guesses in.
func (d Date) String() string {
	return fmt.Sprintf("%02d-%02d-%04d", d.month, d.day, d.year)
}

func daysIn(year, month int) int {
	switch month {
	case 2:
		if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// Guess is a player's submission. Components are not calendar-checked:
// 02-31-2020 is a legal guess and is scored component by component.
type Guess struct {
	Month int `json:"month"`
	Day   int `json:"day"`
	Year  int `json:"year"`
}

// Matches reports whether the guess names exactly d.
func (g Guess) Matches(d Date) bool {
	return g.Month == d.month && g.Day == d.day && g.Year == d.year
}

func (g Guess) String() string {
	return fmt.Sprintf("%02d-%02d-%04d", g.Month, g.Day, g.Year)
}

// FeedbackResult is the per-component evaluation of one guess plus the
// round status after applying it.
type FeedbackResult struct {
	Month  FeedbackLevel `json:"month"`
	Day    FeedbackLevel `json:"day"`
	Year   FeedbackLevel `json:"year"`
	Status Status        `json:"status"`
}
