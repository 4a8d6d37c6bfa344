// apps/go-server/internal/game/engine.go
//
// Core engine for a single date-guessing round.
// Responsibilities:
//   - Start rounds against a validated target date.
//   - Score guesses component by component (month, day, year).
//   - Track state transitions: playing → won/lost, with a hard cap of MaxGuesses.
//
// Notes:
//   - The engine does no I/O. Box score text and target dates come from the
//     provider packages; input strings are parsed at the HTTP boundary (ParseGuess).
package game

import (
	"fmt"

	"github.com/google/uuid"
)

// Round holds the state of one play-through. Guesses and status are only
// changed through Submit; status is derived and cannot be set directly.
type Round struct {
	id       string
	target   Date
	guesses  []Guess
	status   Status
	recorded bool
}

// StartRound creates a fresh round with no guesses.
func StartRound(target Date) (*Round, error) {
	if target.IsZero() {
		return nil, fmt.Errorf("%w: empty target", ErrInvalidDate)
	}
	// Re-validate so a Date built by hand elsewhere cannot slip through.
	if _, err := NewDate(target.year, target.month, target.day); err != nil {
		return nil, err
	}
	return &Round{
		id:      uuid.NewString(),
		target:  target,
		guesses: make([]Guess, 0, MaxGuesses),
		status:  StatusPlaying,
	}, nil
}

func (r *Round) ID() string     { return r.id }
func (r *Round) Target() Date   { return r.target }
func (r *Round) Status() Status { return r.status }
func (r *Round) Recorded() bool { return r.recorded }

// Guesses returns a copy of the submitted guesses in order.
func (r *Round) Guesses() []Guess {
	out := make([]Guess, len(r.guesses))
	copy(out, r.guesses)
	return out
}

// Remaining is the number of guesses left before the round is lost.
func (r *Round) Remaining() int {
	if r.status.Ended() {
		return 0
	}
	return MaxGuesses - len(r.guesses)
}

// Submit applies a guess and returns its feedback.
//
// State transitions:
//   - Exact match on all three components → won.
//   - Otherwise, the MaxGuesses-th guess → lost.
//
// Submitting to an ended round is a caller error (ErrRoundEnded).
func (r *Round) Submit(g Guess) (FeedbackResult, error) {
	if r.status.Ended() {
		return FeedbackResult{Status: r.status}, fmt.Errorf("%w: round %s is %s", ErrRoundEnded, r.id, r.status)
	}
	r.guesses = append(r.guesses, g)

	res := Evaluate(r.target, g)
	switch {
	case g.Matches(r.target):
		r.status = StatusWon
	case len(r.guesses) >= MaxGuesses:
		r.status = StatusLost
	}
	res.Status = r.status
	return res, nil
}

// Evaluate scores g against target without touching any round state.
// The returned Status is left empty.
func Evaluate(target Date, g Guess) FeedbackResult {
	return FeedbackResult{
		Month: scoreCoarse(g.Month, target.month),
		Day:   scoreDay(g.Day, target.day),
		Year:  scoreCoarse(g.Year, target.year),
	}
}

// scoreDay uses the three-tier scale: ≤2 very close, ≤7 close.
func scoreDay(guess, actual int) FeedbackLevel {
	d := abs(guess - actual)
	switch {
	case d == 0:
		return Correct
	case d <= 2:
		return VeryClose
	case d <= 7:
		return Close
	default:
		return Incorrect
	}
}

// scoreCoarse is used for month and year: only an off-by-one is close.
func scoreCoarse(guess, actual int) FeedbackLevel {
	switch abs(guess - actual) {
	case 0:
		return Correct
	case 1:
		return Close
	default:
		return Incorrect
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
