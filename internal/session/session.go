// apps/go-server/internal/session/session.go
//
// Player session: the state the web client used to keep in component state.
// A Session owns one difficulty mode, the current round with its redacted
// box score, and one Stats aggregate for the lifetime of the process.
//
// Rules:
//   - Stats change only when a round ends, exactly once per round.
//   - Starting a new round or switching mode discards an unfinished round
//     without recording it.
//   - A daily round is keyed by date and mode; once finished, its view is
//     kept so the same daily cannot be played again.
//   - All methods lock the session; handlers may share one across requests.

package session

import (
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/mlbwordle/apps/go-server/internal/game"
	"github.com/robalobadob/mlbwordle/apps/go-server/internal/provider"
)

var ErrNoRound = errors.New("no active round")

// Session is one player's game state.
type Session struct {
	ID string

	mu        sync.Mutex
	mode      provider.Mode
	round     *game.Round
	gamePK    int
	display   string
	dailyKey  string
	dailyDone map[string]View
	stats     game.Stats
	updatedAt time.Time
}

// New creates an empty session in mode.
func New(id string, mode provider.Mode) *Session {
	return &Session{ID: id, mode: mode, dailyDone: map[string]View{}, updatedAt: time.Now()}
}

// Outcome is what a guess returns to the caller.
type Outcome struct {
	Feedback  game.FeedbackResult
	Guesses   int
	Remaining int
	// Answer and GamePK are set once the round has ended.
	Answer string
	GamePK int
	// Recorded reports that this guess ended the round and stats were updated.
	Recorded bool
}

// View is a point-in-time copy of the current round for rendering.
type View struct {
	RoundID   string
	Mode      provider.Mode
	GamePK    int
	BoxScore  string
	Daily     bool
	DailyKey  string
	Status    game.Status
	Guesses   []GuessView
	Remaining int
	Answer    string
}

// GuessView pairs a past guess with its feedback.
type GuessView struct {
	Guess    game.Guess
	Feedback game.FeedbackResult
}

// Begin installs a new round. display is the redacted box score shown to the
// player; dailyKey is empty for ordinary rounds.
func (s *Session) Begin(r *game.Round, gamePK int, display, dailyKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.round = r
	s.gamePK = gamePK
	s.display = display
	s.dailyKey = dailyKey
	s.touch()
}

// DailyPlayed returns the finished daily round stored under key.
func (s *Session) DailyPlayed(key string) (View, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.dailyDone[key]
	return v, ok
}

// Guess submits g to the current round and folds a finished round into the
// session stats.
func (s *Session) Guess(g game.Guess) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.round == nil {
		return Outcome{}, ErrNoRound
	}
	s.touch()

	fb, err := s.round.Submit(g)
	if err != nil {
		return Outcome{Feedback: fb}, err
	}
	out := Outcome{
		Feedback:  fb,
		Guesses:   len(s.round.Guesses()),
		Remaining: s.round.Remaining(),
	}
	if fb.Status.Ended() {
		if err := s.stats.Record(s.round); err != nil {
			return out, err
		}
		out.Recorded = true
		out.Answer = s.round.Target().String()
		out.GamePK = s.gamePK
		if s.dailyKey != "" {
			s.dailyDone[s.dailyKey] = s.view()
		}
	}
	return out, nil
}

// SwitchMode changes difficulty and abandons the current round unrecorded.
func (s *Session) SwitchMode(m provider.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = m
	s.round = nil
	s.gamePK = 0
	s.display = ""
	s.dailyKey = ""
	s.touch()
}

func (s *Session) Mode() provider.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Stats returns a copy of the aggregate.
func (s *Session) Stats() game.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats.Snapshot()
}

// UpdatedAt is the last time the session was used.
func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// View returns the current round, or ErrNoRound.
func (s *Session) View() (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.round == nil {
		return View{}, ErrNoRound
	}
	return s.view(), nil
}

func (s *Session) view() View {
	r := s.round
	v := View{
		RoundID:   r.ID(),
		Mode:      s.mode,
		GamePK:    s.gamePK,
		BoxScore:  s.display,
		Daily:     s.dailyKey != "",
		DailyKey:  s.dailyKey,
		Status:    r.Status(),
		Remaining: r.Remaining(),
	}
	for _, g := range r.Guesses() {
		v.Guesses = append(v.Guesses, GuessView{Guess: g, Feedback: game.Evaluate(r.Target(), g)})
	}
	if r.Status().Ended() {
		v.Answer = r.Target().String()
	}
	return v
}

func (s *Session) touch() { s.updatedAt = time.Now() }
