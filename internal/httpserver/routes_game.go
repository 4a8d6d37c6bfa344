// apps/go-server/internal/httpserver/routes_game.go
//
// Game endpoints. Each request resolves the caller's session (session.go),
// then drives the round/stats rules in internal/game through it:
//   - POST /api/round       → fetch a box score for the session's mode and start a round
//   - GET  /api/round       → current round (redacted box score + guesses so far)
//   - POST /api/round/guess → submit MM/DD/YYYY, get per-component feedback
//   - POST /api/mode        → switch difficulty (abandons the round unrecorded)
//   - GET  /api/stats       → session statistics

package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/mlbwordle/apps/go-server/internal/boxscore"
	"github.com/robalobadob/mlbwordle/apps/go-server/internal/game"
	"github.com/robalobadob/mlbwordle/apps/go-server/internal/provider"
	"github.com/robalobadob/mlbwordle/apps/go-server/internal/session"
)

// fetchAttempts bounds provider retries when a box score carries no usable date.
const fetchAttempts = 3

func (s *Server) mountGame(r chi.Router) {
	r.Post("/round", s.handleNewRound)
	r.Get("/round", s.handleGetRound)
	r.Post("/round/guess", s.handleGuess)
	r.Post("/mode", s.handleMode)
	r.Get("/stats", s.handleStats)
}

// ------------------------------- payloads ----------------------------------

type modeReq struct {
	Mode *string `json:"mode"`
}

// formField accepts either a JSON string ("04") or number (4).
type formField string

func (f *formField) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = formField(s)
		return nil
	}
	*f = formField(b)
	return nil
}

type guessReq struct {
	Month formField `json:"month"`
	Day   formField `json:"day"`
	Year  formField `json:"year"`
}

type feedbackRes struct {
	Month game.FeedbackLevel `json:"month"`
	Day   game.FeedbackLevel `json:"day"`
	Year  game.FeedbackLevel `json:"year"`
}

type guessRow struct {
	Month    int         `json:"month"`
	Day      int         `json:"day"`
	Year     int         `json:"year"`
	Feedback feedbackRes `json:"feedback"`
}

type roundRes struct {
	RoundID    string        `json:"roundId"`
	Mode       provider.Mode `json:"mode"`
	BoxScore   string        `json:"boxscore"`
	Daily      bool          `json:"daily"`
	Played     bool          `json:"played,omitempty"`
	MaxGuesses int           `json:"maxGuesses"`
	Status     game.Status   `json:"status"`
	Remaining  int           `json:"remaining"`
	Guesses    []guessRow    `json:"guesses"`
	Answer     string        `json:"answer,omitempty"`
	GamePK     int           `json:"gamePK,omitempty"`
}

type guessRes struct {
	Feedback  feedbackRes `json:"feedback"`
	Status    game.Status `json:"status"`
	Guesses   int         `json:"guesses"`
	Remaining int         `json:"remaining"`
	Answer    string      `json:"answer,omitempty"`
	GamePK    int         `json:"gamePK,omitempty"`
}

type statsRes struct {
	game.Stats
	AvgGuessesPerWin float64 `json:"avgGuessesPerWin"`
	WinRate          float64 `json:"winRate"`
	Distribution     []int   `json:"distribution"`
}

func toFeedback(fb game.FeedbackResult) feedbackRes {
	return feedbackRes{Month: fb.Month, Day: fb.Day, Year: fb.Year}
}

func toRoundRes(v session.View) roundRes {
	out := roundRes{
		RoundID:    v.RoundID,
		Mode:       v.Mode,
		BoxScore:   v.BoxScore,
		Daily:      v.Daily,
		MaxGuesses: game.MaxGuesses,
		Status:     v.Status,
		Remaining:  v.Remaining,
		Guesses:    []guessRow{},
		Answer:     v.Answer,
	}
	if v.Answer != "" {
		out.GamePK = v.GamePK
	}
	for _, g := range v.Guesses {
		out.Guesses = append(out.Guesses, guessRow{
			Month: g.Guess.Month, Day: g.Guess.Day, Year: g.Guess.Year,
			Feedback: toFeedback(g.Feedback),
		})
	}
	return out
}

func round2(f float64) float64 { return math.Round(f*100) / 100 }

// ------------------------------- handlers ----------------------------------

// handleNewRound starts a round in the requested mode (or the session's
// current one). Switching mode here abandons the previous round like
// POST /api/mode does.
func (s *Server) handleNewRound(w http.ResponseWriter, r *http.Request) {
	sess, err := s.currentSession(w, r)
	if err != nil {
		s.internalError(w, r, err, "session")
		return
	}
	var req modeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	mode := sess.Mode()
	if req.Mode != nil {
		m, err := provider.ParseMode(*req.Mode)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid mode")
			return
		}
		if m != mode {
			sess.SwitchMode(m)
			mode = m
		}
	}

	if err := s.beginRound(r.Context(), sess, fetchAttempts, "", func(ctx context.Context) (provider.Game, error) {
		return s.opts.Provider.RandomGame(ctx, mode)
	}); err != nil {
		s.providerError(w, r, err)
		return
	}
	v, _ := sess.View()
	writeJSON(w, http.StatusOK, toRoundRes(v))
}

// beginRound fetches a game, extracts its date and installs a new round on
// sess. A box score without a usable date is refetched up to attempts times.
func (s *Server) beginRound(ctx context.Context, sess *session.Session, attempts int, dailyKey string,
	fetch func(context.Context) (provider.Game, error)) error {
	var lastErr error
	for i := 0; i < attempts; i++ {
		g, err := fetch(ctx)
		if err != nil {
			return err
		}
		target, err := boxscore.ExtractDate(g.BoxScore)
		if err == nil {
			var rnd *game.Round
			if rnd, err = game.StartRound(target); err == nil {
				sess.Begin(rnd, g.GamePK, boxscore.Redact(g.BoxScore), dailyKey)
				return nil
			}
		}
		if !errors.Is(err, game.ErrInvalidDate) && !errors.Is(err, boxscore.ErrNoDate) {
			return err
		}
		zerolog.Ctx(ctx).Warn().Err(err).Int("gamePK", g.GamePK).Int("attempt", i+1).Msg("box score without usable date")
		lastErr = err
	}
	return lastErr
}

func (s *Server) handleGetRound(w http.ResponseWriter, r *http.Request) {
	sess, err := s.currentSession(w, r)
	if err != nil {
		s.internalError(w, r, err, "session")
		return
	}
	v, err := sess.View()
	if err != nil {
		writeError(w, http.StatusNotFound, "no_round")
		return
	}
	writeJSON(w, http.StatusOK, toRoundRes(v))
}

// handleGuess parses the three form fields, applies the guess and, when the
// round ends, reveals the answer. Stats are folded in by the session.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	sess, err := s.currentSession(w, r)
	if err != nil {
		s.internalError(w, r, err, "session")
		return
	}
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	g, err := game.ParseGuess(string(req.Month), string(req.Day), string(req.Year))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out, err := sess.Guess(g)
	switch {
	case errors.Is(err, session.ErrNoRound):
		writeError(w, http.StatusConflict, "no_round")
		return
	case errors.Is(err, game.ErrRoundEnded):
		writeError(w, http.StatusConflict, "round_ended")
		return
	case err != nil:
		s.internalError(w, r, err, "guess")
		return
	}

	res := guessRes{
		Feedback:  toFeedback(out.Feedback),
		Status:    out.Feedback.Status,
		Guesses:   out.Guesses,
		Remaining: out.Remaining,
		Answer:    out.Answer,
		GamePK:    out.GamePK,
	}
	if out.Recorded {
		hlog.FromRequest(r).Info().Str("session", sess.ID).Str("status", string(res.Status)).
			Int("guesses", res.Guesses).Msg("round finished")
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleMode(w http.ResponseWriter, r *http.Request) {
	sess, err := s.currentSession(w, r)
	if err != nil {
		s.internalError(w, r, err, "session")
		return
	}
	var req modeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Mode == nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	m, err := provider.ParseMode(*req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid mode")
		return
	}
	sess.SwitchMode(m)
	writeJSON(w, http.StatusOK, map[string]provider.Mode{"mode": m})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	sess, err := s.currentSession(w, r)
	if err != nil {
		s.internalError(w, r, err, "session")
		return
	}
	st := sess.Stats()
	dist := st.Distribution()
	writeJSON(w, http.StatusOK, statsRes{
		Stats:            st,
		AvgGuessesPerWin: round2(st.AverageGuessesPerWin()),
		WinRate:          round2(st.WinRate()),
		Distribution:     dist[:],
	})
}

// ------------------------------- errors ------------------------------------

// providerError maps provider/catalog failures onto HTTP statuses.
func (s *Server) providerError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, provider.ErrUnknownMode):
		writeError(w, http.StatusBadRequest, "Invalid mode")
	case errors.Is(err, provider.ErrNoGames):
		writeError(w, http.StatusNotFound, "no_games")
	case errors.Is(err, provider.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("provider")
		writeError(w, http.StatusInternalServerError, "provider_failed")
	}
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error, what string) {
	hlog.FromRequest(r).Error().Err(err).Str("op", what).Msg("internal error")
	writeError(w, http.StatusInternalServerError, "internal_error")
}
