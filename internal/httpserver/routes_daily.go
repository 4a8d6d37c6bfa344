// apps/go-server/internal/httpserver/routes_daily.go
//
// HTTP route for the "Daily Challenge".
//   - POST /api/daily {"mode"} → start (or resume) today's game for that mode
//
// Every player of a mode gets the same game on a given UTC day; the pick is
// HMAC(salt, date|mode) over the catalog (see catalog.DailyIndex). A daily
// round still in progress is reused instead of being restarted, so refreshing
// the page does not reset the guesses. Each daily is played once per session:
// asking again after it finished returns the result with "played": true.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/mlbwordle/apps/go-server/internal/catalog"
	"github.com/robalobadob/mlbwordle/apps/go-server/internal/game"
	"github.com/robalobadob/mlbwordle/apps/go-server/internal/provider"
)

// mountDaily registers /daily. Without a daily source it answers 404.
func (s *Server) mountDaily(r chi.Router) {
	r.Post("/daily", s.handleDaily)
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	if s.opts.Daily == nil {
		writeError(w, http.StatusNotFound, "daily_disabled")
		return
	}
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
		if mode, err = provider.ParseMode(*req.Mode); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid mode")
			return
		}
	}

	now := s.now()
	key := dailyKey(now, mode)
	if v, ok := sess.DailyPlayed(key); ok {
		res := toRoundRes(v)
		res.Played = true
		writeJSON(w, http.StatusOK, res)
		return
	}
	if v, err := sess.View(); err == nil && v.DailyKey == key && v.Status == game.StatusPlaying {
		writeJSON(w, http.StatusOK, toRoundRes(v))
		return
	}
	if mode != sess.Mode() {
		sess.SwitchMode(mode)
	}

	if err := s.beginRound(r.Context(), sess, 1, key, func(ctx context.Context) (provider.Game, error) {
		return s.opts.Daily.DailyGame(ctx, mode, now, s.opts.DailySalt)
	}); err != nil {
		s.providerError(w, r, err)
		return
	}
	v, _ := sess.View()
	writeJSON(w, http.StatusOK, toRoundRes(v))
}

// dailyKey names one day's game in one mode.
func dailyKey(t time.Time, mode provider.Mode) string {
	return catalog.DateKey(t) + "|" + string(mode)
}
