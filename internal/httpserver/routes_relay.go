// apps/go-server/internal/httpserver/routes_relay.go
//
// Relay endpoints. They expose the box score provider directly, with the
// same payload shapes the statistics script prints:
//   - GET /api/game-ids?mode=Expert     → {"game_ids": [...]}
//   - GET /api/random-game?mode=Expert  → {"gamePK": 1, "boxscore": "..."}
//   - GET /api/game-boxscore/{id}       → {"boxscore": "..."}
//
// The random game is returned unredacted; rounds go through /api/round.

package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/mlbwordle/apps/go-server/internal/provider"
)

func (s *Server) mountRelay(r chi.Router) {
	r.Get("/game-ids", s.handleGameIDs)
	r.Get("/random-game", s.handleRandomGame)
	r.Get("/game-boxscore/{id}", s.handleGameBoxScore)
}

// queryMode reads ?mode=, defaulting to Beginner when absent.
func queryMode(w http.ResponseWriter, r *http.Request) (provider.Mode, bool) {
	m, err := provider.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid mode")
		return "", false
	}
	return m, true
}

func (s *Server) handleGameIDs(w http.ResponseWriter, r *http.Request) {
	mode, ok := queryMode(w, r)
	if !ok {
		return
	}
	ids, err := s.opts.Provider.GameIDs(r.Context(), mode)
	if err != nil {
		s.providerError(w, r, err)
		return
	}
	if ids == nil {
		ids = []int{}
	}
	writeJSON(w, http.StatusOK, map[string][]int{"game_ids": ids})
}

func (s *Server) handleRandomGame(w http.ResponseWriter, r *http.Request) {
	mode, ok := queryMode(w, r)
	if !ok {
		return
	}
	g, err := s.opts.Provider.RandomGame(r.Context(), mode)
	if err != nil {
		s.providerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleGameBoxScore(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_game_id")
		return
	}
	g, err := s.opts.Provider.BoxScore(r.Context(), id)
	if err != nil {
		s.providerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"boxscore": g.BoxScore})
}
