// apps/go-server/internal/httpserver/server.go
//
// HTTP server wiring for the MLB Wordle backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/api/modes".
//   - Relay endpoints mirroring the statistics script: /api/game-ids, /api/random-game,
//     /api/game-boxscore/{id}.
//   - Game endpoints bound to the anonymous session cookie: /api/round, /api/round/guess,
//     /api/mode, /api/stats, /api/daily.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so the session cookie works).
//   - The session cookie is an HS256 JWT naming the in-memory session; see session.go.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/mlbwordle/apps/go-server/internal/provider"
	"github.com/robalobadob/mlbwordle/apps/go-server/internal/store"
)

// DailySource hands out the deterministic game of the day. The catalog
// implements it; the daily endpoint is disabled when none is configured.
type DailySource interface {
	DailyGame(ctx context.Context, mode provider.Mode, date time.Time, salt string) (provider.Game, error)
}

// Options configures a Server.
type Options struct {
	Store          store.Store
	Provider       provider.Provider
	Daily          DailySource // optional
	Ranges         provider.Ranges
	Origins        []string
	SessionSecret  string
	SessionTTL     time.Duration
	DailySalt      string
	SecureCookies  bool
	RequestTimeout time.Duration
}

// Server bundles router, session store and box score provider.
type Server struct {
	r    *chi.Mux
	opts Options
	now  func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	if opts.Ranges == nil {
		opts.Ranges = provider.DefaultRanges()
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	if opts.SessionSecret == "" {
		opts.SessionSecret = "dev_secret_change_me"
	}
	s := &Server{r: chi.NewRouter(), opts: opts, now: time.Now}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                    // add X-Request-ID
	s.r.Use(chimw.RealIP)                       // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger))        // request-scoped logger
	s.r.Use(accessLog)                          // one line per request
	s.r.Use(chimw.Recoverer)                    // recover from panics
	s.r.Use(chimw.Timeout(opts.RequestTimeout)) // bound handler time
	s.r.Use(jsonContentType)                    // default JSON responses
	s.r.Use(cors(opts.Origins))                 // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "mlbwordle-go",
			"endpoints": []string{
				"/health", "/api/modes", "/api/game-ids", "/api/random-game", "/api/game-boxscore/{id}",
				"POST /api/round", "GET /api/round", "POST /api/round/guess", "POST /api/mode",
				"GET /api/stats", "POST /api/daily",
			},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	s.r.Route("/api", func(r chi.Router) {
		r.Get("/modes", s.handleModes)
		s.mountRelay(r)
		s.mountGame(r)
		s.mountDaily(r)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})
	return s
}

// Start serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured origins; a request from
// any other origin gets no Allow-Origin header.
func cors(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "Origin")
			if origin := r.Header.Get("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Access-Control-Allow-Credentials", "true")
					w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
					w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
					w.Header().Set("Access-Control-Max-Age", "600")
				}
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("reqId", chimw.GetReqID(r.Context())).
		Int("status", status).
		Int("size", size).
		Dur("took", d).
		Msg("request")
})

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// modeRes is one entry of GET /api/modes.
type modeRes struct {
	Name provider.Mode `json:"name"`
	From int           `json:"from"`
	To   int           `json:"to"`
}

func (s *Server) handleModes(w http.ResponseWriter, r *http.Request) {
	out := []modeRes{}
	for _, m := range s.opts.Ranges.Modes() {
		yr := s.opts.Ranges[m]
		out = append(out, modeRes{Name: m, From: yr.From, To: yr.To})
	}
	writeJSON(w, http.StatusOK, out)
}
