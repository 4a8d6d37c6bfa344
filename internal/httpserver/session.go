package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/mlbwordle/apps/go-server/internal/provider"
	"github.com/robalobadob/mlbwordle/apps/go-server/internal/session"
)

const (
	sessionCookieName  = "mlbwordle_session"
	sessionTokenHeader = "X-Session-Token"
)

var errBadToken = errors.New("invalid session token")

// signSession creates an HS256 JWT naming the session id.
func (s *Server) signSession(id string) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.opts.SessionTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": id,
		"iat": now.Unix(),
		"exp": exp.Unix(),
	})
	ss, err := t.SignedString([]byte(s.opts.SessionSecret))
	return ss, exp, err
}

// parseSession validates a token against the server clock and returns the
// session id it names and its expiry.
func (s *Server) parseSession(tok string) (string, time.Time, error) {
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.opts.SessionSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !t.Valid {
		return "", time.Time{}, errBadToken
	}
	id, _ := claims["sid"].(string)
	exp, err := claims.GetExpirationTime()
	if id == "" || err != nil || exp == nil {
		return "", time.Time{}, errBadToken
	}
	return id, exp.Time, nil
}

// bearerOrCookie extracts a session token from the Authorization header or
// the session cookie.
func bearerOrCookie(r *http.Request) string {
	// Authorization: Bearer <token>
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(sessionCookieName); err == nil {
		return c.Value
	}
	return ""
}

// currentSession returns the caller's session, creating one (and issuing a
// fresh token) when the request carries none, an invalid one, or one naming
// a session that has since been swept. Tokens slide: one past half its
// lifetime is reissued, so only idle sessions expire.
func (s *Server) currentSession(w http.ResponseWriter, r *http.Request) (*session.Session, error) {
	if tok := bearerOrCookie(r); tok != "" {
		if id, exp, err := s.parseSession(tok); err == nil {
			if sess, err := s.opts.Store.Get(r.Context(), id); err == nil {
				if exp.Sub(s.now()) < s.opts.SessionTTL/2 {
					if err := s.issueToken(w, sess.ID); err != nil {
						return nil, err
					}
				}
				return sess, nil
			}
		}
	}

	sess := session.New(uuid.NewString(), provider.Beginner)
	if err := s.opts.Store.Save(r.Context(), sess); err != nil {
		return nil, err
	}
	if err := s.issueToken(w, sess.ID); err != nil {
		return nil, err
	}
	hlog.FromRequest(r).Debug().Str("session", sess.ID).Msg("new session")
	return sess, nil
}

// issueToken signs a token for id and hands it out as cookie and header.
func (s *Server) issueToken(w http.ResponseWriter, id string) error {
	tok, exp, err := s.signSession(id)
	if err != nil {
		return err
	}
	s.setSessionCookie(w, tok, exp)
	w.Header().Set(sessionTokenHeader, tok)
	return nil
}

// setSessionCookie writes the session cookie with appropriate security attributes.
func (s *Server) setSessionCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.opts.SecureCookies {
		sameSite = http.SameSiteNoneMode // required for cross-site clients when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.SecureCookies,
		SameSite: sameSite,
		Expires:  exp,
	})
}
