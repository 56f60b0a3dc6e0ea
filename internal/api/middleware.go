package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/campusfest/memories/internal/db"
	"github.com/campusfest/memories/internal/errors"
)

type ctxKeyUser struct{}

// sessionCookie is the fallback token carrier for browser requests that
// cannot set an Authorization header.
const sessionCookie = "memories_session"

// userFrom returns the authenticated account on the request, if any.
func userFrom(ctx context.Context) *db.User {
	u, _ := ctx.Value(ctxKeyUser{}).(*db.User)
	return u
}

// viewerID returns the authenticated account id, or "" for anonymous
// requests.
func viewerID(r *http.Request) string {
	if u := userFrom(r.Context()); u != nil {
		return u.ID
	}
	return ""
}

// bearerToken extracts the session token from the Authorization header or
// the session cookie.
func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return token
		}
	}
	if c, err := r.Cookie(sessionCookie); err == nil {
		return c.Value
	}
	return ""
}

// requireSession rejects requests without a valid session.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := s.auth.Authenticate(bearerToken(r))
		if err != nil {
			writeError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKeyUser{}, user)))
	})
}

// optionalSession resolves a session when one is presented but admits
// anonymous requests. Invalid tokens are treated as anonymous, so a stale
// cookie never blocks browsing.
func (s *Server) optionalSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := bearerToken(r); token != "" {
			if user, err := s.auth.Authenticate(token); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), ctxKeyUser{}, user))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs one line per request with status and duration.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Infof("[api] %s %s %d %s request_id:%s",
			r.Method, r.URL.Path, ww.Status(), time.Since(start), middleware.GetReqID(r.Context()))
	})
}

// writeError renders a typed error as the JSON error envelope. Unexpected
// error values fall back to a 500.
func writeError(w http.ResponseWriter, err error) {
	gErr, ok := err.(*errors.GalleryError)
	if !ok {
		gErr = errors.NewInternal(err)
	}
	if gErr.Status >= 500 {
		log.Errorf("[api] %s", gErr.Message)
	}
	writeJSON(w, gErr.Status, map[string]any{
		"error": map[string]any{
			"code":    gErr.Code,
			"message": gErr.Message,
			"details": gErr.Details,
		},
	})
}
