package adapthttp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"emberguard/internal/app"
	"emberguard/internal/domain"
)

type contextKey string

const (
	userContextKey      contextKey = "user"
	workspaceContextKey contextKey = "workspace"
)

const (
	workspaceCookie = "sid"
	sessionCookie   = "session"
)

// workspaceMiddleware makes sure every API request carries a workspace id,
// issuing a browser-session cookie on first contact.
func (s *Server) workspaceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := ""
		if c, err := r.Cookie(workspaceCookie); err == nil {
			if _, err := uuid.Parse(c.Value); err == nil {
				sid = c.Value
			}
		}
		if sid == "" {
			sid = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     workspaceCookie,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				Secure:   r.TLS != nil,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := context.WithValue(r.Context(), workspaceContextKey, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userMiddleware attaches the logged-in user, if any. It never rejects a
// request; anonymous shoppers have full use of the store.
func (s *Server) userMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.authSvc == nil {
			next.ServeHTTP(w, r)
			return
		}

		var user *domain.User
		if remoteUser := r.Header.Get("Remote-User"); s.trustRemoteUser && remoteUser != "" {
			u, err := s.authSvc.ValidateForwardAuth(r.Context(), remoteUser)
			if err == nil {
				user = u
			}
		}
		if user == nil {
			if cookie, err := r.Cookie(sessionCookie); err == nil {
				u, err := s.authSvc.ValidateSession(r.Context(), cookie.Value)
				switch {
				case err == nil:
					user = u
				case errors.Is(err, app.ErrSessionNotFound), errors.Is(err, app.ErrSessionExpired), errors.Is(err, app.ErrUserNotFound):
					clearCookie(w, sessionCookie)
				default:
					s.logger.WithError(err).Warn("session lookup failed")
				}
			}
		}

		if user != nil {
			r = r.WithContext(context.WithValue(r.Context(), userContextKey, user))
		}
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware writes one access log line per request.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		entry := s.logger.WithFields(log.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rec.status,
			"duration_ms": float64(time.Since(start)) / float64(time.Millisecond),
		})
		switch {
		case rec.status >= 500:
			entry.Error("request")
		case rec.status >= 400:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	})
}

func workspaceID(r *http.Request) string {
	sid, _ := r.Context().Value(workspaceContextKey).(string)
	return sid
}

func currentUser(r *http.Request) *domain.User {
	u, _ := r.Context().Value(userContextKey).(*domain.User)
	return u
}

func clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
