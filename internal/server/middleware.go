package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// APIKeyAuth returns middleware that validates the X-API-Key header.
func APIKeyAuth(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-API-Key")
			if key == "" {
				http.Error(w, `{"error":"missing API key"}`, http.StatusUnauthorized)
				return
			}
			if key != apiKey {
				http.Error(w, `{"error":"invalid API key"}`, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestLogging returns middleware that logs each request.
func RequestLogging(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration", time.Since(start).String(),
			)
		})
	}
}

// CORS adds permissive CORS headers for local development.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key, X-User-Login")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type contextKey int

const userIDKey contextKey = iota

// defaultLogin identifies requests that carry no login header. Single-user
// deployments never need to set the header.
const defaultLogin = "local"

// Identity resolves the requesting user from the X-User-Login header
// (falling back to the local single-user login) and stores the user ID in
// the request context. Logins resolve through the users table once and are
// cached on the Server for its lifetime.
func (s *Server) Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		login := r.Header.Get("X-User-Login")
		if login == "" {
			login = defaultLogin
		}

		s.userCacheMu.Lock()
		id, ok := s.userCache[login]
		s.userCacheMu.Unlock()

		if !ok {
			var err error
			id, err = s.db.GetOrCreateUser(r.Context(), login, "")
			if err != nil {
				s.log.Error("resolving user", "login", login, "error", err)
				http.Error(w, `{"error":"cannot resolve user"}`, http.StatusInternalServerError)
				return
			}
			s.userCacheMu.Lock()
			s.userCache[login] = id
			s.userCacheMu.Unlock()
		}

		ctx := context.WithValue(r.Context(), userIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// mustUserID extracts the resolved user ID from the request context. Writes
// a 500 and returns false when the identity middleware did not run.
func mustUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := r.Context().Value(userIDKey).(uuid.UUID)
	if !ok {
		http.Error(w, `{"error":"no user in request"}`, http.StatusInternalServerError)
		return uuid.Nil, false
	}
	return id, true
}

// statusWriter wraps ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
