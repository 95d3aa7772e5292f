package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"skirentals-backend/internal/domain"
	"skirentals-backend/internal/logger"
	"skirentals-backend/internal/security"
)

type contextKey string

const identityKey contextKey = "identity"

// IdentityMiddleware resolves the caller's identity from a Bearer token.
// A missing or invalid token degrades to the anonymous identity rather than
// rejecting the request; individual operations decide what anonymous
// callers may do.
func IdentityMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := domain.Anonymous
			if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
				token := strings.TrimPrefix(auth, "Bearer ")
				if claims, err := tokens.ValidateToken(token); err == nil {
					identity = claims.Identity()
				}
			}
			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// identityFrom returns the resolved identity, or anonymous when the
// middleware did not run.
func identityFrom(r *http.Request) domain.Identity {
	if id, ok := r.Context().Value(identityKey).(domain.Identity); ok {
		return id
	}
	return domain.Anonymous
}

// requireAuth wraps a handler so anonymous callers get a 401 before the
// handler runs.
func requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !identityFrom(r).IsAuthenticated() {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
			return
		}
		next(w, r)
	}
}

// LoggingMiddleware logs each request with its duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("Request handled", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
