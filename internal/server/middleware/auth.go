// Package middleware holds the HTTP middleware chain: session gate,
// active-account gate, request logging, rate limiting and panic recovery.
package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dkovalev/bazaar/internal/server/auth"
	"github.com/dkovalev/bazaar/internal/server/handlers"
	"github.com/dkovalev/bazaar/internal/server/token"
)

// Auth is the session gate. It runs the extract -> decode -> resolve ->
// admit chain for every request it wraps; any step's failure short-circuits
// to a single 401 with a bearer challenge. On success the resolved user is
// placed in the request context for the one request.
func Auth(logger *slog.Logger, tokenCfg token.Config, resolver *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r)
			if !ok {
				logger.Warn("missing or malformed Authorization header")
				unauthorized(w)
				return
			}

			claims, err := token.Validate(tokenCfg, tokenString)
			if err != nil {
				// Expired, tampered and malformed tokens are deliberately
				// indistinguishable to the caller.
				logger.Warn("invalid access token", "error", err)
				unauthorized(w)
				return
			}

			user, err := resolver.ResolveSubject(r.Context(), claims)
			if err != nil {
				logger.Warn("token subject did not resolve", "error", err)
				unauthorized(w)
				return
			}

			logger.Debug("user authenticated",
				"user_id", user.ID,
				"email", user.Email)

			// Report the principal to the logging middleware sitting
			// outside the router.
			if holder, ok := r.Context().Value(requestUserKey{}).(*requestUser); ok {
				holder.set(user)
			}

			next.ServeHTTP(w, r.WithContext(handlers.WithCurrentUser(r.Context(), user)))
		})
	}
}

// RequireActive composes on top of Auth for operations that demand an
// active account. Inactive accounts get a distinct 400, not the generic
// 401.
func RequireActive(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := handlers.CurrentUser(r.Context())
			if !ok {
				unauthorized(w)
				return
			}

			if !user.IsActive {
				logger.Warn("inactive user rejected", "user_id", user.ID)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error":"Bad Request","message":"inactive user"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Unauthorized","message":"could not validate credentials"}`))
}
