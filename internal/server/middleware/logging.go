package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dkovalev/bazaar/internal/models"
	"github.com/dkovalev/bazaar/internal/server/handlers"
	"github.com/dkovalev/bazaar/internal/server/storage"
)

// requestUser carries the resolved principal from the session gate back out
// to the logging middleware. Auth runs inside the router on a derived
// request, so a context value set there is invisible to the outer
// middleware; the holder is shared by pointer instead.
type requestUser struct {
	mu   sync.Mutex
	user *models.User
}

type requestUserKey struct{}

func (h *requestUser) set(user *models.User) {
	h.mu.Lock()
	h.user = user
	h.mu.Unlock()
}

func (h *requestUser) get() *models.User {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.user
}

// responseWriter wraps http.ResponseWriter to capture status and size.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// Logging logs every request with a status-dependent level and, when a
// recorder is supplied, persists a request log row. Persistence is best
// effort: a failed insert is logged and the response is unaffected.
// Credentials never appear in the log output.
func Logging(logger *slog.Logger, recorder storage.RequestLogStorage) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			holder := &requestUser{}
			r = r.WithContext(context.WithValue(r.Context(), requestUserKey{}, holder))

			wrapped := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)

			level := slog.LevelInfo
			if wrapped.statusCode >= 500 {
				level = slog.LevelError
			} else if wrapped.statusCode >= 400 {
				level = slog.LevelWarn
			}

			logger.Log(r.Context(), level, "HTTP request",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
				"status", wrapped.statusCode,
				"duration_ms", duration.Milliseconds(),
				"bytes_written", wrapped.written,
			)

			if recorder != nil {
				recordRequest(logger, recorder, r, duration)
			}
		})
	}
}

func recordRequest(logger *slog.Logger, recorder storage.RequestLogStorage, r *http.Request, duration time.Duration) {
	entry := &models.RequestLog{
		ID:         uuid.New().String(),
		Method:     r.Method,
		Path:       r.URL.Path,
		DurationMS: float64(duration.Microseconds()) / 1000,
		Timestamp:  time.Now(),
	}
	if holder, ok := r.Context().Value(requestUserKey{}).(*requestUser); ok {
		if user := holder.get(); user != nil {
			entry.UserID = &user.ID
		}
	} else if user, ok := handlers.CurrentUser(r.Context()); ok {
		entry.UserID = &user.ID
	}

	// The request context may already be cancelled once the response is
	// written; use a short independent one for the insert.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := recorder.SaveRequestLog(ctx, entry); err != nil {
		logger.Warn("failed to persist request log", "error", err)
	}
}

// LoggingWithSkip skips logging for the given paths, typically the health
// check.
func LoggingWithSkip(logger *slog.Logger, recorder storage.RequestLogStorage, skipPaths []string) func(http.Handler) http.Handler {
	skip := make(map[string]bool, len(skipPaths))
	for _, path := range skipPaths {
		skip[path] = true
	}

	logging := Logging(logger, recorder)

	return func(next http.Handler) http.Handler {
		logged := logging(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skip[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}
			logged.ServeHTTP(w, r)
		})
	}
}
