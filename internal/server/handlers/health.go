package handlers

import (
	"context"
	"log/slog"
	"net/http"
)

// Pinger reports persistence availability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the banner and the health check.
type HealthHandler struct {
	logger  *slog.Logger
	pinger  Pinger
	version string
}

// NewHealthHandler creates the health handler.
func NewHealthHandler(logger *slog.Logger, pinger Pinger, version string) *HealthHandler {
	return &HealthHandler{
		logger:  logger,
		pinger:  pinger,
		version: version,
	}
}

// HealthResponse is the health check body.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Version  string `json:"version,omitempty"`
}

// Root handles GET /.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{
		"message": "bazaar API is running",
		"login":   "/auth/login",
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Health handles GET /health and pings the database.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.pinger.Ping(ctx); err != nil {
		h.logger.ErrorContext(ctx, "health check failed", slog.Any("error", err))
		resp := HealthResponse{
			Status:   "unhealthy",
			Database: "unreachable",
			Version:  h.version,
		}
		sendJSON(h.logger, w, resp, http.StatusServiceUnavailable)
		return
	}

	resp := HealthResponse{
		Status:   "healthy",
		Database: "connected",
		Version:  h.version,
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}
