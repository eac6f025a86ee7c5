package handlers

import (
	"log/slog"
	"net/http"

	"github.com/dkovalev/bazaar/internal/server/storage"
	"github.com/dkovalev/bazaar/pkg/api"
)

// StatsHandler serves the public counters and the per-user counters.
type StatsHandler struct {
	logger *slog.Logger
	users  storage.UserStorage
	items  storage.ItemStorage
}

// NewStatsHandler creates the stats handler.
func NewStatsHandler(logger *slog.Logger, users storage.UserStorage, items storage.ItemStorage) *StatsHandler {
	return &StatsHandler{
		logger: logger,
		users:  users,
		items:  items,
	}
}

// Stats handles GET /stats (public).
func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	totalUsers, err := h.users.CountUsers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to count users", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	totalItems, err := h.items.CountItems(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to count items", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.StatsResponse{
		TotalUsers: totalUsers,
		TotalItems: totalItems,
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}

// MyStats handles GET /my-stats for the calling user.
func (h *StatsHandler) MyStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := CurrentUser(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	count, err := h.items.CountItemsByOwner(ctx, user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to count own items", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.MyStatsResponse{
		User:         user.Name,
		Email:        user.Email,
		MyItemsCount: count,
		MemberSince:  user.CreatedAt,
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}
