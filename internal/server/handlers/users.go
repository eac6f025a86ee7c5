package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dkovalev/bazaar/internal/server/storage"
	"github.com/dkovalev/bazaar/pkg/api"
)

// UserHandler serves user listing and lookup. Both operations sit behind
// the session gate.
type UserHandler struct {
	logger *slog.Logger
	users  storage.UserStorage
	items  storage.ItemStorage
}

// NewUserHandler creates the user handler.
func NewUserHandler(logger *slog.Logger, users storage.UserStorage, items storage.ItemStorage) *UserHandler {
	return &UserHandler{
		logger: logger,
		users:  users,
		items:  items,
	}
}

// List handles GET /users/ with pagination and search over name/email.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := listFilterFromQuery(r)
	if err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	users, err := h.users.ListUsers(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list users", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if len(users) == 0 {
		sendError(h.logger, w, "no users found", http.StatusNotFound)
		return
	}

	resp := make([]api.UserResponse, 0, len(users))
	for _, user := range users {
		resp = append(resp, userResponse(user))
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Get handles GET /users/{id} and returns the user with their items.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := r.PathValue("id")
	if userID == "" {
		sendError(h.logger, w, "user id is required", http.StatusBadRequest)
		return
	}

	user, err := h.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			sendError(h.logger, w, "user not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	items, err := h.items.ListItemsByOwner(ctx, user.ID, storage.ListFilter{Limit: maxListLimit})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list user items", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.UserWithItemsResponse{
		UserResponse: userResponse(user),
		Items:        itemResponses(items),
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}
