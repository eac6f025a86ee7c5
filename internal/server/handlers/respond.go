package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dkovalev/bazaar/internal/models"
	"github.com/dkovalev/bazaar/pkg/api"
)

type contextKey string

// CurrentUserKey holds the authenticated *models.User for the duration of
// one request. Set by middleware.Auth, read by protected handlers.
const CurrentUserKey contextKey = "current_user"

// CurrentUser extracts the authenticated user from the request context.
func CurrentUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(CurrentUserKey).(*models.User)
	return user, ok
}

// WithCurrentUser returns a context carrying the authenticated user.
func WithCurrentUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, CurrentUserKey, user)
}

func sendJSON(logger *slog.Logger, w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

func sendError(logger *slog.Logger, w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	sendJSON(logger, w, resp, statusCode)
}

// userResponse converts a user model to its public view.
func userResponse(user *models.User) api.UserResponse {
	return api.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Age:       user.Age,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// itemResponse converts an item model to its public view with the
// tax-inclusive total.
func itemResponse(item *models.Item) api.ItemResponse {
	return api.ItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Tax:         item.Tax,
		TotalPrice:  item.TotalPrice(),
		OwnerID:     item.OwnerID,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func itemResponses(items []*models.Item) []api.ItemResponse {
	out := make([]api.ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, itemResponse(item))
	}
	return out
}
