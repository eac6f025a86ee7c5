package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dkovalev/bazaar/internal/models"
	"github.com/dkovalev/bazaar/internal/server/storage"
	"github.com/dkovalev/bazaar/internal/validation"
	"github.com/dkovalev/bazaar/pkg/api"
)

// ItemHandler serves item CRUD. Reads are public; writes require the
// session gate, and updates/deletes additionally require ownership.
type ItemHandler struct {
	logger *slog.Logger
	items  storage.ItemStorage
	users  storage.UserStorage
}

// NewItemHandler creates the item handler.
func NewItemHandler(logger *slog.Logger, items storage.ItemStorage, users storage.UserStorage) *ItemHandler {
	return &ItemHandler{
		logger: logger,
		items:  items,
		users:  users,
	}
}

// List handles GET /items/ (public) with pagination and search over
// name/description.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := listFilterFromQuery(r)
	if err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	items, err := h.items.ListItems(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list items", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if len(items) == 0 {
		sendError(h.logger, w, "no items found", http.StatusNotFound)
		return
	}

	sendJSON(h.logger, w, itemResponses(items), http.StatusOK)
}

// Get handles GET /items/{id} (public) and returns the item with its
// owner.
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	itemID := r.PathValue("id")
	if itemID == "" {
		sendError(h.logger, w, "item id is required", http.StatusBadRequest)
		return
	}

	item, err := h.items.GetItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			sendError(h.logger, w, "item not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get item", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	owner, err := h.users.GetUserByID(ctx, item.OwnerID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get item owner", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.ItemWithOwnerResponse{
		ItemResponse: itemResponse(item),
		Owner:        userResponse(owner),
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Create handles POST /items/. The item is owned by the calling user;
// duplicate names per owner are rejected.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := CurrentUser(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateItemName(req.Name); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidateItemFields(req.Price, req.Tax, req.Description); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	item := &models.Item{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Tax:         req.Tax,
		OwnerID:     user.ID,
		CreatedAt:   time.Now(),
	}

	if err := h.items.CreateItem(ctx, item); err != nil {
		if errors.Is(err, storage.ErrItemAlreadyExists) {
			sendError(h.logger, w, "you already have an item with this name", http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create item", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "item created",
		slog.String("item_id", item.ID),
		slog.String("owner_id", user.ID))

	sendJSON(h.logger, w, itemResponse(item), http.StatusCreated)
}

// MyItems handles GET /my-items/ for the calling user.
func (h *ItemHandler) MyItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := CurrentUser(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	filter, err := listFilterFromQuery(r)
	if err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	items, err := h.items.ListItemsByOwner(ctx, user.ID, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list own items", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if len(items) == 0 {
		sendError(h.logger, w, "you have no items yet", http.StatusNotFound)
		return
	}

	sendJSON(h.logger, w, itemResponses(items), http.StatusOK)
}

// Update handles PUT /items/{id}. Only the owner may update; unset fields
// are left unchanged.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := CurrentUser(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	itemID := r.PathValue("id")
	item, err := h.items.GetItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			sendError(h.logger, w, "item not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get item", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if item.OwnerID != user.ID {
		sendError(h.logger, w, "you can only edit your own items", http.StatusForbidden)
		return
	}

	var req api.UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Name != nil {
		if err := validation.ValidateItemName(*req.Name); err != nil {
			sendError(h.logger, w, err.Error(), http.StatusBadRequest)
			return
		}
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = req.Description
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Tax != nil {
		item.Tax = req.Tax
	}
	if err := validation.ValidateItemFields(item.Price, item.Tax, item.Description); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	now := time.Now()
	item.UpdatedAt = &now

	if err := h.items.UpdateItem(ctx, item); err != nil {
		if errors.Is(err, storage.ErrItemAlreadyExists) {
			sendError(h.logger, w, "you already have an item with this name", http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update item", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, itemResponse(item), http.StatusOK)
}

// Delete handles DELETE /items/{id}. Only the owner may delete.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := CurrentUser(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	itemID := r.PathValue("id")
	item, err := h.items.GetItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			sendError(h.logger, w, "item not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get item", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if item.OwnerID != user.ID {
		sendError(h.logger, w, "you can only delete your own items", http.StatusForbidden)
		return
	}

	if err := h.items.DeleteItem(ctx, itemID); err != nil {
		h.logger.ErrorContext(ctx, "failed to delete item", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "item deleted",
		slog.String("item_id", itemID),
		slog.String("owner_id", user.ID))

	resp := api.MessageResponse{
		Message: fmt.Sprintf("item %q deleted", item.Name),
		Status:  "success",
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}
