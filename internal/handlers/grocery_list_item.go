// internal/handlers/grocery_list_item.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/emartell/grocery-be/internal/core/domain"
	"github.com/emartell/grocery-be/internal/core/ports"
)

// GroceryListItemHandler handles list-item HTTP requests
type GroceryListItemHandler struct {
	service ports.GroceryService
	logger  *slog.Logger
}

// NewGroceryListItemHandler creates a new list item handler
func NewGroceryListItemHandler(service ports.GroceryService, logger *slog.Logger) *GroceryListItemHandler {
	return &GroceryListItemHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "grocery_list_item")),
	}
}

// GetItemsOnList handles GET /api/v1/lists/{id}/items
func (h *GroceryListItemHandler) GetItemsOnList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	listID, ok := parseID(r, "id")
	if !ok {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid list ID")
		return
	}

	items, err := h.service.GetItemsOnList(ctx, listID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get items on list",
			slog.Int64("grocery_list_id", listID),
			slog.String("error", err.Error()))
		respondError(h.logger, w, http.StatusInternalServerError, "Failed to retrieve list items")
		return
	}
	if items == nil {
		items = []*domain.GroceryListItem{}
	}

	respondJSON(h.logger, w, http.StatusOK, items)
}

// AddItem handles POST /api/v1/items
func (h *GroceryListItemHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req GroceryListItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	added, err := h.service.AddItem(ctx, req.ToDomain())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to add list item",
			slog.String("error", err.Error()))
		respondError(h.logger, w, http.StatusInternalServerError, "Failed to add list item")
		return
	}
	if added == nil {
		// Rejected: invalid values or a list/product that does not exist
		respondError(h.logger, w, http.StatusUnprocessableEntity, "Item was rejected")
		return
	}

	respondJSON(h.logger, w, http.StatusCreated, added)
}

// UpdateItem handles PUT /api/v1/items/{id}
func (h *GroceryListItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := parseID(r, "id")
	if !ok {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid item ID")
		return
	}

	var req GroceryListItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item := req.ToDomain()
	item.ID = id

	updated, err := h.service.UpdateItem(ctx, item)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to update list item",
			slog.Int64("id", id),
			slog.String("error", err.Error()))
		respondError(h.logger, w, http.StatusInternalServerError, "Failed to update list item")
		return
	}
	if updated == nil {
		respondError(h.logger, w, http.StatusUnprocessableEntity, "Item was rejected")
		return
	}

	respondJSON(h.logger, w, http.StatusOK, updated)
}

// DeleteItem handles DELETE /api/v1/items/{id}
func (h *GroceryListItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := parseID(r, "id")
	if !ok {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid item ID")
		return
	}

	removed, err := h.service.RemoveItem(ctx, id)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to delete list item",
			slog.Int64("id", id),
			slog.String("error", err.Error()))
		respondError(h.logger, w, http.StatusInternalServerError, "Failed to delete list item")
		return
	}
	if !removed {
		respondError(h.logger, w, http.StatusNotFound, "List item not found")
		return
	}

	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"message": "List item deleted successfully",
		"id":      id,
	})
}

// Request/Response DTOs

// GroceryListItemRequest represents the request body for creating or
// updating a list item
type GroceryListItemRequest struct {
	GroceryListID int64 `json:"grocery_list_id"`
	ProductID     int64 `json:"product_id"`
	Amount        int   `json:"amount"`
}

// ToDomain converts the request to a domain model
func (r *GroceryListItemRequest) ToDomain() *domain.GroceryListItem {
	return &domain.GroceryListItem{
		GroceryListID: r.GroceryListID,
		ProductID:     r.ProductID,
		Amount:        r.Amount,
	}
}
