// internal/handlers/grocery_list.go
package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/emartell/grocery-be/internal/core/domain"
	"github.com/emartell/grocery-be/internal/core/ports"
)

// GroceryListHandler handles grocery-list HTTP requests
type GroceryListHandler struct {
	service ports.GroceryService
	logger  *slog.Logger
}

// NewGroceryListHandler creates a new grocery list handler
func NewGroceryListHandler(service ports.GroceryService, logger *slog.Logger) *GroceryListHandler {
	return &GroceryListHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "grocery_list")),
	}
}

// GetLists handles GET /api/v1/lists
func (h *GroceryListHandler) GetLists(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	lists, err := h.service.GetLists(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list grocery lists",
			slog.String("error", err.Error()))
		respondError(h.logger, w, http.StatusInternalServerError, "Failed to list grocery lists")
		return
	}

	respondJSON(h.logger, w, http.StatusOK, lists)
}

// GetList handles GET /api/v1/lists/{id}
func (h *GroceryListHandler) GetList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := parseID(r, "id")
	if !ok {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid list ID")
		return
	}

	list, err := h.service.GetList(ctx, id)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get grocery list",
			slog.Int64("id", id),
			slog.String("error", err.Error()))
		respondError(h.logger, w, http.StatusInternalServerError, "Failed to retrieve grocery list")
		return
	}
	if list == nil {
		respondError(h.logger, w, http.StatusNotFound, "Grocery list not found")
		return
	}

	respondJSON(h.logger, w, http.StatusOK, list)
}

// CreateList handles POST /api/v1/lists
func (h *GroceryListHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req GroceryListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	list, err := req.ToDomain()
	if err != nil {
		respondError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}

	added, err := h.service.SaveList(ctx, list)
	if err != nil {
		if strings.Contains(err.Error(), "validation failed") {
			respondError(h.logger, w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.logger.ErrorContext(ctx, "failed to create grocery list",
			slog.String("error", err.Error()))
		respondError(h.logger, w, http.StatusInternalServerError, "Failed to create grocery list")
		return
	}
	if added == nil {
		respondError(h.logger, w, http.StatusUnprocessableEntity, "Grocery list was rejected")
		return
	}

	respondJSON(h.logger, w, http.StatusCreated, added)
}

// UpdateList handles PUT /api/v1/lists/{id}
func (h *GroceryListHandler) UpdateList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := parseID(r, "id")
	if !ok {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid list ID")
		return
	}

	var req GroceryListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	list, err := req.ToDomain()
	if err != nil {
		respondError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}
	list.ID = id

	updated, err := h.service.UpdateList(ctx, list)
	if err != nil {
		if strings.Contains(err.Error(), "validation failed") {
			respondError(h.logger, w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.logger.ErrorContext(ctx, "failed to update grocery list",
			slog.Int64("id", id),
			slog.String("error", err.Error()))
		respondError(h.logger, w, http.StatusInternalServerError, "Failed to update grocery list")
		return
	}
	if updated == nil {
		respondError(h.logger, w, http.StatusNotFound, "Grocery list not found")
		return
	}

	respondJSON(h.logger, w, http.StatusOK, updated)
}

// DeleteList handles DELETE /api/v1/lists/{id}
func (h *GroceryListHandler) DeleteList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := parseID(r, "id")
	if !ok {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid list ID")
		return
	}

	deleted, err := h.service.DeleteList(ctx, id)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to delete grocery list",
			slog.Int64("id", id),
			slog.String("error", err.Error()))
		respondError(h.logger, w, http.StatusInternalServerError, "Failed to delete grocery list")
		return
	}
	if deleted == nil {
		respondError(h.logger, w, http.StatusNotFound, "Grocery list not found")
		return
	}

	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"message": "Grocery list deleted successfully",
		"id":      id,
	})
}

// Request/Response DTOs

// GroceryListRequest represents the request body for creating or updating a list
type GroceryListRequest struct {
	Name        string `json:"name"`
	CreatedOn   string `json:"created_on,omitempty"`
	Color       string `json:"color,omitempty"`
	OwnerUserID *int64 `json:"owner_user_id,omitempty"`
}

// ToDomain converts the request to a domain model
func (r *GroceryListRequest) ToDomain() (*domain.GroceryList, error) {
	if r.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	list := &domain.GroceryList{
		Name:        r.Name,
		Color:       r.Color,
		OwnerUserID: r.OwnerUserID,
	}

	if r.CreatedOn != "" {
		createdOn, err := time.Parse(time.RFC3339, r.CreatedOn)
		if err != nil {
			return nil, fmt.Errorf("created_on must be an RFC 3339 timestamp")
		}
		list.CreatedOn = &createdOn
	}

	return list, nil
}
