// internal/handlers/product.go
package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/emartell/grocery-be/internal/core/domain"
	"github.com/emartell/grocery-be/internal/core/ports"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	service ports.GroceryService
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service ports.GroceryService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "product")),
	}
}

// GetProduct handles GET /api/v1/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := parseID(r, "id")
	if !ok {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, err := h.service.GetProduct(ctx, id)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get product",
			slog.Int64("id", id),
			slog.String("error", err.Error()))
		respondError(h.logger, w, http.StatusInternalServerError, "Failed to retrieve product")
		return
	}
	if product == nil {
		respondError(h.logger, w, http.StatusNotFound, "Product not found")
		return
	}

	respondJSON(h.logger, w, http.StatusOK, product)
}

// ListProducts handles GET /api/v1/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	params := h.parseListParams(r)

	result, err := h.service.ListProducts(ctx, params)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list products",
			slog.String("error", err.Error()))
		respondError(h.logger, w, http.StatusInternalServerError, "Failed to list products")
		return
	}

	respondJSON(h.logger, w, http.StatusOK, result)
}

// CreateProduct handles POST /api/v1/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := req.ToDomain()
	if err != nil {
		respondError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}

	added, err := h.service.SaveProduct(ctx, product)
	if err != nil {
		if strings.Contains(err.Error(), "validation failed") {
			respondError(h.logger, w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.logger.ErrorContext(ctx, "failed to create product",
			slog.String("error", err.Error()))
		respondError(h.logger, w, http.StatusInternalServerError, "Failed to create product")
		return
	}
	if added == nil {
		respondError(h.logger, w, http.StatusUnprocessableEntity, "Product was rejected")
		return
	}

	respondJSON(h.logger, w, http.StatusCreated, added)
}

// UpdateProduct handles PUT /api/v1/products/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := parseID(r, "id")
	if !ok {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := req.ToDomain()
	if err != nil {
		respondError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}
	product.ID = id

	updated, err := h.service.UpdateProduct(ctx, product)
	if err != nil {
		if strings.Contains(err.Error(), "validation failed") {
			respondError(h.logger, w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.logger.ErrorContext(ctx, "failed to update product",
			slog.Int64("id", id),
			slog.String("error", err.Error()))
		respondError(h.logger, w, http.StatusInternalServerError, "Failed to update product")
		return
	}
	if updated == nil {
		respondError(h.logger, w, http.StatusNotFound, "Product not found")
		return
	}

	respondJSON(h.logger, w, http.StatusOK, updated)
}

// DeleteProduct handles DELETE /api/v1/products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := parseID(r, "id")
	if !ok {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	deleted, err := h.service.DeleteProduct(ctx, id)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to delete product",
			slog.Int64("id", id),
			slog.String("error", err.Error()))
		respondError(h.logger, w, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	if deleted == nil {
		respondError(h.logger, w, http.StatusNotFound, "Product not found")
		return
	}

	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"message": "Product deleted successfully",
		"id":      id,
	})
}

// parseListParams parses query parameters for the product listing
func (h *ProductHandler) parseListParams(r *http.Request) ports.ListParams {
	params := ports.ListParams{
		Page:      1,
		PageSize:  50,
		SortBy:    "id",
		SortOrder: "asc",
	}

	if page := r.URL.Query().Get("page"); page != "" {
		if p, err := strconv.Atoi(page); err == nil && p > 0 {
			params.Page = p
		}
	}

	if limit := r.URL.Query().Get("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil && l > 0 {
			if l > 100 {
				params.PageSize = 100
			} else {
				params.PageSize = l
			}
		}
	}

	params.Search = r.URL.Query().Get("search")

	if minPrice := r.URL.Query().Get("min_price"); minPrice != "" {
		if v, err := strconv.ParseFloat(minPrice, 64); err == nil && v >= 0 {
			params.MinPrice = v
		}
	}
	if maxPrice := r.URL.Query().Get("max_price"); maxPrice != "" {
		if v, err := strconv.ParseFloat(maxPrice, 64); err == nil && v >= 0 {
			params.MaxPrice = v
		}
	}

	if inStock := r.URL.Query().Get("in_stock"); inStock != "" {
		if val, err := strconv.ParseBool(inStock); err == nil {
			params.InStock = &val
		}
	}

	if sortBy := r.URL.Query().Get("sort"); sortBy != "" {
		params.SortBy = sortBy
	}

	if order := r.URL.Query().Get("order"); order == "asc" || order == "desc" {
		params.SortOrder = order
	}

	return params
}

// Request/Response DTOs

// ProductRequest represents the request body for creating or updating a product
type ProductRequest struct {
	Name  string          `json:"name"`
	Stock int             `json:"stock"`
	Date  string          `json:"date"`
	Price decimal.Decimal `json:"price"`
}

// ToDomain converts the request to a domain model
func (r *ProductRequest) ToDomain() (*domain.Product, error) {
	if r.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	date, err := time.Parse(domain.DateLayout, r.Date)
	if err != nil {
		return nil, fmt.Errorf("date must be in %s format", domain.DateLayout)
	}

	return &domain.Product{
		Name:  r.Name,
		Stock: r.Stock,
		Date:  date,
		Price: r.Price,
	}, nil
}
