// internal/handlers/summary.go
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/emartell/grocery-be/internal/core/ports"
)

// SummaryHandler serves the aggregate statistics endpoint
type SummaryHandler struct {
	service ports.GroceryService
	logger  *slog.Logger
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(service ports.GroceryService, logger *slog.Logger) *SummaryHandler {
	return &SummaryHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "summary")),
	}
}

// GetSummary handles GET /api/v1/summary
func (h *SummaryHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	summary, err := h.service.Summary(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to compute summary",
			slog.String("error", err.Error()))
		respondError(h.logger, w, http.StatusInternalServerError, "Failed to compute summary")
		return
	}

	respondJSON(h.logger, w, http.StatusOK, summary)
}
