package handlers

import (
	"errors"
	"net/http"

	"github.com/wealthmap/wealthmap-backend/internal/api/response"
	"github.com/wealthmap/wealthmap-backend/internal/apperrors"
	"github.com/wealthmap/wealthmap-backend/internal/service"
)

// ValuationHandler serves the priced tree.
type ValuationHandler struct {
	valuationService *service.ValuationService
}

// NewValuationHandler creates a new ValuationHandler
func NewValuationHandler(valuationService *service.ValuationService) *ValuationHandler {
	return &ValuationHandler{valuationService: valuationService}
}

// Tree returns the latest valuation snapshot, running a first valuation pass
// if none has completed yet.
//
// Endpoint: GET /api/valuation
func (h *ValuationHandler) Tree(w http.ResponseWriter, r *http.Request) {
	snap, err := h.valuationService.Latest(r.Context())
	if err != nil {
		respondValuationError(w, err)
		return
	}
	response.RespondJSON(w, http.StatusOK, snap)
}

// Refresh forces a full revaluation pass and returns the fresh snapshot.
//
// Endpoint: POST /api/valuation/refresh
func (h *ValuationHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	snap, err := h.valuationService.Revalue(r.Context())
	if err != nil {
		respondValuationError(w, err)
		return
	}
	response.RespondJSON(w, http.StatusOK, snap)
}

// respondValuationError maps the valuation error taxonomy to HTTP statuses:
// engine defects are 500, market data failures are 502, and document shape
// problems are 422. The build is all-or-nothing, so any error means no tree.
func respondValuationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInternal), errors.Is(err, apperrors.ErrPaletteExhausted):
		response.RespondError(w, http.StatusInternalServerError, "valuation engine defect", err.Error())
	case errors.Is(err, apperrors.ErrMarketData):
		response.RespondError(w, http.StatusBadGateway, "market data unavailable", err.Error())
	default:
		response.RespondError(w, http.StatusUnprocessableEntity, "invalid asset document", err.Error())
	}
}
