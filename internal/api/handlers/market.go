package handlers

import (
	"net/http"

	"github.com/wealthmap/wealthmap-backend/internal/api/response"
	"github.com/wealthmap/wealthmap-backend/internal/marketdata"
)

// MarketDataHandler proxies the normalized market data series to the
// frontend, which cannot fetch the upstream sources directly (CORS on the
// Banco Central API, a broken certificate chain on Tesouro Direto).
type MarketDataHandler struct {
	gateway marketdata.Gateway
}

// NewMarketDataHandler creates a new MarketDataHandler
func NewMarketDataHandler(gateway marketdata.Gateway) *MarketDataHandler {
	return &MarketDataHandler{gateway: gateway}
}

// Interest returns the daily CDI series.
//
// Endpoint: GET /api/market/interest
func (h *MarketDataHandler) Interest(w http.ResponseWriter, r *http.Request) {
	series, err := h.gateway.InterestRateSeries(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusBadGateway, "failed to fetch interest data", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, map[string][]marketdata.RatePoint{"cdi": series})
}

// Inflation returns the monthly IPCA series.
//
// Endpoint: GET /api/market/inflation
func (h *MarketDataHandler) Inflation(w http.ResponseWriter, r *http.Request) {
	series, err := h.gateway.InflationSeries(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusBadGateway, "failed to fetch inflation data", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, map[string][]marketdata.RatePoint{"ipca": series})
}

// Treasury returns the current government bond price catalog.
//
// Endpoint: GET /api/market/treasury
func (h *MarketDataHandler) Treasury(w http.ResponseWriter, r *http.Request) {
	bonds, err := h.gateway.TreasuryBondCatalog(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusBadGateway, "failed to fetch treasury data", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, bonds)
}
