package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wealthmap/wealthmap-backend/internal/api/handlers"
	custommiddleware "github.com/wealthmap/wealthmap-backend/internal/api/middleware"
	"github.com/wealthmap/wealthmap-backend/internal/config"
	"github.com/wealthmap/wealthmap-backend/internal/marketdata"
	"github.com/wealthmap/wealthmap-backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(systemService *service.SystemService, valuationService *service.ValuationService, gateway marketdata.Gateway, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		// Priced tree and presentation state
		r.Route("/valuation", func(r chi.Router) {
			valuationHandler := handlers.NewValuationHandler(valuationService)
			stateHandler := handlers.NewTreeStateHandler()
			r.Get("/", valuationHandler.Tree)
			r.Post("/refresh", valuationHandler.Refresh)
			r.Get("/state", stateHandler.State)
			r.Put("/state", stateHandler.Update)
		})

		// Normalized market data proxies for the frontend
		r.Route("/market", func(r chi.Router) {
			marketHandler := handlers.NewMarketDataHandler(gateway)
			r.Get("/interest", marketHandler.Interest)
			r.Get("/inflation", marketHandler.Inflation)
			r.Get("/treasury", marketHandler.Treasury)
		})
	})

	return r
}
