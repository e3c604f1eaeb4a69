package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wealthmap/wealthmap-backend/internal/api"
	"github.com/wealthmap/wealthmap-backend/internal/config"
	"github.com/wealthmap/wealthmap-backend/internal/marketdata"
	"github.com/wealthmap/wealthmap-backend/internal/service"
	"github.com/wealthmap/wealthmap-backend/internal/valuation"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Market data gateway with process-lifetime caches
	gateway := marketdata.NewDefaultService()

	// Create services
	builder := valuation.NewBuilder(gateway)
	valuationService := service.NewValuationService(builder, cfg.Portfolio.Path)
	systemService := service.NewSystemService(cfg.Portfolio.Path)

	// Periodic revaluation
	revaluer := service.NewRevaluer(valuationService, cfg.Portfolio.RevalueSchedule)
	if err := revaluer.Start(); err != nil {
		log.Fatalf("Failed to start revaluer: %v", err)
	}
	defer revaluer.Stop()

	// Create router
	router := api.NewRouter(systemService, valuationService, gateway, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
