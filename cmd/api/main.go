// Command api is the Matchday Data API server.
//
// Usage:
//
//	matchday-api
//	API_PORT=8080 matchday-api

// @title Matchday Data API
// @version 1.0.0
// @description Football league management API serving standings, scorer leaderboards, and reconciled team rosters derived from match data.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name Matchday
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/matchdayhq/matchday-data/internal/api"
	"github.com/matchdayhq/matchday-data/internal/cache"
	"github.com/matchdayhq/matchday-data/internal/config"
	"github.com/matchdayhq/matchday-data/internal/db"
	"github.com/matchdayhq/matchday-data/internal/listener"
	"github.com/matchdayhq/matchday-data/internal/maintenance"

	_ "github.com/matchdayhq/matchday-data/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Connect to database
	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Start LISTEN/NOTIFY consumer for out-of-band match data changes
	go listener.Start(ctx, cfg.DatabaseURL, pool.Pool, appCache, logger)

	// Start maintenance tickers (recompute sweep, import-audit cleanup)
	go maintenance.Start(ctx, pool.Pool, appCache, maintenance.Config{
		SweepInterval:   cfg.SweepInterval,
		SweepWorkers:    cfg.SweepWorkers,
		CleanupInterval: cfg.CleanupInterval,
	}, logger)

	// Create router
	router := api.NewRouter(pool.Pool, appCache, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Matchday Data API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
