package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "timely/docs"
	"timely/internal/app"
	"timely/internal/config"
	"timely/internal/server"
)

// @title Timely API
// @version 1.0
// @description Client portal API: message threads, activity timeline and document requests.
// @BasePath /
func main() {
	// Load configuration
	cfg := config.Load()

	// Setup logger
	logger := cfg.SetupLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open storage, falling back to memory so the portal still serves
	storage, err := app.OpenStorage(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Warn().Err(err).Msg("Database connection failed")
		logger.Info().Msg("Starting server with in-memory storage")
		storage = app.MemoryStorage()
	} else {
		logger.Info().Str("driver", storage.Driver).Msg("Database connection established successfully")
	}
	defer func() {
		if err := storage.Close(); err != nil {
			logger.Warn().Err(err).Msg("Error closing database")
		}
	}()

	application := app.New(cfg, storage.KV, logger)

	// Create and initialize server
	srv := server.New(cfg, storage.DB, storage.Driver, application, logger)
	srv.Initialize()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
