package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"photoai/internal/api/v1/router"
	"photoai/internal/config"
	"photoai/internal/logger"
	"photoai/internal/secrets"

	"github.com/joho/godotenv"
)

// @title Photo AI API
// @version 1.0
// @description Photo AI backend: model training, image generation, packs and payments.
// @host localhost:8080
// @BasePath /
// @Schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	logger := logger.New()

	// 1. Load configuration
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("Warning: no .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Msgf("Error loading config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Fill unset secrets from Secret Manager
	if cfg.GCPProjectID != "" {
		sm, err := secrets.NewSecretManager(ctx, cfg.GCPProjectID)
		if err != nil {
			logger.Fatal().Msgf("Failed to create Secret Manager client: %v", err)
		}
		if err := secrets.Resolve(ctx, sm, cfg.SecretFields(), logger); err != nil {
			logger.Fatal().Msgf("Failed to resolve secrets: %v", err)
		}
		if err := sm.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close Secret Manager client")
		}
	}

	// 3. Build router (and open backing connections)
	r, cleanup, err := router.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Msgf("Failed to build router: %v", err)
	}
	defer cleanup()

	// 4. Create HTTP server
	srv := router.NewServer(":"+cfg.Port, r)

	go func() {
		logger.Info().Msgf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("Listen failed")
			stop()
		}
	}()

	// 5. Graceful shutdown
	<-ctx.Done()
	logger.Info().Msg("Shutdown signal received, exiting...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		// Fall through so the deferred cleanup still closes connections.
		logger.Error().Err(err).Msg("Server forced to shutdown")
		return
	}
	logger.Info().Msg("Server shut down gracefully")
}
