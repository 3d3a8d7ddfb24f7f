// ABOUTME: Main entry point for the Yomu News API server
// ABOUTME: Loads configuration, wires all components and runs the HTTP server until signalled

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"yomu-news-api/infrastructure/logger/logrus"
	"yomu-news-api/pkg/config"
	"yomu-news-api/pkg/featureflags"
)

func main() {
	// A missing .env is fine; the environment may already be set
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logrus.New(logrus.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	logger.Info("Starting Yomu News API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"cache_type": cfg.Cache.Type,
		"store_type": cfg.Store.Type,
		"policy":     cfg.Store.UnknownSourcePolicy,
	})

	flags := featureflags.NewEnvManager("FEATURE_")

	ctx := context.Background()
	application, err := buildApp(ctx, cfg, logger, flags.IsEnabled(ctx, featureflags.PrewarmEnabled))
	if err != nil {
		logger.Error("Failed to build application", map[string]interface{}{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer application.Close()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      newRouter(cfg, flags, logger, application.services),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("Server stopped", nil)
}
