// main is the entry point of the Craftd application.
// It initializes the configuration, logger, database, catalogs, and starts the HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mcraftr/craftd/internal/catalog"
	"github.com/mcraftr/craftd/internal/config"
	"github.com/mcraftr/craftd/internal/gateway"
	"github.com/mcraftr/craftd/internal/logger"
	"github.com/mcraftr/craftd/internal/ratelimit"
	"github.com/mcraftr/craftd/internal/rcon"
	"github.com/mcraftr/craftd/internal/server"
	"github.com/mcraftr/craftd/internal/storage"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Parse()

	logger.Setup(cfg.Logger)
	log.Info().Msg("Starting craftd service...")

	// Database
	store, err := storage.New(cfg.Storage.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing database")
		}
	}()

	// Embedded kit and item catalogs
	cat, err := catalog.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load catalogs")
	}

	// Per-caller command budgets
	limiter := ratelimit.New(map[string]ratelimit.Quota{
		ratelimit.BucketRcon:      {Window: cfg.RateLimit.RconWin, Count: cfg.RateLimit.RconCount},
		ratelimit.BucketInventory: {Window: cfg.RateLimit.InventoryWin, Count: cfg.RateLimit.InventoryCount},
		ratelimit.BucketBroadcast: {Window: cfg.RateLimit.BroadcastWin, Count: cfg.RateLimit.BroadcastCount},
	})

	gw := gateway.New(rcon.Dialer{
		Options: rcon.Options{
			ConnectTimeout: cfg.Rcon.ConnectTimeout,
			CommandTimeout: cfg.Rcon.CommandTimeout,
		},
	}, limiter, store, cat)

	srvHandler := server.New(gw, store, cat, cfg)

	httpServer := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      srvHandler.Run(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("address", cfg.Server.Address).Msg("Server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
