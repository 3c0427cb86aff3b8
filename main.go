package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vetlife/vetlife-be/internal/activity"
	"github.com/vetlife/vetlife-be/internal/api"
	"github.com/vetlife/vetlife-be/internal/config"
	"github.com/vetlife/vetlife-be/internal/logger"
	"github.com/vetlife/vetlife-be/internal/monitoring"
	"github.com/vetlife/vetlife-be/internal/storage"
	"github.com/vetlife/vetlife-be/internal/store"
	"github.com/vetlife/vetlife-be/internal/websocket"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel)

	// Set up the snapshot backend. When the database cannot be opened the
	// service degrades to in-memory operation for this session instead of
	// refusing to start.
	var backend storage.Backend
	sqlite, err := storage.OpenSQLite(cfg.DatabasePath)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.DatabasePath).Msg("Snapshot database unavailable, running in memory only")
		backend = storage.NewMemory()
	} else {
		backend = sqlite
	}
	defer backend.Close()

	backend = storage.WithLatency(backend, cfg.SimulatedLatency)

	// Set up the data store
	st := store.New(backend)
	initCtx, cancelInit := context.WithTimeout(context.Background(), 30*time.Second)
	if err := st.Init(initCtx); err != nil {
		cancelInit()
		log.Fatal().Err(err).Msg("Failed to initialize data store")
	}
	cancelInit()

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Activity feed for the admin dashboard
	act := activity.NewLog(200, hub)

	// Set up and run the background stats updater
	statUpdater := monitoring.NewStatUpdater(st, hub)
	go statUpdater.Run()

	// Set up and start the scheduled backups
	backups := monitoring.NewBackupScheduler(st, act, cfg.BackupPath)
	if err := backups.Start(cfg.BackupCron); err != nil {
		log.Fatal().Err(err).Msg("Failed to start backup scheduler")
	}

	// Set up router
	router := api.NewRouter(st, hub, act, backups)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	statUpdater.Stop()
	backups.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Flush the collections so a seeded-but-untouched dataset persists.
	st.Flush(ctx)

	log.Info().Msg("Server exiting")
}
