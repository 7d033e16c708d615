// @title XML Tag Store API
// @version 1.0
// @description Ingests XML documents into a relational projection of tags
// @description and attributes and answers aggregate tag queries.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Nofexxx/pet-f/config"
	"github.com/Nofexxx/pet-f/internal/database"
	"github.com/Nofexxx/pet-f/internal/logger"
	"github.com/Nofexxx/pet-f/internal/middleware"
	"github.com/Nofexxx/pet-f/internal/router"
	fileservice "github.com/Nofexxx/pet-f/internal/service/file"
	watcherservice "github.com/Nofexxx/pet-f/internal/service/watcher"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		FilePath:   cfg.Log.FilePath,
		MaxSize:    cfg.Log.MaxSize,
		MaxAge:     cfg.Log.MaxAge,
		MaxBackups: cfg.Log.MaxBackups,
		Compress:   cfg.Log.Compress,
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.GetLogger().Fatalf("Failed to initialize database: %v", err)
	}

	loggerMiddleware := middleware.NewLoggerMiddleware()

	importWatcher := watcherservice.NewImportWatcherService(
		cfg.Ingest,
		fileservice.NewFileService(db),
	)

	r := router.NewRouter(loggerMiddleware, db, cfg)

	watcherCtx, cancelWatcher := context.WithCancel(context.Background())
	if err := importWatcher.Start(watcherCtx); err != nil {
		logger.Errorf("Failed to start import watcher: %v", err)
	}

	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Server.Port),
		Handler:      r.GetEngine(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Infof("HTTP server listening on port %d", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.GetLogger().Fatalf("HTTP server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")

	cancelWatcher()
	if err := importWatcher.Stop(); err != nil {
		logger.Errorf("Error stopping import watcher: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.GetLogger().Fatalf("Forced server shutdown: %v", err)
	}

	logger.Info("Server exited")
}
