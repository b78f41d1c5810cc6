package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/recipe-hub/backend/internal/metrics"
	"github.com/anonto42/recipe-hub/backend/internal/router"
	"github.com/anonto42/recipe-hub/backend/internal/storage"
	"github.com/anonto42/recipe-hub/backend/pkg/config"
	"github.com/anonto42/recipe-hub/backend/pkg/firebase"
	"github.com/anonto42/recipe-hub/backend/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.CloseDB()

	ctx := context.Background()
	fs, err := newStorage(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("failed to initialize media storage")
	}

	e, err := router.New(cfg, router.Deps{
		DB:      db.Postgres,
		Storage: fs,
		Metrics: metrics.New(prometheus.NewRegistry()),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build router")
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	logger.Info().Msg("server exited")
}

func newStorage(ctx context.Context, cfg *config.Config) (storage.FileStorage, error) {
	switch cfg.StorageDriver {
	case "local":
		return storage.NewLocalStorage(cfg.MediaRoot, cfg.MediaURL)
	case "firebase":
		app, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, cfg.FirebaseBucket)
		if err != nil {
			return nil, err
		}
		return storage.NewFirebaseStorage(app.Bucket, app.BucketName), nil
	case "s3":
		return storage.NewS3Storage(ctx, cfg.S3Bucket, cfg.AWSRegion)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
