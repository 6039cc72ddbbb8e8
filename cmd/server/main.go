package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/ninjapark/rollsync/internal/config"
	"github.com/ninjapark/rollsync/internal/database"
	"github.com/ninjapark/rollsync/internal/export"
	"github.com/ninjapark/rollsync/internal/handler"
	"github.com/ninjapark/rollsync/internal/logger"
	"github.com/ninjapark/rollsync/internal/repository"
	"github.com/ninjapark/rollsync/internal/router"
	"github.com/ninjapark/rollsync/internal/service"
	"github.com/ninjapark/rollsync/internal/validator"
	"github.com/ninjapark/rollsync/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Str("publish_path", cfg.PublishPath).
		Msg("Starting rollsync")

	if cfg.OperatorPassphraseHash == "" {
		log.Warn().Msg("OPERATOR_PASSPHRASE_HASH is not set; every login will be rejected")
	}

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	runRepo := repository.NewRunRepository(pool)
	runCache := repository.NewRunCache(rdb, cfg.RunCacheTTL)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg)
	uploadService := service.NewUploadService(cfg)
	pipelineService := service.NewPipelineService(cfg.Pipeline, log)
	runService := service.NewRunService(runRepo, runCache, pipelineService, export.NewPublisher(cfg.PublishPath), log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Run:       handler.NewRunHandler(runService, uploadService, log),
		Dashboard: handler.NewDashboardHandler(runService, log),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	var workers sync.WaitGroup

	retentionWorker := worker.NewRetentionWorker(runService, rdb, cfg.RunRetention, log)
	workers.Add(1)
	go func() {
		defer workers.Done()
		retentionWorker.Start(workerCtx)
	}()

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(ctx, authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (10s timeout, uploads can be slow).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers.
	workerCancel()
	workers.Wait()

	log.Info().Msg("Shutdown complete")
}
