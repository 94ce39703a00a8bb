package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/7vignesh/blind-coding/internal/config"
	"github.com/7vignesh/blind-coding/internal/database"
	"github.com/7vignesh/blind-coding/internal/handler"
	"github.com/7vignesh/blind-coding/internal/logger"
	"github.com/7vignesh/blind-coding/internal/router"
	"github.com/7vignesh/blind-coding/internal/service"
	"github.com/7vignesh/blind-coding/internal/validator"
	ws "github.com/7vignesh/blind-coding/internal/websocket"
	"github.com/7vignesh/blind-coding/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("corpus", cfg.CorpusSource).
		Str("submissions_dir", cfg.SubmissionsDir).
		Str("submitter", cfg.SubmitterID).
		Msg("Starting Blind Coding")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Load Question Corpus ──────────────────────────────────────────
	store, err := database.LoadQuestionStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load question corpus")
	}

	// ─── Connect to Redis (optional) ───────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	if rdb != nil {
		defer rdb.Close()
	}

	// ─── Initialize Services ──────────────────────────────────────────
	hub := ws.NewHub(log)
	var notifier service.OverviewNotifier = hub
	channel := config.CacheKey.OverviewChannel(cfg.InstanceID)
	origin := uuid.NewString()
	if rdb != nil {
		notifier = ws.NewRedisNotifier(rdb, hub, channel, origin, log)
	}

	tracker := service.NewSubmissionTracker()
	writer := service.NewSubmissionWriter(cfg.SubmissionsDir, log)
	practice := service.NewPracticeService(store, tracker, writer, notifier, cfg.SubmitterID, nil, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Practice: handler.NewPracticeHandler(practice, log),
		WS:       handler.NewWSHandler(practice, hub, log, cfg.AllowedOrigins),
		System:   handler.NewSystemHandler(store, tracker, hub, rdb),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	if rdb != nil {
		relay := worker.NewNotificationRelay(rdb, hub, channel, origin, log)
		go relay.Start(workerCtx)
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(workerCtx, handlers, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              "127.0.0.1:" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("url", "http://"+srv.Addr+"/overview").Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	// In-flight submissions finish inside their request goroutines.
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	workerCancel()

	log.Info().Int("submitted", tracker.Len()).Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
