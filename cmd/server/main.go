package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/tutorstack/tutor-backend/internal/config"
	"github.com/tutorstack/tutor-backend/internal/database"
	"github.com/tutorstack/tutor-backend/internal/handler"
	"github.com/tutorstack/tutor-backend/internal/llm"
	"github.com/tutorstack/tutor-backend/internal/logger"
	"github.com/tutorstack/tutor-backend/internal/repository"
	"github.com/tutorstack/tutor-backend/internal/router"
	"github.com/tutorstack/tutor-backend/internal/service"
	"github.com/tutorstack/tutor-backend/internal/storage"
	"github.com/tutorstack/tutor-backend/internal/validator"
	"github.com/tutorstack/tutor-backend/internal/worker"
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
		Msg("Starting Tutor Backend")

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

	// ─── Initialize File Storage ───────────────────────────────────────
	store, err := storage.NewFSStore(cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize upload storage")
	}

	// ─── Initialize Grading Service Client ─────────────────────────────
	// A missing API key is a configuration error; the process refuses to
	// start rather than failing on the first graded answer.
	llmClient, err := llm.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize grading service client")
	}

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	documentRepo := repository.NewDocumentRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	answerRepo := repository.NewAnswerRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg)
	documentService := service.NewDocumentService(documentRepo, questionRepo, store, rdb, cfg, log)
	evaluationService := service.NewEvaluationService(questionRepo, answerRepo, store, llmClient, cfg.LLMTimeout, log)
	hintService := service.NewHintService(questionRepo, store, llmClient, cfg.LLMTimeout, log)
	extractionService := service.NewExtractionService(documentRepo, questionRepo, store, llmClient, rdb, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:     handler.NewAuthHandler(authService, userRepo),
		Document: handler.NewDocumentHandler(documentService),
		Answer:   handler.NewAnswerHandler(evaluationService),
		Hint:     handler.NewHintHandler(hintService),
		WS:       handler.NewWSHandler(rdb, documentService, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	extractionWorker := worker.NewExtractionWorker(extractionService, rdb, log)
	go extractionWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the extraction worker. In-flight jobs finish on restart: the
	// queue item was already consumed, but an interrupted document simply
	// stays in PROCESSING until re-uploaded.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow the worker to finish its poll.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
