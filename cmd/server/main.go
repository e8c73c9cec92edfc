package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nexlearn/nexlearn-backend/internal/broker"
	"github.com/nexlearn/nexlearn-backend/internal/cache"
	"github.com/nexlearn/nexlearn-backend/internal/config"
	"github.com/nexlearn/nexlearn-backend/internal/database"
	"github.com/nexlearn/nexlearn-backend/internal/handler"
	"github.com/nexlearn/nexlearn-backend/internal/logger"
	"github.com/nexlearn/nexlearn-backend/internal/mailer"
	"github.com/nexlearn/nexlearn-backend/internal/middleware"
	"github.com/nexlearn/nexlearn-backend/internal/repository"
	"github.com/nexlearn/nexlearn-backend/internal/router"
	"github.com/nexlearn/nexlearn-backend/internal/service"
	"github.com/nexlearn/nexlearn-backend/internal/worker"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting NexLearn Backend")

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
	userRepo := repository.NewUserRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)

	courseCache := cache.NewCourseCache(rdb, cfg.CourseCacheTTL)
	commentFeed := broker.NewCommentFeed(rdb)
	contactQueue := broker.NewContactQueue(rdb)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, userRepo, log)
	userService := service.NewUserService(userRepo)
	courseService := service.NewCourseService(courseRepo, courseCache, log)
	enrollmentService := service.NewEnrollmentService(userRepo, courseRepo, log)
	commentService := service.NewCommentService(commentRepo, courseRepo, commentFeed, log)
	contactService := service.NewContactService(contactQueue)

	// ─── Initialize Handlers ──────────────────────────────────────────
	checks := map[string]handler.Pinger{
		"database": pool.Ping,
		"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	}
	handlers := &router.Handlers{
		Auth:    handler.NewAuthHandler(authService, log),
		Course:  handler.NewCourseHandler(courseService, log),
		Comment: handler.NewCommentHandler(commentService, log),
		User:    handler.NewUserHandler(userService, enrollmentService, log),
		Contact: handler.NewContactHandler(contactService, log),
		System:  handler.NewSystemHandler(checks, contactQueue.Len, log),
		WS:      handler.NewWSHandler(commentFeed, courseService, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	smtpMailer := mailer.New(mailer.SMTPConfigFrom(cfg), log)
	if !smtpMailer.Configured() {
		log.Warn().Msg("SMTP credentials not configured; contact messages will be logged and dropped")
	}
	notificationWorker := worker.NewNotificationWorker(contactQueue, smtpMailer, cfg.WorkerDrainTimeout, log)

	workerDone := make(chan struct{})
	go func() {
		notificationWorker.Start(workerCtx)
		close(workerDone)
	}()

	// ─── Setup Router ──────────────────────────────────────────────────
	// AUTH_RATE_LIMIT_PER_MINUTE=0 disables the limiter.
	var authLimiter *middleware.RateLimiter
	if cfg.AuthRateLimit > 0 {
		authLimiter = middleware.NewRateLimiter(cfg.AuthRateLimit, time.Minute)
		defer authLimiter.Stop()
	}

	r := router.SetupRouter(authService, userService, handlers, authLimiter, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
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

	// 2. Stop background workers and wait for the queue to drain.
	workerCancel()
	select {
	case <-workerDone:
	case <-time.After(cfg.WorkerDrainTimeout + time.Second):
		log.Warn().Msg("Worker did not finish draining in time")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
