package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/parikshasetu/assessment-core/internal/client"
	"github.com/parikshasetu/assessment-core/internal/config"
	"github.com/parikshasetu/assessment-core/internal/database"
	"github.com/parikshasetu/assessment-core/internal/handler"
	"github.com/parikshasetu/assessment-core/internal/logger"
	"github.com/parikshasetu/assessment-core/internal/notify"
	"github.com/parikshasetu/assessment-core/internal/repository"
	"github.com/parikshasetu/assessment-core/internal/router"
	"github.com/parikshasetu/assessment-core/internal/service"
	"github.com/parikshasetu/assessment-core/internal/validator"
	"github.com/parikshasetu/assessment-core/internal/worker"
	"github.com/rs/zerolog"
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
		Msg("Starting Assessment Core")

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
	enrollmentRepo := repository.NewEnrollmentRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	examRepo := repository.NewExamRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	submissionRepo := repository.NewSubmissionRepository(pool)
	resultRepo := repository.NewResultRepository(pool)
	violationRepo := repository.NewViolationRepository(pool)

	// ─── Collaborator Clients ──────────────────────────────────────────
	identityClient := client.NewIdentityClient(cfg.IdentityBaseURL, cfg.UpstreamTimeout)
	courseEnrollmentClient := client.NewCourseEnrollmentClient(cfg.CourseEnrollmentBaseURL, cfg.UpstreamTimeout)
	notificationClient := client.NewNotificationClient(cfg.NotificationBaseURL, cfg.UpstreamTimeout)

	dispatcher := notify.NewOutboxDispatcher(rdb, log)
	feed := notify.NewRedisPublisher(rdb)

	// ─── Initialize Services ──────────────────────────────────────────
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, courseRepo, examRepo, identityClient, dispatcher, log)
	rosterService := service.NewRosterService(enrollmentService, identityClient, cfg.BulkImportAutoApprove, log)
	courseService := service.NewCourseService(courseRepo)
	examService := service.NewExamService(examRepo, questionRepo, enrollmentRepo, courseEnrollmentClient, log)
	resultService := service.NewResultService(resultRepo, log)
	submissionService := service.NewSubmissionService(submissionRepo, examRepo, resultService, cfg.DefaultTotalMarks, log)
	violationService := service.NewViolationService(violationRepo, feed, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Enrollment: handler.NewEnrollmentHandler(enrollmentService),
		Roster:     handler.NewRosterHandler(rosterService, log),
		Course:     handler.NewCourseHandler(courseService),
		Exam:       handler.NewExamHandler(examService),
		Submission: handler.NewSubmissionHandler(submissionService),
		Result:     handler.NewResultHandler(resultService),
		Violation:  handler.NewViolationHandler(violationService),
		ProctorWS:  handler.NewProctorWSHandler(rdb, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	notificationWorker := worker.NewNotificationWorker(rdb, notificationClient, log)
	go notificationWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg)

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

	// 2. Stop the outbox worker and let it finish its in-flight delivery.
	workerCancel()
	time.Sleep(2 * time.Second)

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
