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

	"github.com/rs/zerolog"
	"github.com/soupclass/soup-backend/internal/config"
	"github.com/soupclass/soup-backend/internal/database"
	"github.com/soupclass/soup-backend/internal/handler"
	"github.com/soupclass/soup-backend/internal/logger"
	"github.com/soupclass/soup-backend/internal/mailer"
	"github.com/soupclass/soup-backend/internal/repository"
	"github.com/soupclass/soup-backend/internal/router"
	"github.com/soupclass/soup-backend/internal/service"
	"github.com/soupclass/soup-backend/internal/validator"
	"github.com/soupclass/soup-backend/internal/worker"
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
		Msg("Starting Soup Backend")

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
	userRepo := repository.NewUserRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	courseRepo := repository.NewMenuCourseRepository(pool)
	scheduleRepo := repository.NewScheduleRepository(pool)
	csRepo := repository.NewCourseScheduleRepository(pool)
	invoiceRepo := repository.NewInvoiceRepository(pool)
	myClassRepo := repository.NewMyClassRepository(pool)
	paymentRepo := repository.NewPaymentMethodRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	mailQueue := service.NewMailQueue(rdb, log)
	slots := service.NewSlotPublisher(rdb, log)
	mediaService := service.NewMediaService(cfg, log)

	authService := service.NewAuthService(cfg, rdb, userRepo, mailQueue, log)
	userService := service.NewUserService(userRepo, authService, log)
	categoryService := service.NewCategoryService(categoryRepo, mediaService, log)
	courseService := service.NewMenuCourseService(courseRepo, categoryRepo, mediaService, log)
	scheduleService := service.NewScheduleService(scheduleRepo)
	csService := service.NewCourseScheduleService(csRepo, courseRepo, scheduleRepo, slots, log)
	cartService := service.NewCartService(rdb, csRepo, log)
	paymentService := service.NewPaymentMethodService(paymentRepo, mediaService)
	myClassService := service.NewMyClassService(myClassRepo)
	dashboardService := service.NewDashboardService(dashboardRepo)
	invoiceService := service.NewInvoiceService(cfg, service.InvoiceDeps{
		InvoiceRepo: invoiceRepo,
		CSRepo:      csRepo,
		MyClassRepo: myClassRepo,
		UserRepo:    userRepo,
		PaymentRepo: paymentRepo,
		CartService: cartService,
		Slots:       slots,
		Mail:        mailQueue,
	}, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:           handler.NewAuthHandler(authService, cfg.FrontendURL, log),
		User:           handler.NewUserHandler(userService),
		Category:       handler.NewCategoryHandler(categoryService),
		MenuCourse:     handler.NewMenuCourseHandler(courseService, csService),
		Schedule:       handler.NewScheduleHandler(scheduleService),
		CourseSchedule: handler.NewCourseScheduleHandler(csService),
		Invoice:        handler.NewInvoiceHandler(invoiceService),
		MyClass:        handler.NewMyClassHandler(myClassService),
		PaymentMethod:  handler.NewPaymentMethodHandler(paymentService),
		Cart:           handler.NewCartHandler(cartService),
		Dashboard:      handler.NewDashboardHandler(dashboardService),
		System:         handler.NewSystemHandler(pool, rdb),
		WS:             handler.NewWSHandler(slots, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	var workers sync.WaitGroup

	mailWorker := worker.NewMailWorker(rdb, mailer.New(cfg, log), log)
	workers.Add(1)
	go func() {
		defer workers.Done()
		mailWorker.Start(workerCtx)
	}()

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(ctx, authService, handlers, cfg, log)

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

	// 1. Stop accepting new HTTP requests (10s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}
	cancel()

	// 2. Stop background workers and wait for the mail queue to drain.
	workerCancel()
	workers.Wait()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
