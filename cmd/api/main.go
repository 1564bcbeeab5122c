package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/carelink/booking-api/internal/config"
	"github.com/carelink/booking-api/internal/handler"
	adminHandler "github.com/carelink/booking-api/internal/handler/admin"
	doctorHandler "github.com/carelink/booking-api/internal/handler/doctor"
	homeHandler "github.com/carelink/booking-api/internal/handler/home"
	patientHandler "github.com/carelink/booking-api/internal/handler/patient"
	"github.com/carelink/booking-api/internal/middleware"
	"github.com/carelink/booking-api/internal/repository/postgres"
	"github.com/carelink/booking-api/internal/router"
	adminService "github.com/carelink/booking-api/internal/service/admin"
	authService "github.com/carelink/booking-api/internal/service/auth"
	bookingService "github.com/carelink/booking-api/internal/service/booking"
	contactService "github.com/carelink/booking-api/internal/service/contact"
	doctorService "github.com/carelink/booking-api/internal/service/doctor"
	notificationService "github.com/carelink/booking-api/internal/service/notification"
	patientService "github.com/carelink/booking-api/internal/service/patient"
	"github.com/carelink/booking-api/pkg/auth"
	"github.com/carelink/booking-api/pkg/logger"
	"github.com/carelink/booking-api/pkg/messaging/redis"
	"github.com/carelink/booking-api/pkg/metrics"
	"github.com/carelink/booking-api/pkg/security"
	"github.com/carelink/booking-api/pkg/worker"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	appLogger := logger.NewLogger(&logger.Config{
		Level:  level,
		Output: os.Stdout,
		Pretty: cfg.Log.Pretty,
	})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	appMetrics := metrics.NewMetrics("booking_api")

	// Repositories
	baseRepo := postgres.NewBaseRepository(db)
	bookingRepo := postgres.NewBookingRepository(baseRepo)
	patientRepo := postgres.NewPatientRepository(baseRepo)
	doctorRepo := postgres.NewDoctorRepository(baseRepo)
	adminRepo := postgres.NewAdminRepository(baseRepo)
	contactRepo := postgres.NewContactRepository(baseRepo)
	outboxRepo := postgres.NewOutboxRepository(baseRepo)

	// Services
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)
	dispatcher := notificationService.NewOutboxDispatcher(outboxRepo)

	authSvc := authService.NewService(patientRepo, doctorRepo, adminRepo, hasher, jwtSvc)
	bookingSvc := bookingService.NewService(bookingRepo, dispatcher, appLogger, appMetrics)
	patientSvc := patientService.NewService(patientRepo, doctorRepo)
	doctorSvc := doctorService.NewService(doctorRepo)
	adminSvc := adminService.NewService(patientRepo, doctorRepo, bookingRepo)
	contactSvc := contactService.NewService(contactRepo)

	// Handlers
	authMiddleware := middleware.NewAuthMiddleware(jwtSvc)
	h := handler.NewHandler(db)
	patientH := patientHandler.NewHandler(authSvc, patientSvc, bookingSvc)
	doctorH := doctorHandler.NewHandler(authSvc, doctorSvc, bookingSvc)
	adminH := adminHandler.NewHandler(authSvc, adminSvc, bookingSvc)
	homeH := homeHandler.NewHandler(doctorSvc, contactSvc)

	r := router.NewRouter(authMiddleware, patientH, doctorH, adminH, homeH, h, router.RouterConfig{
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
		RequestTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		CORSConfig:     middleware.DefaultCORSConfig(),
		MetricsPrefix:  "booking_api",
	})
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	// Drain lifecycle events to the broker in the background.
	broker, err := redis.NewRedisBroker(redis.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: cfg.Redis.RetryBackoff,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, appLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	processorCtx, stopProcessor := context.WithCancel(context.Background())
	defer stopProcessor()

	outboxProcessor := worker.NewOutboxProcessor(outboxRepo, broker, worker.OutboxProcessorConfig{
		BatchSize:     cfg.Outbox.BatchSize,
		PollInterval:  cfg.Outbox.PollInterval,
		RetryAttempts: cfg.Outbox.RetryAttempts,
		RetryDelay:    cfg.Outbox.RetryDelay,
	}, appLogger, appMetrics)
	go outboxProcessor.Start(processorCtx)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()
	appLogger.Info("server listening", "port", cfg.Server.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("shutting down server")

	stopProcessor()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info("server exited properly")
}
