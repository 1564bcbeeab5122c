package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/carelink/booking-api/internal/config"
	"github.com/carelink/booking-api/internal/email"
	"github.com/carelink/booking-api/internal/repository"
	"github.com/carelink/booking-api/internal/repository/postgres"
	"github.com/carelink/booking-api/internal/worker"
	"github.com/carelink/booking-api/pkg/logger"
	"github.com/carelink/booking-api/pkg/messaging/redis"
	"github.com/carelink/booking-api/pkg/metrics"
)

const outboxRetention = 7 * 24 * time.Hour

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

	baseRepo := postgres.NewBaseRepository(db)
	patientRepo := postgres.NewPatientRepository(baseRepo)
	doctorRepo := postgres.NewDoctorRepository(baseRepo)
	outboxRepo := postgres.NewOutboxRepository(baseRepo)

	emailSvc := email.NewSMTPService(email.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})

	appMetrics := metrics.NewMetrics("booking_worker")
	notifier := worker.NewNotifier(broker, emailSvc, patientRepo, doctorRepo, appLogger, appMetrics)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	setupHealthCheck(appLogger)

	go cleanupLoop(ctx, outboxRepo, appLogger, retentionFor(cfg))

	errCh := make(chan error, 1)
	go func() {
		errCh <- notifier.Run(ctx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		appLogger.Info("shutting down worker", "signal", sig.String())
		cancel()
	case err := <-errCh:
		if err != nil && err != context.Canceled {
			appLogger.Error(err, "notifier stopped")
		}
	}

	appLogger.Info("worker exited properly")
}

func retentionFor(cfg *config.Config) time.Duration {
	if cfg.Outbox.RetainFor > 0 {
		return cfg.Outbox.RetainFor
	}
	return outboxRetention
}

// cleanupLoop prunes processed outbox rows past the retention window.
func cleanupLoop(ctx context.Context, repo repository.OutboxRepository, appLogger *logger.Logger, retain time.Duration) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := repo.DeleteProcessedBefore(ctx, time.Now().Add(-retain))
			if err != nil {
				appLogger.Error(err, "failed to prune outbox events")
				continue
			}
			if deleted > 0 {
				appLogger.Info("pruned outbox events", "deleted", deleted)
			}
		}
	}
}

func setupHealthCheck(appLogger *logger.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	go func() {
		if err := http.ListenAndServe(":8081", mux); err != nil {
			appLogger.Error(err, "health check server failed")
		}
	}()
}
