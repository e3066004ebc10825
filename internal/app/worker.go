package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"worknest/internal/booking"
	"worknest/internal/messaging/kafka"
	"worknest/internal/messaging/kafka/producer"
	"worknest/internal/shared/connection"
	"worknest/internal/workspace"

	"go.uber.org/zap"
)

const defaultSweepInterval = time.Minute

// RunWorker hosts the two background loops: the outbox publisher and the
// booking expiration sweep.
func RunWorker() error {
	logger := zap.L().Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(kafkaBroker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	bookingRepo := booking.NewRepository(gormDB)
	workspaceRepo := workspace.NewRepository(gormDB)
	bookingService := booking.NewServiceWithOutbox(sqlDB, bookingRepo, workspaceRepo, outboxRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		3*time.Second,
	)

	go runExpireSweep(ctx, bookingService, sweepInterval(), logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}

func sweepInterval() time.Duration {
	raw := os.Getenv("SWEEP_INTERVAL")
	if raw == "" {
		return defaultSweepInterval
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return defaultSweepInterval
	}
	return d
}

func runExpireSweep(ctx context.Context, svc booking.Service, interval time.Duration, logger *zap.Logger) {
	log := logger.Named("booking.sweep")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("expire sweep started", zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			log.Info("expire sweep stopped")
			return
		case <-ticker.C:
			expired, err := svc.ExpireSweep(ctx)
			if err != nil {
				log.Error("expire sweep run failed", zap.Error(err))
				continue
			}
			if expired > 0 {
				log.Info("expire sweep run", zap.Int("expired", expired))
			}
		}
	}
}
