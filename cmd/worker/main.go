package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"fieldsales_backend/internal/brief"
	"fieldsales_backend/internal/email"
	"fieldsales_backend/internal/events"
	"fieldsales_backend/internal/pipeline/remote"
	"fieldsales_backend/internal/pipeline/repository"
	"fieldsales_backend/internal/pipeline/service"
	"fieldsales_backend/internal/scheduler"
	"fieldsales_backend/platform/config"
	"fieldsales_backend/platform/db"
	"fieldsales_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting worker", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	eventBus := events.NewInMemoryBus(log)

	// The worker does not enqueue sync tasks itself, it only executes them,
	// so the pipeline service runs without a sync enqueuer here.
	pipelineStore := remote.New(cfg, log)
	pipelineSvc := service.New(repository.New(pool), pipelineStore, nil, eventBus, log)

	briefSvc := brief.New(pipelineSvc, brief.NewClient(cfg, log), log)

	var sender email.Sender = email.NoopSender{}
	if cfg.GetEmailEnabled() {
		sender = email.NewSMTPSender(cfg)
	} else {
		log.Warn("email disabled; daily brief will be generated but not delivered")
	}

	worker, err := scheduler.NewWorker(cfg, pipelineSvc, briefSvc, sender, log)
	if err != nil {
		log.Error("failed to build worker", "error", err)
		panic("failed to build worker: " + err.Error())
	}

	log.Info("worker listening", "queue", cfg.GetAsynqQueueName())
	worker.Run(ctx)
	log.Info("worker stopped")
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if lastErr = fn(); lastErr == nil {
			return nil
		}
		log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", lastErr)

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return lastErr
}
