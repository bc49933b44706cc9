package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"fieldsales_backend/internal/barrelhouse"
	"fieldsales_backend/internal/brief"
	"fieldsales_backend/internal/connections"
	"fieldsales_backend/internal/events"
	apphttp "fieldsales_backend/internal/http"
	"fieldsales_backend/internal/http/router"
	"fieldsales_backend/internal/pipeline"
	"fieldsales_backend/internal/reminders"
	"fieldsales_backend/internal/scanner"
	"fieldsales_backend/internal/scheduler"
	"fieldsales_backend/platform/cache"
	"fieldsales_backend/platform/config"
	"fieldsales_backend/platform/db"
	"fieldsales_backend/platform/logger"
	"fieldsales_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

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
	log.Info("database connection established")

	eventBus := events.NewInMemoryBus(log)

	snapshots := initCache(cfg, log)

	syncClient, closeSync := initSyncClient(cfg, log)
	if closeSync != nil {
		defer closeSync()
	}

	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	pipelineModule := pipeline.NewModule(cfg, pool, syncClient, eventBus, val, log)
	pipelineModule.SeedIfEmpty(ctx)

	remindersModule := reminders.NewModule(cfg, snapshots, eventBus, val, log)
	briefModule := brief.NewModule(cfg, pipelineModule.Service(), log)
	scannerModule := scanner.NewModule(cfg, snapshots, log)
	barrelhouseModule := barrelhouse.NewModule(cfg, snapshots, log)
	connectionsModule := connections.NewModule(connectionTargets(cfg, pipelineModule, remindersModule, scannerModule, barrelhouseModule, snapshots), log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   pool,
		EventBus: eventBus,
		Modules: []apphttp.Module{
			remindersModule,
			pipelineModule,
			briefModule,
			scannerModule,
			barrelhouseModule,
			connectionsModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initCache(cfg config.RedisConfig, log *logger.Logger) *cache.Cache {
	if !cfg.IsRedisEnabled() {
		log.Warn("REDIS_URL not configured; snapshot caching disabled")
		return nil
	}

	snapshots, err := cache.NewFromURL(cfg.GetRedisURL())
	if err != nil {
		log.Error("failed to initialize snapshot cache", "error", err)
		return nil
	}
	return snapshots
}

func initSyncClient(cfg config.SchedulerConfig, log *logger.Logger) (*scheduler.Client, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; background lead sync disabled")
		return nil, nil
	}

	syncClient, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize sync client", "error", err)
		return nil, nil
	}

	return syncClient, func() {
		_ = syncClient.Close()
	}
}

func connectionTargets(cfg *config.Config, pipelineModule *pipeline.Module, remindersModule *reminders.Module, scannerModule *scanner.Module, barrelhouseModule *barrelhouse.Module, snapshots *cache.Cache) []connections.Target {
	municipal := connections.Target{ID: "municipal", Name: "Municipal CRM", Endpoint: cfg.GetMunicipalBaseURL()}
	if remindersModule.Store().Enabled() {
		municipal.Check = remindersModule.Store().Ping
	}

	pipelineStore := connections.Target{ID: "pipeline", Name: "Pipeline Store", Endpoint: cfg.GetPipelineBaseURL()}
	if pipelineModule.Store().Enabled() {
		pipelineStore.Check = pipelineModule.Store().Ping
	}

	scannerTarget := connections.Target{ID: "scanner", Name: "Municipal Scanner", Endpoint: cfg.GetScannerBaseURL()}
	if scannerModule.Client().Enabled() {
		scannerTarget.Check = scannerModule.Client().Ping
	}

	crm := connections.Target{ID: "barrelhouse", Name: "BarrelHouse CRM API", Endpoint: cfg.GetBarrelhouseBaseURL()}
	if barrelhouseModule.Client().Enabled() {
		crm.Check = barrelhouseModule.Client().Ping
	}

	redisTarget := connections.Target{ID: "redis", Name: "Snapshot Cache", Endpoint: cfg.GetRedisURL()}
	if snapshots != nil {
		redisTarget.Check = snapshots.Ping
	}

	return []connections.Target{municipal, pipelineStore, crm, scannerTarget, redisTarget}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
