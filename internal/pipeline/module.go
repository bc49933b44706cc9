// Package pipeline provides the lead pipeline bounded context module.
package pipeline

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"fieldsales_backend/internal/events"
	apphttp "fieldsales_backend/internal/http"
	"fieldsales_backend/internal/pipeline/handler"
	"fieldsales_backend/internal/pipeline/remote"
	"fieldsales_backend/internal/pipeline/repository"
	"fieldsales_backend/internal/pipeline/seed"
	"fieldsales_backend/internal/pipeline/service"
	"fieldsales_backend/platform/config"
	"fieldsales_backend/platform/logger"
	"fieldsales_backend/platform/validator"
)

// Config combines the config interfaces the pipeline module needs.
type Config interface {
	config.PipelineConfig
	config.SeedConfig
}

// Module is the pipeline bounded context module.
type Module struct {
	service *service.Service
	handler *handler.Handler
	store   *remote.Client
	log     *logger.Logger
	seedSrc string
}

// NewModule creates and initializes the pipeline module.
func NewModule(cfg Config, pool *pgxpool.Pool, syncer service.SyncEnqueuer, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	store := remote.New(cfg, log)
	if !store.Enabled() {
		log.Info("pipeline store disabled: PIPELINE_BASE_URL not configured, leads stay local")
	}

	repo := repository.New(pool)
	svc := service.New(repo, store, syncer, bus, log)

	return &Module{
		service: svc,
		handler: handler.New(svc, val),
		store:   store,
		log:     log,
		seedSrc: cfg.GetSeedFile(),
	}
}

// Name returns the module's identifier.
func (m *Module) Name() string { return "pipeline" }

// Service returns the pipeline service for other modules and the worker.
func (m *Module) Service() *service.Service { return m.service }

// Store returns the remote store client for health checks.
func (m *Module) Store() *remote.Client { return m.store }

// SeedIfEmpty installs the demo leads when the cache holds nothing. A
// missing or broken seed file is logged and skipped, never fatal.
func (m *Module) SeedIfEmpty(ctx context.Context) {
	if m.seedSrc == "" {
		return
	}
	leads, err := seed.Load(m.seedSrc)
	if err != nil {
		m.log.Warn("pipeline seed skipped", "file", m.seedSrc, "error", err)
		return
	}
	if err := m.service.SeedLeads(ctx, leads); err != nil {
		m.log.Warn("pipeline seed failed", "error", err)
	}
}

// RegisterRoutes mounts the pipeline routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	g := ctx.Protected.Group("/pipeline")
	g.GET("/leads", m.handler.ListLeads)
	g.POST("/leads/from-reminder", m.handler.ConvertReminder)
	g.POST("/leads/:id/advance", m.handler.AdvanceStage)
	g.POST("/leads/:id/retreat", m.handler.RetreatStage)
	g.GET("/classification", m.handler.Classification)
	g.GET("/my-day", m.handler.MyDay)
	g.GET("/preferences", m.handler.GetPreferences)
	g.PUT("/preferences", m.handler.SavePreferences)
	g.POST("/sync", m.handler.Sync)
}
