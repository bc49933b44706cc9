package brief

import (
	apphttp "fieldsales_backend/internal/http"
	"fieldsales_backend/platform/config"
	"fieldsales_backend/platform/logger"
)

// Module is the daily brief bounded context module.
type Module struct {
	service *Service
	handler *Handler
}

// NewModule creates and initializes the brief module. The module works
// without an assist service configured; briefs then always come from the
// deterministic fallback.
func NewModule(cfg config.AIAssistConfig, pipeline SnapshotProvider, log *logger.Logger) *Module {
	assist := NewClient(cfg, log)
	if !assist.Enabled() {
		log.Info("ai assist disabled: AI_ASSIST_BASE_URL not configured, briefs use fallback")
	}

	svc := New(pipeline, assist, log)
	return &Module{
		service: svc,
		handler: NewHandler(svc),
	}
}

// Name returns the module's identifier.
func (m *Module) Name() string { return "brief" }

// Service returns the brief service for the background worker.
func (m *Module) Service() *Service { return m.service }

// RegisterRoutes mounts the brief routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/brief", m.handler.GetBrief)
}
