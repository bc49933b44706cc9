package scanner

import (
	apphttp "fieldsales_backend/internal/http"
	"fieldsales_backend/platform/cache"
	"fieldsales_backend/platform/config"
	"fieldsales_backend/platform/logger"
)

// Module is the scanner bounded context module.
type Module struct {
	client  *Client
	handler *Handler
}

// NewModule creates and initializes the scanner module.
func NewModule(cfg config.ScannerConfig, snapshots *cache.Cache, log *logger.Logger) *Module {
	client := NewClient(cfg, log)
	if !client.Enabled() {
		log.Info("scanner disabled: SCANNER_BASE_URL not configured")
	}

	return &Module{
		client:  client,
		handler: NewHandler(client, snapshots, log),
	}
}

// Name returns the module's identifier.
func (m *Module) Name() string { return "scanner" }

// Client returns the scanner client for health checks.
func (m *Module) Client() *Client { return m.client }

// RegisterRoutes mounts the scanner routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	g := ctx.Protected.Group("/scanner")
	g.GET("/stats", m.handler.GetStats)
	g.GET("/results", m.handler.GetResults)
}
