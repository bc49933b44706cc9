package barrelhouse

import (
	apphttp "fieldsales_backend/internal/http"
	"fieldsales_backend/platform/cache"
	"fieldsales_backend/platform/config"
	"fieldsales_backend/platform/logger"
)

// Module is the BarrelHouse CRM bounded context module.
type Module struct {
	client  *Client
	handler *Handler
}

// NewModule creates and initializes the barrelhouse module.
func NewModule(cfg config.BarrelhouseConfig, snapshots *cache.Cache, log *logger.Logger) *Module {
	client := NewClient(cfg, log)
	if !client.Enabled() {
		log.Info("barrelhouse crm disabled: BARRELHOUSE_BASE_URL not configured")
	}

	return &Module{
		client:  client,
		handler: NewHandler(client, snapshots, log),
	}
}

// Name returns the module's identifier.
func (m *Module) Name() string { return "barrelhouse" }

// Client returns the CRM client for health checks.
func (m *Module) Client() *Client { return m.client }

// RegisterRoutes mounts the barrelhouse routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/pipeline/stats", m.handler.GetStats)
}
