package connections

import (
	apphttp "fieldsales_backend/internal/http"
	"fieldsales_backend/platform/logger"
)

// Module is the connections bounded context module.
type Module struct {
	handler *Handler
}

// NewModule creates and initializes the connections module. The targets are
// assembled by the composition root, which knows every collaborator.
func NewModule(targets []Target, log *logger.Logger) *Module {
	return &Module{handler: NewHandler(New(targets, log))}
}

// Name returns the module's identifier.
func (m *Module) Name() string { return "connections" }

// RegisterRoutes mounts the connections routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/connections", m.handler.GetConnections)
}
