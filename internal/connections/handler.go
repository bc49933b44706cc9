package connections

import (
	"github.com/gin-gonic/gin"

	"fieldsales_backend/platform/httpkit"
)

// Handler serves the integrations health screen.
type Handler struct {
	svc *Service
}

// NewHandler creates a new connections handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// GetConnections returns the health of every external collaborator.
// GET /api/v1/connections
func (h *Handler) GetConnections(c *gin.Context) {
	httpkit.OK(c, h.svc.Statuses(c.Request.Context()))
}
