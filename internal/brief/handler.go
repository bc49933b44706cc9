package brief

import (
	"github.com/gin-gonic/gin"

	"fieldsales_backend/internal/pipeline/domain"
	"fieldsales_backend/platform/httpkit"
)

// Handler handles HTTP requests for the daily brief.
type Handler struct {
	svc *Service
}

// NewHandler creates a new brief handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// BriefResponse is the brief plus where it came from, so the client can
// mark AI-written prose.
type BriefResponse struct {
	Summary    string                 `json:"summary"`
	HotInsight string                 `json:"hotInsight"`
	FollowUps  []domain.BriefFollowUp `json:"followUps"`
	Source     string                 `json:"source"`
}

// GetBrief returns the daily brief.
// GET /api/v1/brief
func (h *Handler) GetBrief(c *gin.Context) {
	brief, source, err := h.svc.Generate(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, BriefResponse{
		Summary:    brief.Summary,
		HotInsight: brief.HotInsight,
		FollowUps:  brief.FollowUps,
		Source:     source,
	})
}
