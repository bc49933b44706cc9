// Package handler exposes the pipeline over HTTP.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"fieldsales_backend/internal/pipeline/domain"
	"fieldsales_backend/internal/pipeline/service"
	"fieldsales_backend/internal/pipeline/transport"
	"fieldsales_backend/platform/httpkit"
	"fieldsales_backend/platform/validator"
)

// Handler handles HTTP requests for the pipeline.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest = "invalid request"
	msgInvalidLeadID  = "invalid lead id"
)

// New creates a new pipeline handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// ListLeads returns the current lead snapshot.
// GET /api/v1/pipeline/leads
func (h *Handler) ListLeads(c *gin.Context) {
	leads, err := h.svc.Snapshot(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, leads)
}

// ConvertReminder derives a lead from a reminder.
// POST /api/v1/pipeline/leads/from-reminder
func (h *Handler) ConvertReminder(c *gin.Context) {
	var req transport.ConvertReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if req.Reminder.ID == 0 || req.Reminder.Title == "" {
		httpkit.Error(c, http.StatusBadRequest, "reminder id and title are required", nil)
		return
	}

	lead, err := h.svc.ConvertReminder(c.Request.Context(), req.Reminder)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, lead)
}

// AdvanceStage moves a lead one stage forward.
// POST /api/v1/pipeline/leads/:id/advance
func (h *Handler) AdvanceStage(c *gin.Context) {
	h.moveStage(c, h.svc.AdvanceStage)
}

// RetreatStage moves a lead one stage back.
// POST /api/v1/pipeline/leads/:id/retreat
func (h *Handler) RetreatStage(c *gin.Context) {
	h.moveStage(c, h.svc.RetreatStage)
}

func (h *Handler) moveStage(c *gin.Context, move func(ctx context.Context, id domain.LeadID) (domain.Lead, error)) {
	id := domain.ParseLeadID(c.Param("id"))
	if id.IsZero() {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidLeadID, nil)
		return
	}

	lead, err := move(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

// Classification returns the stage counts and priority queues.
// GET /api/v1/pipeline/classification
func (h *Handler) Classification(c *gin.Context) {
	classification, err := h.svc.Classification(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, classification)
}

// MyDay returns the leads in the rep's chosen My Day stages.
// GET /api/v1/pipeline/my-day
func (h *Handler) MyDay(c *gin.Context) {
	leads, err := h.svc.MyDay(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, leads)
}

// GetPreferences returns the saved view preferences.
// GET /api/v1/pipeline/preferences
func (h *Handler) GetPreferences(c *gin.Context) {
	prefs, err := h.svc.Preferences(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, prefs)
}

// SavePreferences persists the view preferences.
// PUT /api/v1/pipeline/preferences
func (h *Handler) SavePreferences(c *gin.Context) {
	var prefs domain.Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	saved, err := h.svc.SavePreferences(c.Request.Context(), prefs)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, saved)
}

// Sync pushes all locally minted leads to the pipeline store.
// POST /api/v1/pipeline/sync
func (h *Handler) Sync(c *gin.Context) {
	synced, err := h.svc.SyncLocalLeads(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.SyncResponse{Synced: synced})
}
