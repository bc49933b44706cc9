// Package handler exposes reminder triage over HTTP.
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fieldsales_backend/internal/reminders/remote"
	"fieldsales_backend/internal/reminders/service"
	"fieldsales_backend/internal/reminders/transport"
	"fieldsales_backend/platform/httpkit"
	"fieldsales_backend/platform/validator"
)

// Handler handles HTTP requests for reminders and customer records.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid id"
)

// New creates a new reminders handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return 0, false
	}
	return id, true
}

// ListReminders returns the raw reminder snapshot.
// GET /api/v1/reminders
func (h *Handler) ListReminders(c *gin.Context) {
	reminders, err := h.svc.List(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, reminders)
}

// GetBuckets returns the triaged reminder queue.
// GET /api/v1/reminders/buckets
func (h *Handler) GetBuckets(c *gin.Context) {
	buckets, err := h.svc.Buckets(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, buckets)
}

// GetSummary returns the dashboard counters.
// GET /api/v1/dashboard/summary
func (h *Handler) GetSummary(c *gin.Context) {
	summary, err := h.svc.Summary(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, summary)
}

// CreateReminder adds a reminder.
// POST /api/v1/reminders
func (h *Handler) CreateReminder(c *gin.Context) {
	var req transport.CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	reminder, err := h.svc.Create(c.Request.Context(), remote.CreateReminderParams{
		CustomerID:   req.CustomerID,
		Title:        req.Title,
		Description:  req.Description,
		DueDate:      req.DueDate,
		Priority:     req.Priority,
		ReminderType: req.ReminderType,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, reminder)
}

// CompleteReminder marks a reminder done.
// POST /api/v1/reminders/:id/complete
func (h *Handler) CompleteReminder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	reminder, err := h.svc.Complete(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, reminder)
}

// SnoozeReminder pushes a reminder out.
// POST /api/v1/reminders/:id/snooze
func (h *Handler) SnoozeReminder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req transport.SnoozeRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	reminder, err := h.svc.Snooze(c.Request.Context(), id, req.Days)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, reminder)
}

// ListCustomers returns customer accounts.
// GET /api/v1/customers?search=
func (h *Handler) ListCustomers(c *gin.Context) {
	customers, err := h.svc.ListCustomers(c.Request.Context(), c.Query("search"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, customers)
}

// GetCustomer returns one customer account.
// GET /api/v1/customers/:id
func (h *Handler) GetCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	customer, err := h.svc.GetCustomer(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, customer)
}

// ListNotes returns the notes on a customer account.
// GET /api/v1/customers/:id/notes
func (h *Handler) ListNotes(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	notes, err := h.svc.ListNotes(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, notes)
}

// CreateNote adds a note to a customer account.
// POST /api/v1/customers/:id/notes
func (h *Handler) CreateNote(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req transport.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	note, err := h.svc.CreateNote(c.Request.Context(), id, req.Body)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, note)
}

// ListActivities returns the logged touches on a customer account.
// GET /api/v1/customers/:id/activities
func (h *Handler) ListActivities(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	activities, err := h.svc.ListActivities(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, activities)
}

// LogActivity records a touch on a customer account.
// POST /api/v1/customers/:id/activities
func (h *Handler) LogActivity(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req transport.LogActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	activity, err := h.svc.LogActivity(c.Request.Context(), remote.CreateActivityParams{
		CustomerID:   id,
		ActivityType: req.ActivityType,
		Summary:      req.Summary,
		Outcome:      req.Outcome,
	}, req.CreateFollowUp)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, activity)
}
