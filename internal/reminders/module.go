// Package reminders provides the reminder triage bounded context module.
package reminders

import (
	"fieldsales_backend/internal/events"
	apphttp "fieldsales_backend/internal/http"
	"fieldsales_backend/internal/reminders/handler"
	"fieldsales_backend/internal/reminders/remote"
	"fieldsales_backend/internal/reminders/service"
	"fieldsales_backend/platform/cache"
	"fieldsales_backend/platform/config"
	"fieldsales_backend/platform/logger"
	"fieldsales_backend/platform/validator"
)

// Module is the reminders bounded context module.
type Module struct {
	service *service.Service
	handler *handler.Handler
	store   *remote.Client
}

// NewModule creates and initializes the reminders module. snapshots may be
// nil when redis is not configured.
func NewModule(cfg config.MunicipalConfig, snapshots *cache.Cache, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	store := remote.New(cfg, log)
	if !store.Enabled() {
		log.Info("municipal store disabled: MUNICIPAL_BASE_URL not configured")
	}

	svc := service.New(store, snapshots, bus, log)
	return &Module{
		service: svc,
		handler: handler.New(svc, val),
		store:   store,
	}
}

// Name returns the module's identifier.
func (m *Module) Name() string { return "reminders" }

// Service returns the reminders service for other modules.
func (m *Module) Service() *service.Service { return m.service }

// Store returns the municipal client for health checks.
func (m *Module) Store() *remote.Client { return m.store }

// RegisterRoutes mounts the reminders, dashboard, and customer routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/dashboard/summary", m.handler.GetSummary)

	r := ctx.Protected.Group("/reminders")
	r.GET("", m.handler.ListReminders)
	r.POST("", m.handler.CreateReminder)
	r.GET("/buckets", m.handler.GetBuckets)
	r.POST("/:id/complete", m.handler.CompleteReminder)
	r.POST("/:id/snooze", m.handler.SnoozeReminder)

	c := ctx.Protected.Group("/customers")
	c.GET("", m.handler.ListCustomers)
	c.GET("/:id", m.handler.GetCustomer)
	c.GET("/:id/notes", m.handler.ListNotes)
	c.POST("/:id/notes", m.handler.CreateNote)
	c.GET("/:id/activities", m.handler.ListActivities)
	c.POST("/:id/activities", m.handler.LogActivity)
}
