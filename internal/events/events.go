// Package events re-exports the platform event bus and defines the domain
// events exchanged between modules.
package events

import (
	platformevents "fieldsales_backend/platform/events"
	"fieldsales_backend/platform/logger"
)

// Re-exports so internal modules import a single events package.
type (
	Event       = platformevents.Event
	BaseEvent   = platformevents.BaseEvent
	Bus         = platformevents.Bus
	Handler     = platformevents.Handler
	HandlerFunc = platformevents.HandlerFunc
	InMemoryBus = platformevents.InMemoryBus
)

// NewBaseEvent creates a new base event with the current timestamp.
func NewBaseEvent() BaseEvent { return platformevents.NewBaseEvent() }

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return platformevents.NewInMemoryBus(log)
}

// LeadCreated fires when a lead enters the local pipeline store, whether
// converted from a reminder or created manually.
type LeadCreated struct {
	BaseEvent
	LeadID     string `json:"leadId"`
	Source     string `json:"source"`
	CustomerID int64  `json:"customerId,omitempty"`
}

// EventName returns the unique event identifier.
func (LeadCreated) EventName() string { return "pipeline.lead_created" }

// LeadReconciled fires after a locally-minted lead identifier has been
// swapped for its server-assigned one.
type LeadReconciled struct {
	BaseEvent
	OldID string `json:"oldId"`
	NewID string `json:"newId"`
}

// EventName returns the unique event identifier.
func (LeadReconciled) EventName() string { return "pipeline.lead_reconciled" }

// ReminderCompleted fires when a rep marks a reminder done.
type ReminderCompleted struct {
	BaseEvent
	ReminderID int64 `json:"reminderId"`
	CustomerID int64 `json:"customerId,omitempty"`
}

// EventName returns the unique event identifier.
func (ReminderCompleted) EventName() string { return "reminders.completed" }
