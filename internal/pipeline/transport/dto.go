// Package transport defines the pipeline HTTP request and response shapes.
package transport

import (
	remdomain "fieldsales_backend/internal/reminders/domain"
)

// ConvertReminderRequest carries the reminder to convert. The client sends
// the reminder as it holds it so conversion works offline from the store.
type ConvertReminderRequest struct {
	Reminder remdomain.Reminder `json:"reminder" validate:"required"`
}

// SyncResponse reports how many locally minted leads were promoted.
type SyncResponse struct {
	Synced int `json:"synced"`
}
