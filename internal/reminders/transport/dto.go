// Package transport defines the reminders HTTP request shapes.
package transport

import remdomain "fieldsales_backend/internal/reminders/domain"

// CreateReminderRequest carries a new reminder.
type CreateReminderRequest struct {
	CustomerID   *int64              `json:"customer_id"`
	Title        string              `json:"title" validate:"required"`
	Description  *string             `json:"description"`
	DueDate      string              `json:"reminder_date" validate:"required"`
	Priority     *remdomain.Priority `json:"priority" validate:"omitempty,oneof=low medium high"`
	ReminderType *string             `json:"reminder_type"`
}

// SnoozeRequest carries the optional snooze window.
type SnoozeRequest struct {
	Days int `json:"days" validate:"omitempty,min=1,max=90"`
}

// CreateNoteRequest carries a new customer note.
type CreateNoteRequest struct {
	Body string `json:"body" validate:"required"`
}

// LogActivityRequest carries a logged customer touch.
type LogActivityRequest struct {
	ActivityType   string  `json:"activity_type" validate:"required"`
	Summary        string  `json:"summary" validate:"required"`
	Outcome        *string `json:"outcome"`
	CreateFollowUp bool    `json:"create_follow_up"`
}
