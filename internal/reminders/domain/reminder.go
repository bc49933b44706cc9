// Package domain holds the reminder model and the due-date bucketing rules.
// Everything here is a pure function over snapshots handed in by the caller:
// no I/O, no clock reads, no mutation of inputs.
package domain

import "time"

// Status is the lifecycle state of a reminder. Reminders are never deleted,
// only transitioned between statuses by the municipal CRM store.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusSnoozed   Status = "snoozed"
	StatusCancelled Status = "cancelled"
)

// Priority is the optional urgency assigned when the reminder was created.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// CustomerRef is the customer record embedded in a reminder row.
type CustomerRef struct {
	ID            int64   `json:"id"`
	BusinessName  string  `json:"business_name"`
	City          string  `json:"city"`
	State         string  `json:"state"`
	MainPhone     *string `json:"main_phone"`
	BillToAddress *string `json:"bill_to_address"`
}

// Reminder is a follow-up tied to a customer account, fetched from the
// municipal CRM store. Field names follow its REST representation.
type Reminder struct {
	ID           int64        `json:"id"`
	CustomerID   *int64       `json:"customer_id,omitempty"`
	Title        string       `json:"title"`
	Description  *string      `json:"description,omitempty"`
	DueDate      string       `json:"reminder_date"`
	Status       Status       `json:"status"`
	Priority     *Priority    `json:"priority,omitempty"`
	ReminderType *string      `json:"reminder_type,omitempty"`
	CompletedAt  *string      `json:"completed_at,omitempty"`
	SnoozedUntil *string      `json:"snoozed_until,omitempty"`
	Customer     *CustomerRef `json:"customer,omitempty"`
}

// Open reports whether the reminder is still actionable. Only open
// reminders are bucketed or eligible for lead conversion.
func (r Reminder) Open() bool {
	return r.Status == StatusPending || r.Status == StatusSnoozed
}

// Due parses the reminder's due date. The store keeps date-only values;
// a parse failure yields the zero time and ok=false.
func (r Reminder) Due() (time.Time, bool) {
	t, err := time.Parse("2006-01-02", r.DueDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
