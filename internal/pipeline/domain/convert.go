package domain

import (
	remdomain "fieldsales_backend/internal/reminders/domain"
)

// Initial scores for converted leads, keyed on reminder priority. This
// lookup table is the only place initial lead quality is decided.
const (
	scoreHighPriority    = 85
	scoreDefaultPriority = 65
	scoreLowPriority     = 45
)

// InitialScore maps a reminder priority to the starting score of a derived
// lead. A missing priority scores the same as medium.
func InitialScore(p *remdomain.Priority) int {
	if p == nil {
		return scoreDefaultPriority
	}
	switch *p {
	case remdomain.PriorityHigh:
		return scoreHighPriority
	case remdomain.PriorityLow:
		return scoreLowPriority
	default:
		return scoreDefaultPriority
	}
}

// DeriveLead synthesizes a municipal-source lead from an open reminder, or
// reports ok=false when one already exists. The duplicate check keys on
// customerId (at most one municipal lead per customer) and on the derived
// local identifier itself for reminders without a linked customer, so the
// operation is idempotent either way.
//
// Converted leads start at Contacted, not New: a live reminder implies the
// account has already been talked to.
func DeriveLead(r remdomain.Reminder, existing []Lead) (Lead, bool) {
	if !r.Open() {
		return Lead{}, false
	}

	id := ReminderLeadID(r.ID)
	for _, l := range existing {
		if l.ID.Equal(id) {
			return Lead{}, false
		}
		if l.Source == SourceMunicipal && r.CustomerID != nil && l.CustomerID == *r.CustomerID {
			return Lead{}, false
		}
	}

	lead := Lead{
		ID:         id,
		Source:     SourceMunicipal,
		Title:      r.Title,
		Score:      InitialScore(r.Priority),
		Stage:      StageContacted,
		NextAction: r.Title,
	}
	if r.CustomerID != nil {
		lead.CustomerID = *r.CustomerID
	}
	if r.Customer != nil {
		if r.Customer.BusinessName != "" {
			lead.Title = r.Customer.BusinessName
		}
		lead.City = r.Customer.City
		lead.State = r.Customer.State
	}
	return lead, true
}

// Prepend returns a new snapshot with lead at the front. Most-recent-first
// ordering is a display contract the client relies on.
func Prepend(lead Lead, leads []Lead) []Lead {
	out := make([]Lead, 0, len(leads)+1)
	out = append(out, lead)
	return append(out, leads...)
}
