package domain

import (
	"testing"

	remdomain "fieldsales_backend/internal/reminders/domain"
)

func highPriority() *remdomain.Priority {
	p := remdomain.PriorityHigh
	return &p
}

func int64Ptr(n int64) *int64 { return &n }

func TestDeriveLeadScenario(t *testing.T) {
	reminder := remdomain.Reminder{
		ID:         7,
		CustomerID: int64Ptr(3),
		Title:      "Call about hydrant contract",
		Status:     remdomain.StatusPending,
		Priority:   highPriority(),
		Customer: &remdomain.CustomerRef{
			ID:           3,
			BusinessName: "City of Ames",
			City:         "Ames",
			State:        "IA",
		},
	}

	lead, ok := DeriveLead(reminder, nil)
	if !ok {
		t.Fatal("expected a derived lead")
	}

	if lead.ID.String() != "reminder-7" {
		t.Errorf("id = %q, want reminder-7", lead.ID.String())
	}
	if !lead.ID.IsLocal() {
		t.Error("derived lead must carry a locally-minted identifier")
	}
	if lead.Score != 85 {
		t.Errorf("score = %d, want 85 for high priority", lead.Score)
	}
	if lead.Stage != StageContacted {
		t.Errorf("stage = %q, want Contacted", lead.Stage)
	}
	if lead.Source != SourceMunicipal {
		t.Errorf("source = %q, want municipal", lead.Source)
	}
	if lead.Title != "City of Ames" {
		t.Errorf("title = %q, want business name", lead.Title)
	}
	if lead.City != "Ames" || lead.State != "IA" {
		t.Errorf("city/state = %q/%q, want Ames/IA", lead.City, lead.State)
	}
	if lead.NextAction != "Call about hydrant contract" {
		t.Errorf("nextAction = %q, want reminder title", lead.NextAction)
	}
	if lead.CustomerID != 3 {
		t.Errorf("customerId = %d, want 3", lead.CustomerID)
	}
}

func TestDeriveLeadScoreTable(t *testing.T) {
	tests := []struct {
		priority *remdomain.Priority
		want     int
	}{
		{highPriority(), 85},
		{priorityPtr(remdomain.PriorityLow), 45},
		{priorityPtr(remdomain.PriorityMedium), 65},
		{nil, 65},
	}
	for _, tc := range tests {
		if got := InitialScore(tc.priority); got != tc.want {
			t.Errorf("InitialScore(%v) = %d, want %d", tc.priority, got, tc.want)
		}
	}
}

func priorityPtr(p remdomain.Priority) *remdomain.Priority { return &p }

func TestDeriveLeadIdempotent(t *testing.T) {
	reminder := remdomain.Reminder{
		ID:         7,
		CustomerID: int64Ptr(3),
		Title:      "Follow up",
		Status:     remdomain.StatusPending,
	}

	first, ok := DeriveLead(reminder, nil)
	if !ok {
		t.Fatal("expected first derivation to succeed")
	}
	snapshot := Prepend(first, nil)

	if _, ok := DeriveLead(reminder, snapshot); ok {
		t.Fatal("second derivation must not create a duplicate")
	}
}

func TestDeriveLeadBlockedByExistingMunicipalLeadForCustomer(t *testing.T) {
	// A municipal lead for the same customer blocks conversion even when it
	// came from a different reminder.
	existing := []Lead{{
		ID:         RemoteID(9),
		Source:     SourceMunicipal,
		Title:      "City of Ames",
		Stage:      StageQualified,
		Score:      70,
		CustomerID: 3,
	}}
	reminder := remdomain.Reminder{
		ID:         8,
		CustomerID: int64Ptr(3),
		Title:      "Another reminder",
		Status:     remdomain.StatusPending,
	}

	if _, ok := DeriveLead(reminder, existing); ok {
		t.Fatal("expected derivation to be blocked by existing municipal lead")
	}
}

func TestDeriveLeadAllowsDistinctCustomers(t *testing.T) {
	existing := []Lead{{
		ID:         RemoteID(9),
		Source:     SourceMunicipal,
		CustomerID: 3,
		Stage:      StageContacted,
	}}
	reminder := remdomain.Reminder{
		ID:         8,
		CustomerID: int64Ptr(4),
		Title:      "New town",
		Status:     remdomain.StatusPending,
	}

	if _, ok := DeriveLead(reminder, existing); !ok {
		t.Fatal("different customer must convert")
	}
}

func TestDeriveLeadRejectsClosedReminders(t *testing.T) {
	reminder := remdomain.Reminder{ID: 5, Title: "Done", Status: remdomain.StatusCompleted}
	if _, ok := DeriveLead(reminder, nil); ok {
		t.Fatal("completed reminders are not eligible for conversion")
	}
}

func TestDeriveLeadWithoutCustomerFallsBackToReminderTitle(t *testing.T) {
	reminder := remdomain.Reminder{ID: 11, Title: "Cold call city hall", Status: remdomain.StatusSnoozed}

	lead, ok := DeriveLead(reminder, nil)
	if !ok {
		t.Fatal("expected derivation")
	}
	if lead.Title != "Cold call city hall" {
		t.Errorf("title = %q, want reminder title fallback", lead.Title)
	}
	if lead.CustomerID != 0 {
		t.Errorf("customerId = %d, want unset", lead.CustomerID)
	}

	// Without a customer, the derived id itself is the dedupe key.
	if _, ok := DeriveLead(reminder, Prepend(lead, nil)); ok {
		t.Fatal("re-deriving the same customerless reminder must be blocked")
	}
}

func TestPrependOrdering(t *testing.T) {
	a := Lead{ID: LocalID("seed-1")}
	b := Lead{ID: LocalID("seed-2")}

	snapshot := Prepend(b, Prepend(a, nil))
	if !snapshot[0].ID.Equal(b.ID) || !snapshot[1].ID.Equal(a.ID) {
		t.Fatalf("expected most-recent-first ordering, got %+v", snapshot)
	}
}
