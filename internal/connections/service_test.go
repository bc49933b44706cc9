package connections

import (
	"context"
	"errors"
	"testing"

	"fieldsales_backend/platform/logger"
)

func TestStatusesReportPerTargetHealth(t *testing.T) {
	targets := []Target{
		{ID: "municipal", Name: "Municipal CRM", Endpoint: "https://crm.example.com",
			Check: func(ctx context.Context) error { return nil }},
		{ID: "pipeline", Name: "Pipeline Store", Endpoint: "https://pipeline.example.com",
			Check: func(ctx context.Context) error { return errors.New("connection refused") }},
		{ID: "scanner", Name: "Municipal Scanner", Endpoint: ""},
	}

	statuses := New(targets, logger.New("development")).Statuses(context.Background())
	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}

	byID := make(map[string]Status, len(statuses))
	for _, s := range statuses {
		byID[s.ID] = s
	}

	if !byID["municipal"].OK || byID["municipal"].Message != "connected" {
		t.Errorf("municipal = %+v", byID["municipal"])
	}
	if byID["pipeline"].OK || byID["pipeline"].Message != "connection refused" {
		t.Errorf("pipeline = %+v", byID["pipeline"])
	}
	if byID["scanner"].OK || byID["scanner"].Message != "not configured" {
		t.Errorf("scanner = %+v", byID["scanner"])
	}
}

func TestStatusesPreserveTargetOrder(t *testing.T) {
	targets := []Target{
		{ID: "a", Check: func(ctx context.Context) error { return nil }},
		{ID: "b", Check: func(ctx context.Context) error { return nil }},
	}

	statuses := New(targets, logger.New("development")).Statuses(context.Background())
	if statuses[0].ID != "a" || statuses[1].ID != "b" {
		t.Fatalf("order not preserved: %+v", statuses)
	}
}
