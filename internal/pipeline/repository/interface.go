package repository

import (
	"context"

	"fieldsales_backend/internal/pipeline/domain"
)

// UpsertLeadParams contains data for inserting or refreshing a lead row.
type UpsertLeadParams struct {
	ID         domain.LeadID
	Source     domain.Source
	Title      string
	City       string
	State      string
	Score      int
	Stage      domain.Stage
	NextAction string
	CustomerID *int64
}

// Repository defines pipeline storage operations. Leads are cached locally
// so the dashboard keeps working when the remote pipeline store is down;
// the remote copy wins whenever it is reachable.
type Repository interface {
	ListLeads(ctx context.Context) ([]domain.Lead, error)
	GetLead(ctx context.Context, id domain.LeadID) (domain.Lead, error)
	UpsertLead(ctx context.Context, params UpsertLeadParams) (domain.Lead, error)
	ReplaceLeads(ctx context.Context, leads []domain.Lead) error
	UpdateStage(ctx context.Context, id domain.LeadID, stage domain.Stage) (domain.Lead, error)
	ReplaceID(ctx context.Context, oldID, newID domain.LeadID) error
	DeleteLead(ctx context.Context, id domain.LeadID) error
	CountLeads(ctx context.Context) (int, error)

	GetPreferences(ctx context.Context) (domain.Preferences, error)
	SavePreferences(ctx context.Context, prefs domain.Preferences) error
}
