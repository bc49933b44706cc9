package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fieldsales_backend/internal/pipeline/domain"
	"fieldsales_backend/platform/apperr"
)

const leadNotFoundMessage = "lead not found"

// Repo implements the pipeline repository on Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new pipeline repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

const leadColumns = "id, source, title, city, state, score, stage, next_action, customer_id"

func scanLead(row pgx.Row) (domain.Lead, error) {
	var (
		lead       domain.Lead
		id         string
		source     string
		stage      int
		nextAction *string
		customerID *int64
	)
	if err := row.Scan(&id, &source, &lead.Title, &lead.City, &lead.State, &lead.Score, &stage, &nextAction, &customerID); err != nil {
		return domain.Lead{}, err
	}
	lead.ID = domain.ParseLeadID(id)
	lead.Source = domain.Source(source)
	lead.Stage = domain.Stage(stage)
	if nextAction != nil {
		lead.NextAction = *nextAction
	}
	if customerID != nil {
		lead.CustomerID = *customerID
	}
	return lead, nil
}

// ListLeads returns all cached leads, most recently created first.
func (r *Repo) ListLeads(ctx context.Context) ([]domain.Lead, error) {
	query := fmt.Sprintf(`SELECT %s FROM pipeline_leads ORDER BY created_at DESC, id DESC`, leadColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads := make([]domain.Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	return leads, nil
}

// GetLead retrieves a single lead by identifier.
func (r *Repo) GetLead(ctx context.Context, id domain.LeadID) (domain.Lead, error) {
	query := fmt.Sprintf(`SELECT %s FROM pipeline_leads WHERE id = $1`, leadColumns)

	lead, err := scanLead(r.pool.QueryRow(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return domain.Lead{}, fmt.Errorf("get lead: %w", err)
	}
	return lead, nil
}

// UpsertLead inserts a lead or refreshes an existing row in place.
func (r *Repo) UpsertLead(ctx context.Context, params UpsertLeadParams) (domain.Lead, error) {
	query := fmt.Sprintf(`
		INSERT INTO pipeline_leads (id, source, title, city, state, score, stage, next_action, customer_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9)
		ON CONFLICT (id) DO UPDATE SET
			source = EXCLUDED.source,
			title = EXCLUDED.title,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			score = EXCLUDED.score,
			stage = EXCLUDED.stage,
			next_action = EXCLUDED.next_action,
			customer_id = EXCLUDED.customer_id,
			updated_at = now()
		RETURNING %s`, leadColumns)

	lead, err := scanLead(r.pool.QueryRow(ctx, query,
		params.ID.String(), string(params.Source), params.Title, params.City, params.State,
		params.Score, int(params.Stage), params.NextAction, params.CustomerID,
	))
	if err != nil {
		return domain.Lead{}, fmt.Errorf("upsert lead: %w", err)
	}
	return lead, nil
}

// ReplaceLeads swaps the entire local cache for a fresh snapshot in one
// transaction. Used after a successful pull from the remote store.
func (r *Repo) ReplaceLeads(ctx context.Context, leads []domain.Lead) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace leads: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM pipeline_leads`); err != nil {
		return fmt.Errorf("clear leads: %w", err)
	}

	query := `
		INSERT INTO pipeline_leads (id, source, title, city, state, score, stage, next_action, customer_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, 0))`
	for _, lead := range leads {
		if _, err := tx.Exec(ctx, query,
			lead.ID.String(), string(lead.Source), lead.Title, lead.City, lead.State,
			lead.Score, int(lead.Stage), lead.NextAction, lead.CustomerID,
		); err != nil {
			return fmt.Errorf("insert lead %s: %w", lead.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit replace leads: %w", err)
	}
	return nil
}

// UpdateStage moves a lead to a new stage.
func (r *Repo) UpdateStage(ctx context.Context, id domain.LeadID, stage domain.Stage) (domain.Lead, error) {
	query := fmt.Sprintf(`
		UPDATE pipeline_leads
		SET stage = $2, updated_at = now()
		WHERE id = $1
		RETURNING %s`, leadColumns)

	lead, err := scanLead(r.pool.QueryRow(ctx, query, id.String(), int(stage)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return domain.Lead{}, fmt.Errorf("update stage: %w", err)
	}
	return lead, nil
}

// ReplaceID renames a lead row after the remote store assigned it a server
// identifier. A missing oldID is not an error so that a replayed
// reconciliation stays a no-op.
func (r *Repo) ReplaceID(ctx context.Context, oldID, newID domain.LeadID) error {
	query := `
		UPDATE pipeline_leads
		SET id = $2, updated_at = now()
		WHERE id = $1 AND NOT EXISTS (SELECT 1 FROM pipeline_leads WHERE id = $2)`

	if _, err := r.pool.Exec(ctx, query, oldID.String(), newID.String()); err != nil {
		return fmt.Errorf("replace lead id: %w", err)
	}
	return nil
}

// DeleteLead removes a lead from the local cache.
func (r *Repo) DeleteLead(ctx context.Context, id domain.LeadID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM pipeline_leads WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(leadNotFoundMessage)
	}
	return nil
}

// CountLeads returns the number of cached leads.
func (r *Repo) CountLeads(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM pipeline_leads`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count leads: %w", err)
	}
	return count, nil
}

// GetPreferences loads the saved view preferences. A rep who never saved
// any gets the defaults instead of a not-found error.
func (r *Repo) GetPreferences(ctx context.Context) (domain.Preferences, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx, `SELECT payload FROM pipeline_preferences WHERE id = 1`).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DefaultPreferences(), nil
		}
		return domain.Preferences{}, fmt.Errorf("get preferences: %w", err)
	}

	var prefs domain.Preferences
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return domain.Preferences{}, fmt.Errorf("decode preferences: %w", err)
	}
	if prefs.Filters == nil {
		prefs.Filters = []domain.FilterKey{}
	}
	if len(prefs.MyDayStages) == 0 {
		prefs.MyDayStages = domain.DefaultPreferences().MyDayStages
	}
	return prefs, nil
}

// SavePreferences persists the view preferences as a single row.
func (r *Repo) SavePreferences(ctx context.Context, prefs domain.Preferences) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}

	query := `
		INSERT INTO pipeline_preferences (id, payload)
		VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`
	if _, err := r.pool.Exec(ctx, query, raw); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}
