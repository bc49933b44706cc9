// Package service contains the pipeline business logic.
package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"fieldsales_backend/internal/events"
	"fieldsales_backend/internal/pipeline/domain"
	"fieldsales_backend/internal/pipeline/remote"
	"fieldsales_backend/internal/pipeline/repository"
	remdomain "fieldsales_backend/internal/reminders/domain"
	"fieldsales_backend/platform/apperr"
	"fieldsales_backend/platform/logger"
)

// RemoteStore is the subset of the pipeline store client the service uses.
type RemoteStore interface {
	Enabled() bool
	ListLeads(ctx context.Context) ([]domain.Lead, error)
	CreateLead(ctx context.Context, params remote.CreateLeadParams) (domain.LeadID, error)
	UpdateLeadStage(ctx context.Context, id int64, stage domain.Stage) error
	GetPreferences(ctx context.Context) (domain.Preferences, error)
	SavePreferences(ctx context.Context, prefs domain.Preferences) error
}

// SyncEnqueuer schedules a background push of a locally minted lead.
type SyncEnqueuer interface {
	EnqueueLeadSync(ctx context.Context, leadID string) error
}

// Service implements pipeline operations over the local cache and the
// remote store. The remote copy wins whenever it is reachable; locally
// minted leads ride on top of it until a background sync promotes them.
type Service struct {
	repo   repository.Repository
	store  RemoteStore
	syncer SyncEnqueuer
	bus    events.Bus
	log    *logger.Logger
}

// New creates a new pipeline service. syncer may be nil when no background
// worker is configured; conversion then relies on the manual sync endpoint.
func New(repo repository.Repository, store RemoteStore, syncer SyncEnqueuer, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, store: store, syncer: syncer, bus: bus, log: log}
}

// Snapshot returns the current lead collection. When the remote store is
// reachable its copy is authoritative and the local cache is refreshed from
// it, with unsynced local leads kept on top. When it is not, the cache
// serves the last known snapshot.
func (s *Service) Snapshot(ctx context.Context) ([]domain.Lead, error) {
	if !s.store.Enabled() {
		return s.repo.ListLeads(ctx)
	}

	var (
		local       []domain.Lead
		remoteLeads []domain.Lead
		remoteErr   error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		leads, err := s.repo.ListLeads(gctx)
		if err != nil {
			return fmt.Errorf("load cached leads: %w", err)
		}
		local = leads
		return nil
	})
	g.Go(func() error {
		// A store outage is not fatal; the cache covers for it.
		remoteLeads, remoteErr = s.store.ListLeads(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if remoteErr != nil {
		s.log.WithContext(ctx).Warn("pipeline store unreachable, serving cached snapshot", "error", remoteErr)
		return local, nil
	}

	merged := append(domain.LocalLeads(local), remoteLeads...)
	if err := s.repo.ReplaceLeads(ctx, merged); err != nil {
		s.log.WithContext(ctx).DatabaseError("refresh lead cache", err)
	}
	return merged, nil
}

// ConvertReminder derives a lead from a reminder and stores it locally.
// Only open (pending or snoozed) reminders are eligible. Conversion is
// idempotent: a reminder that already produced a lead, or a customer that
// already has a municipal lead, yields a conflict.
func (s *Service) ConvertReminder(ctx context.Context, reminder remdomain.Reminder) (domain.Lead, error) {
	if !reminder.Open() {
		return domain.Lead{}, apperr.Validation("only pending or snoozed reminders can become leads")
	}

	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return domain.Lead{}, err
	}

	lead, ok := domain.DeriveLead(reminder, snapshot)
	if !ok {
		return domain.Lead{}, apperr.Conflict("reminder already has a lead in the pipeline")
	}

	params := repository.UpsertLeadParams{
		ID:         lead.ID,
		Source:     lead.Source,
		Title:      lead.Title,
		City:       lead.City,
		State:      lead.State,
		Score:      lead.Score,
		Stage:      lead.Stage,
		NextAction: lead.NextAction,
	}
	if lead.CustomerID != 0 {
		id := lead.CustomerID
		params.CustomerID = &id
	}
	stored, err := s.repo.UpsertLead(ctx, params)
	if err != nil {
		return domain.Lead{}, err
	}

	s.bus.Publish(ctx, events.LeadCreated{
		BaseEvent:  events.NewBaseEvent(),
		LeadID:     stored.ID.String(),
		Source:     string(stored.Source),
		CustomerID: stored.CustomerID,
	})

	if s.syncer != nil {
		if err := s.syncer.EnqueueLeadSync(ctx, stored.ID.String()); err != nil {
			s.log.WithContext(ctx).Warn("lead sync enqueue failed", "lead_id", stored.ID.String(), "error", err)
		} else {
			s.log.SyncEvent("enqueued", stored.ID.String())
		}
	}
	return stored, nil
}

// AdvanceStage moves a lead one stage forward. Already-won leads stay won.
func (s *Service) AdvanceStage(ctx context.Context, id domain.LeadID) (domain.Lead, error) {
	return s.moveStage(ctx, id, domain.Stage.Advance)
}

// RetreatStage moves a lead one stage back. New leads stay new.
func (s *Service) RetreatStage(ctx context.Context, id domain.LeadID) (domain.Lead, error) {
	return s.moveStage(ctx, id, domain.Stage.Retreat)
}

func (s *Service) moveStage(ctx context.Context, id domain.LeadID, move func(domain.Stage) domain.Stage) (domain.Lead, error) {
	lead, err := s.repo.GetLead(ctx, id)
	if err != nil {
		return domain.Lead{}, err
	}

	next := move(lead.Stage)
	if next == lead.Stage {
		return lead, nil
	}

	updated, err := s.repo.UpdateStage(ctx, id, next)
	if err != nil {
		return domain.Lead{}, err
	}

	// Server-backed leads mirror the move to the store; a failure there
	// leaves the local copy ahead, which the next snapshot pull resolves.
	if n, ok := id.Remote(); ok && s.store.Enabled() {
		if err := s.store.UpdateLeadStage(ctx, n, next); err != nil {
			s.log.WithContext(ctx).Warn("stage change not mirrored to pipeline store", "lead_id", id.String(), "error", err)
		}
	}
	return updated, nil
}

// Classification buckets the current snapshot into stage counts and the
// hot, stale, and needs-follow-up queues.
func (s *Service) Classification(ctx context.Context) (domain.Classification, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return domain.Classification{}, err
	}
	return domain.Classify(snapshot), nil
}

// MyDay returns the leads in the stages the rep chose for the My Day view.
func (s *Service) MyDay(ctx context.Context) ([]domain.Lead, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	prefs, err := s.Preferences(ctx)
	if err != nil {
		return nil, err
	}

	wanted := make(map[domain.Stage]bool, len(prefs.MyDayStages))
	for _, st := range prefs.MyDayStages {
		wanted[st] = true
	}

	leads := make([]domain.Lead, 0)
	for _, lead := range snapshot {
		if wanted[lead.Stage] {
			leads = append(leads, lead)
		}
	}
	return leads, nil
}

// ReconcileLeadID swaps a locally minted identifier for its server-assigned
// one. Reconciling an identifier that is already gone is a no-op.
func (s *Service) ReconcileLeadID(ctx context.Context, oldID, newID domain.LeadID) error {
	if !oldID.IsLocal() || !newID.IsRemote() {
		return apperr.BadRequest("reconciliation replaces a local id with a server id")
	}

	if err := s.repo.ReplaceID(ctx, oldID, newID); err != nil {
		return err
	}
	s.log.SyncEvent("reconciled", newID.String())

	s.bus.Publish(ctx, events.LeadReconciled{
		BaseEvent: events.NewBaseEvent(),
		OldID:     oldID.String(),
		NewID:     newID.String(),
	})
	return nil
}

// SyncLocalLeads pushes every locally minted lead to the remote store and
// reconciles the identifiers it hands back. Returns the number of leads
// promoted. Partial failure leaves the remaining leads for the next run.
func (s *Service) SyncLocalLeads(ctx context.Context) (int, error) {
	if !s.store.Enabled() {
		return 0, apperr.Unavailable("pipeline store is not configured", nil)
	}

	local, err := s.repo.ListLeads(ctx)
	if err != nil {
		return 0, err
	}

	synced := 0
	for _, lead := range domain.LocalLeads(local) {
		params := remote.CreateLeadParams{
			Source:     lead.Source,
			Title:      lead.Title,
			City:       lead.City,
			State:      lead.State,
			Score:      lead.Score,
			Stage:      lead.Stage,
			NextAction: lead.NextAction,
		}
		if lead.CustomerID != 0 {
			id := lead.CustomerID
			params.CustomerID = &id
		}

		newID, err := s.store.CreateLead(ctx, params)
		if err != nil {
			s.log.WithContext(ctx).Warn("lead sync stopped", "lead_id", lead.ID.String(), "synced", synced, "error", err)
			return synced, err
		}
		if err := s.ReconcileLeadID(ctx, lead.ID, newID); err != nil {
			return synced, err
		}
		synced++
	}
	return synced, nil
}

// SyncLead pushes a single locally minted lead by identifier. Used by the
// background worker so a conversion does not wait on the store.
func (s *Service) SyncLead(ctx context.Context, id domain.LeadID) error {
	if !id.IsLocal() {
		// Already reconciled by an earlier run; nothing to do.
		return nil
	}

	lead, err := s.repo.GetLead(ctx, id)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil
		}
		return err
	}

	params := remote.CreateLeadParams{
		Source:     lead.Source,
		Title:      lead.Title,
		City:       lead.City,
		State:      lead.State,
		Score:      lead.Score,
		Stage:      lead.Stage,
		NextAction: lead.NextAction,
	}
	if lead.CustomerID != 0 {
		cid := lead.CustomerID
		params.CustomerID = &cid
	}

	newID, err := s.store.CreateLead(ctx, params)
	if err != nil {
		return err
	}
	return s.ReconcileLeadID(ctx, id, newID)
}

// Preferences returns the saved view preferences, defaulting for a rep who
// never saved any.
func (s *Service) Preferences(ctx context.Context) (domain.Preferences, error) {
	return s.repo.GetPreferences(ctx)
}

// SavePreferences validates and persists the view preferences locally, then
// mirrors them to the remote store on a best-effort basis.
func (s *Service) SavePreferences(ctx context.Context, prefs domain.Preferences) (domain.Preferences, error) {
	for _, f := range prefs.Filters {
		switch f {
		case domain.FilterHot, domain.FilterStale, domain.FilterFollowUp:
		default:
			return domain.Preferences{}, apperr.Validation(fmt.Sprintf("unknown filter %q", f))
		}
	}
	for _, st := range prefs.MyDayStages {
		if !st.Valid() {
			return domain.Preferences{}, apperr.Validation("unknown stage in my_day_stages")
		}
	}
	if prefs.Filters == nil {
		prefs.Filters = []domain.FilterKey{}
	}
	if len(prefs.MyDayStages) == 0 {
		prefs.MyDayStages = domain.DefaultPreferences().MyDayStages
	}

	if err := s.repo.SavePreferences(ctx, prefs); err != nil {
		return domain.Preferences{}, err
	}

	if s.store.Enabled() {
		if err := s.store.SavePreferences(ctx, prefs); err != nil {
			s.log.WithContext(ctx).Warn("preferences not mirrored to pipeline store", "error", err)
		}
	}
	return prefs, nil
}

// SeedLeads installs the demo leads when the cache is completely empty.
func (s *Service) SeedLeads(ctx context.Context, leads []domain.Lead) error {
	count, err := s.repo.CountLeads(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return s.repo.ReplaceLeads(ctx, leads)
}
