package service

import (
	"context"
	"errors"
	"testing"

	"fieldsales_backend/internal/events"
	"fieldsales_backend/internal/pipeline/domain"
	"fieldsales_backend/internal/pipeline/remote"
	"fieldsales_backend/internal/pipeline/repository"
	remdomain "fieldsales_backend/internal/reminders/domain"
	"fieldsales_backend/platform/apperr"
	"fieldsales_backend/platform/logger"
)

type fakeRepo struct {
	leads []domain.Lead
	prefs *domain.Preferences
}

func (f *fakeRepo) ListLeads(ctx context.Context) ([]domain.Lead, error) {
	out := make([]domain.Lead, len(f.leads))
	copy(out, f.leads)
	return out, nil
}

func (f *fakeRepo) GetLead(ctx context.Context, id domain.LeadID) (domain.Lead, error) {
	for _, l := range f.leads {
		if l.ID.Equal(id) {
			return l, nil
		}
	}
	return domain.Lead{}, apperr.NotFound("lead not found")
}

func (f *fakeRepo) UpsertLead(ctx context.Context, params repository.UpsertLeadParams) (domain.Lead, error) {
	lead := domain.Lead{
		ID:         params.ID,
		Source:     params.Source,
		Title:      params.Title,
		City:       params.City,
		State:      params.State,
		Score:      params.Score,
		Stage:      params.Stage,
		NextAction: params.NextAction,
	}
	if params.CustomerID != nil {
		lead.CustomerID = *params.CustomerID
	}
	for i, l := range f.leads {
		if l.ID.Equal(params.ID) {
			f.leads[i] = lead
			return lead, nil
		}
	}
	f.leads = append([]domain.Lead{lead}, f.leads...)
	return lead, nil
}

func (f *fakeRepo) ReplaceLeads(ctx context.Context, leads []domain.Lead) error {
	f.leads = make([]domain.Lead, len(leads))
	copy(f.leads, leads)
	return nil
}

func (f *fakeRepo) UpdateStage(ctx context.Context, id domain.LeadID, stage domain.Stage) (domain.Lead, error) {
	for i, l := range f.leads {
		if l.ID.Equal(id) {
			f.leads[i].Stage = stage
			return f.leads[i], nil
		}
	}
	return domain.Lead{}, apperr.NotFound("lead not found")
}

func (f *fakeRepo) ReplaceID(ctx context.Context, oldID, newID domain.LeadID) error {
	for i, l := range f.leads {
		if l.ID.Equal(oldID) {
			f.leads[i].ID = newID
		}
	}
	return nil
}

func (f *fakeRepo) DeleteLead(ctx context.Context, id domain.LeadID) error {
	for i, l := range f.leads {
		if l.ID.Equal(id) {
			f.leads = append(f.leads[:i], f.leads[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("lead not found")
}

func (f *fakeRepo) CountLeads(ctx context.Context) (int, error) { return len(f.leads), nil }

func (f *fakeRepo) GetPreferences(ctx context.Context) (domain.Preferences, error) {
	if f.prefs == nil {
		return domain.DefaultPreferences(), nil
	}
	return *f.prefs, nil
}

func (f *fakeRepo) SavePreferences(ctx context.Context, prefs domain.Preferences) error {
	f.prefs = &prefs
	return nil
}

type fakeStore struct {
	enabled   bool
	leads     []domain.Lead
	listErr   error
	nextID    int64
	created   []remote.CreateLeadParams
	stageErr  error
	prefsSent *domain.Preferences
}

func (f *fakeStore) Enabled() bool { return f.enabled }

func (f *fakeStore) ListLeads(ctx context.Context) ([]domain.Lead, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.Lead, len(f.leads))
	copy(out, f.leads)
	return out, nil
}

func (f *fakeStore) CreateLead(ctx context.Context, params remote.CreateLeadParams) (domain.LeadID, error) {
	f.created = append(f.created, params)
	f.nextID++
	return domain.RemoteID(f.nextID), nil
}

func (f *fakeStore) UpdateLeadStage(ctx context.Context, id int64, stage domain.Stage) error {
	return f.stageErr
}

func (f *fakeStore) GetPreferences(ctx context.Context) (domain.Preferences, error) {
	return domain.DefaultPreferences(), nil
}

func (f *fakeStore) SavePreferences(ctx context.Context, prefs domain.Preferences) error {
	f.prefsSent = &prefs
	return nil
}

func newTestService(repo *fakeRepo, store *fakeStore) *Service {
	log := logger.New("development")
	return New(repo, store, nil, events.NewInMemoryBus(log), log)
}

func TestSnapshotRemoteWinsOverLocalCache(t *testing.T) {
	repo := &fakeRepo{leads: []domain.Lead{
		{ID: domain.RemoteID(1), Title: "Stale copy", Score: 10, Stage: domain.StageNew},
		{ID: domain.LocalID("reminder-7"), Title: "Unsynced", Score: 85, Stage: domain.StageContacted},
	}}
	store := &fakeStore{enabled: true, leads: []domain.Lead{
		{ID: domain.RemoteID(1), Title: "Fresh copy", Score: 90, Stage: domain.StageQualified},
	}}

	snapshot, err := newTestService(repo, store).Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snapshot) != 2 {
		t.Fatalf("expected unsynced local lead plus remote lead, got %d leads", len(snapshot))
	}
	// Unsynced local leads ride on top.
	if snapshot[0].Title != "Unsynced" {
		t.Errorf("first lead = %q, want the local one", snapshot[0].Title)
	}
	if snapshot[1].Title != "Fresh copy" {
		t.Errorf("second lead = %q, want the remote copy", snapshot[1].Title)
	}
	// The cache is refreshed from the merge.
	if len(repo.leads) != 2 || repo.leads[1].Title != "Fresh copy" {
		t.Errorf("cache not refreshed: %+v", repo.leads)
	}
}

func TestSnapshotFallsBackToCacheOnStoreOutage(t *testing.T) {
	repo := &fakeRepo{leads: []domain.Lead{{ID: domain.RemoteID(1), Title: "Cached"}}}
	store := &fakeStore{enabled: true, listErr: errors.New("connection refused")}

	snapshot, err := newTestService(repo, store).Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot must not fail on store outage: %v", err)
	}
	if len(snapshot) != 1 || snapshot[0].Title != "Cached" {
		t.Fatalf("expected cached snapshot, got %+v", snapshot)
	}
}

func TestConvertReminderPersistsAndIsIdempotent(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeStore{})

	cid := int64(3)
	reminder := remdomain.Reminder{
		ID:         7,
		CustomerID: &cid,
		Title:      "Call about hydrant contract",
		Status:     remdomain.StatusPending,
		Customer:   &remdomain.CustomerRef{ID: 3, BusinessName: "City of Ames", City: "Ames", State: "IA"},
	}

	lead, err := svc.ConvertReminder(context.Background(), reminder)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if lead.ID.String() != "reminder-7" {
		t.Errorf("lead id = %q, want reminder-7", lead.ID.String())
	}
	if lead.Stage != domain.StageContacted {
		t.Errorf("stage = %q, want Contacted", lead.Stage)
	}

	if _, err := svc.ConvertReminder(context.Background(), reminder); !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("second conversion must conflict, got %v", err)
	}
	if len(repo.leads) != 1 {
		t.Fatalf("expected a single stored lead, got %d", len(repo.leads))
	}
}

func TestConvertReminderRejectsClosedReminder(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeStore{})

	reminder := remdomain.Reminder{
		ID:     9,
		Title:  "Already handled",
		Status: remdomain.StatusCompleted,
	}

	_, err := svc.ConvertReminder(context.Background(), reminder)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("closed reminder must fail validation, not conflict, got %v", err)
	}
	if len(repo.leads) != 0 {
		t.Fatalf("no lead expected, got %d", len(repo.leads))
	}
}

func TestAdvanceStageSaturatesAtWon(t *testing.T) {
	repo := &fakeRepo{leads: []domain.Lead{{ID: domain.RemoteID(1), Stage: domain.StageWonClosed}}}
	svc := newTestService(repo, &fakeStore{})

	lead, err := svc.AdvanceStage(context.Background(), domain.RemoteID(1))
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if lead.Stage != domain.StageWonClosed {
		t.Errorf("stage = %q, want saturated Won / Closed", lead.Stage)
	}
}

func TestAdvanceStageUnknownLead(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeStore{})
	if _, err := svc.AdvanceStage(context.Background(), domain.RemoteID(99)); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAdvanceStageSurvivesStoreMirrorFailure(t *testing.T) {
	repo := &fakeRepo{leads: []domain.Lead{{ID: domain.RemoteID(1), Stage: domain.StageNew}}}
	store := &fakeStore{enabled: true, stageErr: errors.New("store down")}
	svc := newTestService(repo, store)

	lead, err := svc.AdvanceStage(context.Background(), domain.RemoteID(1))
	if err != nil {
		t.Fatalf("local stage move must succeed despite store failure: %v", err)
	}
	if lead.Stage != domain.StageContacted {
		t.Errorf("stage = %q, want Contacted", lead.Stage)
	}
}

func TestSyncLocalLeadsPromotesIdentifiers(t *testing.T) {
	repo := &fakeRepo{leads: []domain.Lead{
		{ID: domain.LocalID("reminder-7"), Title: "A", Stage: domain.StageContacted},
		{ID: domain.RemoteID(5), Title: "B", Stage: domain.StageQualified},
		{ID: domain.LocalID("seed-1"), Title: "C", Stage: domain.StageNew},
	}}
	store := &fakeStore{enabled: true, nextID: 100}
	svc := newTestService(repo, store)

	synced, err := svc.SyncLocalLeads(context.Background())
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if synced != 2 {
		t.Fatalf("synced = %d, want 2", synced)
	}
	if len(store.created) != 2 {
		t.Fatalf("store received %d creates, want 2", len(store.created))
	}
	for _, l := range repo.leads {
		if l.ID.IsLocal() {
			t.Errorf("lead %q still local after sync", l.Title)
		}
	}
}

func TestSyncLocalLeadsRequiresStore(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeStore{enabled: false})
	if _, err := svc.SyncLocalLeads(context.Background()); !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
}

func TestReconcileLeadIDRejectsWrongDirection(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeStore{})

	err := svc.ReconcileLeadID(context.Background(), domain.RemoteID(1), domain.RemoteID(2))
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestSavePreferencesValidatesAndMirrors(t *testing.T) {
	repo := &fakeRepo{}
	store := &fakeStore{enabled: true}
	svc := newTestService(repo, store)

	prefs := domain.Preferences{
		Filters:     []domain.FilterKey{domain.FilterHot},
		MyDayStages: []domain.Stage{domain.StageQualified},
	}
	saved, err := svc.SavePreferences(context.Background(), prefs)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(saved.Filters) != 1 || saved.Filters[0] != domain.FilterHot {
		t.Errorf("filters = %+v", saved.Filters)
	}
	if store.prefsSent == nil {
		t.Error("preferences not mirrored to the store")
	}

	bad := domain.Preferences{Filters: []domain.FilterKey{"bogus"}}
	if _, err := svc.SavePreferences(context.Background(), bad); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestMyDayFiltersByPreferredStages(t *testing.T) {
	repo := &fakeRepo{
		leads: []domain.Lead{
			{ID: domain.RemoteID(1), Stage: domain.StageQualified},
			{ID: domain.RemoteID(2), Stage: domain.StageNew},
			{ID: domain.RemoteID(3), Stage: domain.StageContacted},
		},
		prefs: &domain.Preferences{
			Filters:     []domain.FilterKey{},
			MyDayStages: []domain.Stage{domain.StageQualified},
		},
	}
	svc := newTestService(repo, &fakeStore{})

	leads, err := svc.MyDay(context.Background())
	if err != nil {
		t.Fatalf("my day: %v", err)
	}
	if len(leads) != 1 || !leads[0].ID.Equal(domain.RemoteID(1)) {
		t.Fatalf("my day = %+v, want only the qualified lead", leads)
	}
}

func TestSeedLeadsOnlyWhenEmpty(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeStore{})

	seeds := []domain.Lead{{ID: domain.SeedLeadID(1), Title: "Demo", Stage: domain.StageNew}}
	if err := svc.SeedLeads(context.Background(), seeds); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if len(repo.leads) != 1 {
		t.Fatalf("expected seeded lead, got %d", len(repo.leads))
	}

	// A populated cache is never reseeded.
	repo.leads[0].Title = "Edited"
	if err := svc.SeedLeads(context.Background(), seeds); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if repo.leads[0].Title != "Edited" {
		t.Fatal("seeding overwrote a populated cache")
	}
}
