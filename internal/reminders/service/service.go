// Package service contains the reminder triage business logic.
package service

import (
	"context"
	"time"

	"fieldsales_backend/internal/events"
	"fieldsales_backend/internal/reminders/domain"
	"fieldsales_backend/internal/reminders/remote"
	"fieldsales_backend/platform/apperr"
	"fieldsales_backend/platform/cache"
	"fieldsales_backend/platform/logger"
)

const (
	remindersCacheKey = "reminders:snapshot"
	remindersCacheTTL = 60 * time.Second

	// activityFollowUpDays is how far out the follow-up reminder spawned by
	// a logged activity lands.
	activityFollowUpDays = 30
)

// MunicipalStore is the subset of the municipal client the service uses.
type MunicipalStore interface {
	ListReminders(ctx context.Context) ([]domain.Reminder, error)
	CompleteReminder(ctx context.Context, id int64) (domain.Reminder, error)
	SnoozeReminder(ctx context.Context, id int64, days int) (domain.Reminder, error)
	CreateReminder(ctx context.Context, params remote.CreateReminderParams) (domain.Reminder, error)
	ListCustomers(ctx context.Context, search string) ([]remote.Customer, error)
	GetCustomer(ctx context.Context, id int64) (remote.Customer, error)
	ListNotes(ctx context.Context, customerID int64) ([]remote.Note, error)
	CreateNote(ctx context.Context, customerID int64, body string) (remote.Note, error)
	ListActivities(ctx context.Context, customerID int64) ([]remote.Activity, error)
	CreateActivity(ctx context.Context, params remote.CreateActivityParams) (remote.Activity, error)
}

// Service implements reminder triage over the municipal store. Snapshots
// are cached briefly so the dashboard does not hammer the store on every
// screen refresh.
type Service struct {
	store MunicipalStore
	cache *cache.Cache
	bus   events.Bus
	log   *logger.Logger
	now   func() time.Time
}

// New creates a new reminders service. cache may be nil.
func New(store MunicipalStore, snapshots *cache.Cache, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		store: store,
		cache: snapshots,
		bus:   bus,
		log:   log,
		now:   time.Now,
	}
}

// snapshot returns the reminder collection, from cache when fresh.
func (s *Service) snapshot(ctx context.Context) ([]domain.Reminder, error) {
	var cached []domain.Reminder
	if err := s.cache.Get(ctx, remindersCacheKey, &cached); err == nil {
		return cached, nil
	}

	reminders, err := s.store.ListReminders(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, remindersCacheKey, reminders, remindersCacheTTL); err != nil {
		s.log.WithContext(ctx).Warn("reminder snapshot not cached", "error", err)
	}
	return reminders, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, remindersCacheKey); err != nil {
		s.log.WithContext(ctx).Warn("reminder cache invalidation failed", "error", err)
	}
}

// List returns the raw reminder snapshot.
func (s *Service) List(ctx context.Context) ([]domain.Reminder, error) {
	return s.snapshot(ctx)
}

// Buckets triages the open reminders into queue sections as of today.
func (s *Service) Buckets(ctx context.Context) (domain.Buckets, error) {
	reminders, err := s.snapshot(ctx)
	if err != nil {
		return domain.Buckets{}, err
	}
	return domain.BucketReminders(s.now(), reminders), nil
}

// Summary computes the dashboard counters as of today.
func (s *Service) Summary(ctx context.Context) (domain.Summary, error) {
	reminders, err := s.snapshot(ctx)
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.Summarize(s.now(), reminders), nil
}

// Complete marks a reminder done and announces it on the bus.
func (s *Service) Complete(ctx context.Context, id int64) (domain.Reminder, error) {
	reminder, err := s.store.CompleteReminder(ctx, id)
	if err != nil {
		return domain.Reminder{}, err
	}
	s.invalidate(ctx)

	completed := events.ReminderCompleted{
		BaseEvent:  events.NewBaseEvent(),
		ReminderID: reminder.ID,
	}
	if reminder.CustomerID != nil {
		completed.CustomerID = *reminder.CustomerID
	}
	s.bus.Publish(ctx, completed)

	return reminder, nil
}

// Snooze pushes a reminder's due date out. days <= 0 uses the store default.
func (s *Service) Snooze(ctx context.Context, id int64, days int) (domain.Reminder, error) {
	reminder, err := s.store.SnoozeReminder(ctx, id, days)
	if err != nil {
		return domain.Reminder{}, err
	}
	s.invalidate(ctx)
	return reminder, nil
}

// Create adds a reminder to the store.
func (s *Service) Create(ctx context.Context, params remote.CreateReminderParams) (domain.Reminder, error) {
	if params.Title == "" {
		return domain.Reminder{}, apperr.Validation("title is required")
	}
	if _, err := time.Parse("2006-01-02", params.DueDate); err != nil {
		return domain.Reminder{}, apperr.Validation("reminder_date must be YYYY-MM-DD")
	}

	reminder, err := s.store.CreateReminder(ctx, params)
	if err != nil {
		return domain.Reminder{}, err
	}
	s.invalidate(ctx)
	return reminder, nil
}

// ListCustomers returns customer accounts, optionally filtered by search.
func (s *Service) ListCustomers(ctx context.Context, search string) ([]remote.Customer, error) {
	return s.store.ListCustomers(ctx, search)
}

// GetCustomer returns one customer account.
func (s *Service) GetCustomer(ctx context.Context, id int64) (remote.Customer, error) {
	return s.store.GetCustomer(ctx, id)
}

// ListNotes returns the notes on a customer account.
func (s *Service) ListNotes(ctx context.Context, customerID int64) ([]remote.Note, error) {
	return s.store.ListNotes(ctx, customerID)
}

// CreateNote adds a note to a customer account.
func (s *Service) CreateNote(ctx context.Context, customerID int64, body string) (remote.Note, error) {
	if body == "" {
		return remote.Note{}, apperr.Validation("note body is required")
	}
	return s.store.CreateNote(ctx, customerID, body)
}

// ListActivities returns the logged touches on a customer account.
func (s *Service) ListActivities(ctx context.Context, customerID int64) ([]remote.Activity, error) {
	return s.store.ListActivities(ctx, customerID)
}

// LogActivity records a touch on a customer account. When followUp is set,
// a follow-up reminder is spawned 30 days out; a failure there is logged
// but never fails the activity itself.
func (s *Service) LogActivity(ctx context.Context, params remote.CreateActivityParams, followUp bool) (remote.Activity, error) {
	if params.Summary == "" {
		return remote.Activity{}, apperr.Validation("activity summary is required")
	}

	activity, err := s.store.CreateActivity(ctx, params)
	if err != nil {
		return remote.Activity{}, err
	}

	if followUp {
		due := s.now().AddDate(0, 0, activityFollowUpDays).Format("2006-01-02")
		cid := params.CustomerID
		_, err := s.store.CreateReminder(ctx, remote.CreateReminderParams{
			CustomerID: &cid,
			Title:      "Follow up: " + params.Summary,
			DueDate:    due,
		})
		if err != nil {
			s.log.WithContext(ctx).Warn("follow-up reminder not created", "customer_id", cid, "error", err)
		} else {
			s.invalidate(ctx)
		}
	}
	return activity, nil
}
