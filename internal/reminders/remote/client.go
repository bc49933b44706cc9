// Package remote provides the HTTP client for the municipal CRM store, a
// Supabase-style REST API holding reminders, customers, notes, and
// activities.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"fieldsales_backend/internal/reminders/domain"
	"fieldsales_backend/platform/apperr"
	"fieldsales_backend/platform/config"
	"fieldsales_backend/platform/logger"
	"fieldsales_backend/platform/phone"
)

// SnoozeDefaultDays is how far a snooze pushes a reminder when the client
// does not say.
const SnoozeDefaultDays = 3

const reminderSelect = "*,customer:customers(id,business_name,city,state,main_phone,bill_to_address)"

// Client talks to the municipal CRM store.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	region     string
	enabled    bool
	log        *logger.Logger
}

// New creates a new municipal store client.
func New(cfg config.MunicipalConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    cfg.GetMunicipalBaseURL(),
		apiKey:     cfg.GetMunicipalAPIKey(),
		region:     cfg.GetMunicipalRegion(),
		enabled:    cfg.IsMunicipalEnabled(),
		log:        log,
	}
}

// Enabled reports whether a municipal store is configured.
func (c *Client) Enabled() bool { return c.enabled }

// Customer is a customer account in the municipal store.
type Customer struct {
	ID            int64   `json:"id"`
	BusinessName  string  `json:"business_name"`
	City          string  `json:"city"`
	State         string  `json:"state"`
	MainPhone     *string `json:"main_phone"`
	BillToAddress *string `json:"bill_to_address"`
	Email         *string `json:"email,omitempty"`
}

// Note is a free-form note on a customer account.
type Note struct {
	ID         int64  `json:"id"`
	CustomerID int64  `json:"customer_id"`
	Body       string `json:"body"`
	CreatedAt  string `json:"created_at"`
}

// Activity is a logged touch on a customer account.
type Activity struct {
	ID           int64   `json:"id"`
	CustomerID   int64   `json:"customer_id"`
	ActivityType string  `json:"activity_type"`
	Summary      string  `json:"summary"`
	Outcome      *string `json:"outcome,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// CreateReminderParams is the payload for a new reminder.
type CreateReminderParams struct {
	CustomerID   *int64           `json:"customer_id,omitempty"`
	Title        string           `json:"title"`
	Description  *string          `json:"description,omitempty"`
	DueDate      string           `json:"reminder_date"`
	Priority     *domain.Priority `json:"priority,omitempty"`
	ReminderType *string          `json:"reminder_type,omitempty"`
}

// CreateActivityParams is the payload for a logged activity.
type CreateActivityParams struct {
	CustomerID   int64   `json:"customer_id"`
	ActivityType string  `json:"activity_type"`
	Summary      string  `json:"summary"`
	Outcome      *string `json:"outcome,omitempty"`
}

// ListReminders fetches every non-cancelled reminder with its customer
// embedded, ordered by due date.
func (c *Client) ListReminders(ctx context.Context) ([]domain.Reminder, error) {
	params := url.Values{}
	params.Set("select", reminderSelect)
	params.Set("status", "neq."+string(domain.StatusCancelled))
	params.Set("order", "reminder_date.asc")

	var reminders []domain.Reminder
	if err := c.do(ctx, http.MethodGet, "/rest/v1/reminders?"+params.Encode(), nil, &reminders); err != nil {
		return nil, err
	}
	for i := range reminders {
		normalizeCustomerPhone(reminders[i].Customer, c.region)
	}
	return reminders, nil
}

// CompleteReminder marks a reminder done and returns the updated row.
func (c *Client) CompleteReminder(ctx context.Context, id int64) (domain.Reminder, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	payload := map[string]any{
		"status":       domain.StatusCompleted,
		"completed_at": now,
	}
	return c.patchReminder(ctx, id, payload)
}

// SnoozeReminder pushes a reminder's due date out. days <= 0 uses the
// default snooze window.
func (c *Client) SnoozeReminder(ctx context.Context, id int64, days int) (domain.Reminder, error) {
	if days <= 0 {
		days = SnoozeDefaultDays
	}
	until := time.Now().UTC().AddDate(0, 0, days).Format("2006-01-02")
	payload := map[string]any{
		"status":        domain.StatusSnoozed,
		"snoozed_until": until,
		"reminder_date": until,
	}
	return c.patchReminder(ctx, id, payload)
}

// CreateReminder creates a reminder and returns the stored row.
func (c *Client) CreateReminder(ctx context.Context, params CreateReminderParams) (domain.Reminder, error) {
	var rows []domain.Reminder
	if err := c.do(ctx, http.MethodPost, "/rest/v1/reminders", params, &rows); err != nil {
		return domain.Reminder{}, err
	}
	if len(rows) == 0 {
		return domain.Reminder{}, apperr.Unavailable("municipal store returned no reminder", nil)
	}
	return rows[0], nil
}

// ListCustomers fetches customer accounts, optionally filtered by a
// business-name search.
func (c *Client) ListCustomers(ctx context.Context, search string) ([]Customer, error) {
	params := url.Values{}
	params.Set("order", "business_name.asc")
	if search != "" {
		params.Set("business_name", "ilike.*"+search+"*")
	}

	var customers []Customer
	if err := c.do(ctx, http.MethodGet, "/rest/v1/customers?"+params.Encode(), nil, &customers); err != nil {
		return nil, err
	}
	for i := range customers {
		if customers[i].MainPhone != nil {
			normalized := phone.Normalize(*customers[i].MainPhone, c.region)
			customers[i].MainPhone = &normalized
		}
	}
	return customers, nil
}

// GetCustomer fetches one customer account.
func (c *Client) GetCustomer(ctx context.Context, id int64) (Customer, error) {
	params := url.Values{}
	params.Set("id", fmt.Sprintf("eq.%d", id))

	var customers []Customer
	if err := c.do(ctx, http.MethodGet, "/rest/v1/customers?"+params.Encode(), nil, &customers); err != nil {
		return Customer{}, err
	}
	if len(customers) == 0 {
		return Customer{}, apperr.NotFound("customer not found")
	}
	cust := customers[0]
	if cust.MainPhone != nil {
		normalized := phone.Normalize(*cust.MainPhone, c.region)
		cust.MainPhone = &normalized
	}
	return cust, nil
}

// ListNotes fetches the notes on a customer account, newest first.
func (c *Client) ListNotes(ctx context.Context, customerID int64) ([]Note, error) {
	params := url.Values{}
	params.Set("customer_id", fmt.Sprintf("eq.%d", customerID))
	params.Set("order", "created_at.desc")

	var notes []Note
	if err := c.do(ctx, http.MethodGet, "/rest/v1/customer_notes?"+params.Encode(), nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// CreateNote adds a note to a customer account.
func (c *Client) CreateNote(ctx context.Context, customerID int64, body string) (Note, error) {
	payload := map[string]any{"customer_id": customerID, "body": body}

	var rows []Note
	if err := c.do(ctx, http.MethodPost, "/rest/v1/customer_notes", payload, &rows); err != nil {
		return Note{}, err
	}
	if len(rows) == 0 {
		return Note{}, apperr.Unavailable("municipal store returned no note", nil)
	}
	return rows[0], nil
}

// ListActivities fetches the logged touches on a customer account, newest
// first.
func (c *Client) ListActivities(ctx context.Context, customerID int64) ([]Activity, error) {
	params := url.Values{}
	params.Set("customer_id", fmt.Sprintf("eq.%d", customerID))
	params.Set("order", "created_at.desc")

	var activities []Activity
	if err := c.do(ctx, http.MethodGet, "/rest/v1/activities?"+params.Encode(), nil, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// CreateActivity logs a touch on a customer account.
func (c *Client) CreateActivity(ctx context.Context, params CreateActivityParams) (Activity, error) {
	var rows []Activity
	if err := c.do(ctx, http.MethodPost, "/rest/v1/activities", params, &rows); err != nil {
		return Activity{}, err
	}
	if len(rows) == 0 {
		return Activity{}, apperr.Unavailable("municipal store returned no activity", nil)
	}
	return rows[0], nil
}

// Ping checks whether the store answers at all.
func (c *Client) Ping(ctx context.Context) error {
	params := url.Values{}
	params.Set("limit", "1")
	var rows []json.RawMessage
	return c.do(ctx, http.MethodGet, "/rest/v1/reminders?"+params.Encode(), nil, &rows)
}

func (c *Client) patchReminder(ctx context.Context, id int64, payload map[string]any) (domain.Reminder, error) {
	params := url.Values{}
	params.Set("id", fmt.Sprintf("eq.%d", id))
	params.Set("select", reminderSelect)

	var rows []domain.Reminder
	if err := c.do(ctx, http.MethodPatch, "/rest/v1/reminders?"+params.Encode(), payload, &rows); err != nil {
		return domain.Reminder{}, err
	}
	if len(rows) == 0 {
		return domain.Reminder{}, apperr.NotFound("reminder not found")
	}
	return rows[0], nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	if !c.enabled {
		return apperr.Unavailable("municipal store is not configured", nil)
	}

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodPost || method == http.MethodPatch {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.UpstreamError("municipal-store", method+" "+path, err)
		return apperr.Unavailable("municipal store unreachable", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		c.log.Error("municipal store rejected credentials", "status", resp.StatusCode)
		return apperr.Unavailable("municipal store rejected credentials", nil)
	case resp.StatusCode >= 400:
		c.log.Error("municipal store upstream error", "status", resp.StatusCode, "path", path)
		return apperr.Unavailable(fmt.Sprintf("municipal store error: status %d", resp.StatusCode), nil)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.log.UpstreamError("municipal-store", "decode "+path, err)
		return apperr.Unavailable("municipal store returned a malformed response", err)
	}
	return nil
}

func normalizeCustomerPhone(ref *domain.CustomerRef, region string) {
	if ref == nil || ref.MainPhone == nil {
		return
	}
	normalized := phone.Normalize(*ref.MainPhone, region)
	ref.MainPhone = &normalized
}
