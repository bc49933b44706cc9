// Package remote provides the HTTP client for the external pipeline store.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"fieldsales_backend/internal/pipeline/domain"
	"fieldsales_backend/platform/apperr"
	"fieldsales_backend/platform/config"
	"fieldsales_backend/platform/logger"
)

// Client talks to the remote pipeline store's REST API. The store is the
// system of record for server-backed leads; this service keeps a local
// cache so the dashboard survives an outage.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	enabled    bool
	log        *logger.Logger
}

// New creates a new pipeline store client.
func New(cfg config.PipelineConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    cfg.GetPipelineBaseURL(),
		token:      cfg.GetPipelineToken(),
		enabled:    cfg.IsPipelineRemoteEnabled(),
		log:        log,
	}
}

// Enabled reports whether a remote store is configured.
func (c *Client) Enabled() bool { return c.enabled }

// CreateLeadParams is the payload for pushing a locally minted lead.
type CreateLeadParams struct {
	Source     domain.Source `json:"source"`
	Title      string        `json:"title"`
	City       string        `json:"city,omitempty"`
	State      string        `json:"state,omitempty"`
	Score      int           `json:"score"`
	Stage      domain.Stage  `json:"stage"`
	NextAction string        `json:"next_action,omitempty"`
	CustomerID *int64        `json:"customer_id,omitempty"`
}

// wireLead is the store's lead representation. Identifiers always travel
// as numbers on this API.
type wireLead struct {
	ID         int64  `json:"id"`
	Source     string `json:"source"`
	Title      string `json:"title"`
	City       string `json:"city"`
	State      string `json:"state"`
	Score      int    `json:"score"`
	Stage      string `json:"stage"`
	NextAction string `json:"next_action"`
	CustomerID *int64 `json:"customer_id"`
}

func (w wireLead) toDomain() (domain.Lead, error) {
	stage, err := domain.ParseStage(w.Stage)
	if err != nil {
		return domain.Lead{}, fmt.Errorf("lead %d: %w", w.ID, err)
	}
	lead := domain.Lead{
		ID:         domain.RemoteID(w.ID),
		Source:     domain.Source(w.Source),
		Title:      w.Title,
		City:       w.City,
		State:      w.State,
		Score:      w.Score,
		Stage:      stage,
		NextAction: w.NextAction,
	}
	if w.CustomerID != nil {
		lead.CustomerID = *w.CustomerID
	}
	return lead, nil
}

// ListLeads pulls the full lead collection from the store, most recent
// first as the store orders them.
func (c *Client) ListLeads(ctx context.Context) ([]domain.Lead, error) {
	var wire []wireLead
	if err := c.do(ctx, http.MethodGet, "/pipeline/leads/", nil, &wire); err != nil {
		return nil, err
	}

	leads := make([]domain.Lead, 0, len(wire))
	for _, w := range wire {
		lead, err := w.toDomain()
		if err != nil {
			c.log.Warn("skipping malformed remote lead", "error", err)
			continue
		}
		leads = append(leads, lead)
	}
	return leads, nil
}

// CreateLead pushes a locally minted lead and returns the server-assigned
// identifier for reconciliation.
func (c *Client) CreateLead(ctx context.Context, params CreateLeadParams) (domain.LeadID, error) {
	var wire wireLead
	if err := c.do(ctx, http.MethodPost, "/pipeline/leads/", params, &wire); err != nil {
		return domain.LeadID{}, err
	}
	if wire.ID == 0 {
		return domain.LeadID{}, apperr.Unavailable("pipeline store returned no lead id", nil)
	}
	return domain.RemoteID(wire.ID), nil
}

// UpdateLeadStage moves a server-backed lead to a new stage.
func (c *Client) UpdateLeadStage(ctx context.Context, id int64, stage domain.Stage) error {
	payload := struct {
		Stage domain.Stage `json:"stage"`
	}{Stage: stage}
	path := fmt.Sprintf("/pipeline/leads/%s/", url.PathEscape(fmt.Sprintf("%d", id)))
	return c.do(ctx, http.MethodPatch, path, payload, nil)
}

// GetPreferences fetches the rep's saved view preferences from the store.
func (c *Client) GetPreferences(ctx context.Context) (domain.Preferences, error) {
	var prefs domain.Preferences
	if err := c.do(ctx, http.MethodGet, "/pipeline/preferences/", nil, &prefs); err != nil {
		return domain.Preferences{}, err
	}
	return prefs, nil
}

// SavePreferences mirrors the view preferences to the store.
func (c *Client) SavePreferences(ctx context.Context, prefs domain.Preferences) error {
	return c.do(ctx, http.MethodPost, "/pipeline/preferences/", prefs, nil)
}

// Ping checks whether the store answers at all.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/pipeline/leads/", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	if !c.enabled {
		return apperr.Unavailable("pipeline store is not configured", nil)
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
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.UpstreamError("pipeline-store", method+" "+path, err)
		return apperr.Unavailable("pipeline store unreachable", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return apperr.NotFound("not found in pipeline store")
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		c.log.Error("pipeline store rejected credentials", "status", resp.StatusCode)
		return apperr.Unavailable("pipeline store rejected credentials", nil)
	case resp.StatusCode >= 400:
		c.log.Error("pipeline store upstream error", "status", resp.StatusCode, "path", path)
		return apperr.Unavailable(fmt.Sprintf("pipeline store error: status %d", resp.StatusCode), nil)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.log.UpstreamError("pipeline-store", "decode "+path, err)
		return apperr.Unavailable("pipeline store returned a malformed response", err)
	}
	return nil
}
