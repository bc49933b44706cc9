// Package brief produces the rep's daily brief: an AI-written summary of
// the pipeline when the assist service is reachable, and a deterministic
// local rendition when it is not.
package brief

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fieldsales_backend/internal/pipeline/domain"
	"fieldsales_backend/platform/apperr"
	"fieldsales_backend/platform/config"
	"fieldsales_backend/platform/logger"
)

// Client talks to the AI assist service. The service is a black box that
// takes the lead snapshot and returns prose; all scoring and queue logic
// stays on this side.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	enabled    bool
	log        *logger.Logger
}

// NewClient creates a new AI assist client.
func NewClient(cfg config.AIAssistConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 20 * time.Second},
		baseURL:    cfg.GetAIAssistBaseURL(),
		token:      cfg.GetAIAssistToken(),
		enabled:    cfg.IsAIAssistEnabled(),
		log:        log,
	}
}

// Enabled reports whether an assist service is configured.
func (c *Client) Enabled() bool { return c.enabled }

type briefRequest struct {
	Leads []domain.Lead `json:"leads"`
}

// GenerateBrief asks the assist service for a brief over the given snapshot.
func (c *Client) GenerateBrief(ctx context.Context, leads []domain.Lead) (domain.Brief, error) {
	if !c.enabled {
		return domain.Brief{}, apperr.Unavailable("ai assist is not configured", nil)
	}

	raw, err := json.Marshal(briefRequest{Leads: leads})
	if err != nil {
		return domain.Brief{}, fmt.Errorf("encode brief request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ai/brief", bytes.NewReader(raw))
	if err != nil {
		return domain.Brief{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.UpstreamError("ai-assist", "generate brief", err)
		return domain.Brief{}, apperr.Unavailable("ai assist unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Error("ai assist upstream error", "status", resp.StatusCode)
		return domain.Brief{}, apperr.Unavailable(fmt.Sprintf("ai assist error: status %d", resp.StatusCode), nil)
	}

	var brief domain.Brief
	if err := json.NewDecoder(resp.Body).Decode(&brief); err != nil {
		c.log.UpstreamError("ai-assist", "decode brief", err)
		return domain.Brief{}, apperr.Unavailable("ai assist returned a malformed response", err)
	}
	if brief.Summary == "" {
		return domain.Brief{}, apperr.Unavailable("ai assist returned an empty brief", nil)
	}
	return brief, nil
}
