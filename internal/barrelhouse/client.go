// Package barrelhouse proxies the BarrelHouse CRM API, the external system
// the pipeline tab headlines its funnel stats from.
package barrelhouse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fieldsales_backend/platform/apperr"
	"fieldsales_backend/platform/config"
	"fieldsales_backend/platform/logger"
)

// Stats is the CRM's funnel summary. Conversion rate and weekly meetings
// come straight from the CRM; they cannot be recomputed from the local lead
// snapshot.
type Stats struct {
	TotalLeads       int     `json:"total_leads"`
	QualifiedLeads   int     `json:"qualified_leads"`
	MeetingsThisWeek int     `json:"meetings_this_week"`
	ConversionRate   float64 `json:"conversion_rate"`
}

// Client talks to the BarrelHouse CRM API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	enabled    bool
	log        *logger.Logger
}

// NewClient creates a new BarrelHouse client.
func NewClient(cfg config.BarrelhouseConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    cfg.GetBarrelhouseBaseURL(),
		token:      cfg.GetBarrelhouseToken(),
		enabled:    cfg.IsBarrelhouseEnabled(),
		log:        log,
	}
}

// Enabled reports whether the CRM API is configured.
func (c *Client) Enabled() bool { return c.enabled }

// GetStats fetches the CRM's funnel summary.
func (c *Client) GetStats(ctx context.Context) (Stats, error) {
	var stats Stats
	if err := c.get(ctx, "/api/pipeline/stats/", &stats); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

// Ping checks whether the CRM answers at all.
func (c *Client) Ping(ctx context.Context) error {
	var stats Stats
	return c.get(ctx, "/api/pipeline/stats/", &stats)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	if !c.enabled {
		return apperr.Unavailable("barrelhouse crm is not configured", nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.UpstreamError("barrelhouse", "GET "+path, err)
		return apperr.Unavailable("barrelhouse crm unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Error("barrelhouse upstream error", "status", resp.StatusCode, "path", path)
		return apperr.Unavailable(fmt.Sprintf("barrelhouse crm error: status %d", resp.StatusCode), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.log.UpstreamError("barrelhouse", "decode "+path, err)
		return apperr.Unavailable("barrelhouse crm returned a malformed response", err)
	}
	return nil
}
