// Package scanner surfaces the municipal scanner service: a crawler that
// watches municipal procurement sites and emits prospect results.
package scanner

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

// Stats is the scanner's run summary.
type Stats struct {
	TotalScanned int    `json:"total_scanned"`
	NewProspects int    `json:"new_prospects"`
	LastRunAt    string `json:"last_run_at"`
	Status       string `json:"status"`
}

// Result is one prospect the scanner found.
type Result struct {
	ID           int64   `json:"id"`
	Municipality string  `json:"municipality"`
	State        string  `json:"state"`
	Category     string  `json:"category"`
	Summary      string  `json:"summary"`
	SourceURL    string  `json:"source_url"`
	Score        float64 `json:"score"`
	FoundAt      string  `json:"found_at"`
}

// Client talks to the scanner service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	enabled    bool
	log        *logger.Logger
}

// NewClient creates a new scanner client.
func NewClient(cfg config.ScannerConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    cfg.GetScannerBaseURL(),
		enabled:    cfg.IsScannerEnabled(),
		log:        log,
	}
}

// Enabled reports whether a scanner service is configured.
func (c *Client) Enabled() bool { return c.enabled }

// GetStats fetches the scanner's run summary.
func (c *Client) GetStats(ctx context.Context) (Stats, error) {
	var stats Stats
	if err := c.get(ctx, "/scanner/stats", &stats); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

// GetResults fetches the scanner's current prospect list.
func (c *Client) GetResults(ctx context.Context) ([]Result, error) {
	var results []Result
	if err := c.get(ctx, "/scanner/results", &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Ping checks whether the scanner answers at all.
func (c *Client) Ping(ctx context.Context) error {
	var stats Stats
	return c.get(ctx, "/scanner/stats", &stats)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	if !c.enabled {
		return apperr.Unavailable("scanner is not configured", nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.UpstreamError("scanner", "GET "+path, err)
		return apperr.Unavailable("scanner unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Error("scanner upstream error", "status", resp.StatusCode, "path", path)
		return apperr.Unavailable(fmt.Sprintf("scanner error: status %d", resp.StatusCode), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.log.UpstreamError("scanner", "decode "+path, err)
		return apperr.Unavailable("scanner returned a malformed response", err)
	}
	return nil
}
