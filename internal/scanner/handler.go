package scanner

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"fieldsales_backend/platform/cache"
	"fieldsales_backend/platform/httpkit"
	"fieldsales_backend/platform/logger"
)

const (
	statsCacheKey   = "scanner:stats"
	resultsCacheKey = "scanner:results"
	scannerCacheTTL = 120 * time.Second
)

// Handler serves scanner data, cached because the scanner recomputes its
// stats on every request.
type Handler struct {
	client *Client
	cache  *cache.Cache
	log    *logger.Logger
}

// NewHandler creates a new scanner handler.
func NewHandler(client *Client, snapshots *cache.Cache, log *logger.Logger) *Handler {
	return &Handler{client: client, cache: snapshots, log: log}
}

// GetStats returns the scanner run summary.
// GET /api/v1/scanner/stats
func (h *Handler) GetStats(c *gin.Context) {
	var stats Stats
	if err := h.cache.Get(c.Request.Context(), statsCacheKey, &stats); err == nil {
		httpkit.OK(c, stats)
		return
	}

	stats, err := h.client.GetStats(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	h.cacheSet(c.Request.Context(), statsCacheKey, stats)
	httpkit.OK(c, stats)
}

// GetResults returns the scanner's prospect list.
// GET /api/v1/scanner/results
func (h *Handler) GetResults(c *gin.Context) {
	var results []Result
	if err := h.cache.Get(c.Request.Context(), resultsCacheKey, &results); err == nil {
		httpkit.OK(c, results)
		return
	}

	results, err := h.client.GetResults(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	h.cacheSet(c.Request.Context(), resultsCacheKey, results)
	httpkit.OK(c, results)
}

func (h *Handler) cacheSet(ctx context.Context, key string, value any) {
	if err := h.cache.Set(ctx, key, value, scannerCacheTTL); err != nil {
		h.log.WithContext(ctx).Warn("scanner snapshot not cached", "key", key, "error", err)
	}
}
