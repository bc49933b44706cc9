package barrelhouse

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"fieldsales_backend/platform/cache"
	"fieldsales_backend/platform/httpkit"
	"fieldsales_backend/platform/logger"
)

const (
	statsCacheKey = "barrelhouse:stats"
	statsCacheTTL = 120 * time.Second
)

// Handler serves the CRM funnel stats, cached so the pipeline tab does not
// hit the CRM on every refresh.
type Handler struct {
	client *Client
	cache  *cache.Cache
	log    *logger.Logger
}

// NewHandler creates a new barrelhouse handler.
func NewHandler(client *Client, snapshots *cache.Cache, log *logger.Logger) *Handler {
	return &Handler{client: client, cache: snapshots, log: log}
}

// GetStats returns the CRM funnel summary.
// GET /api/v1/pipeline/stats
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

func (h *Handler) cacheSet(ctx context.Context, key string, value any) {
	if err := h.cache.Set(ctx, key, value, statsCacheTTL); err != nil {
		h.log.WithContext(ctx).Warn("barrelhouse stats not cached", "key", key, "error", err)
	}
}
