package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type summary struct {
	Overdue int `json:"overdue"`
	Today   int `json:"today"`
}

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return New(client), mr
}

func TestCacheSetGetRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "dashboard:summary", summary{Overdue: 3, Today: 1}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got summary
	if err := c.Get(ctx, "dashboard:summary", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Overdue != 3 || got.Today != 1 {
		t.Fatalf("expected {3 1}, got %+v", got)
	}
}

func TestCacheMissAfterTTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "scanner:stats", summary{Overdue: 1}, 30*time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(31 * time.Second)

	var got summary
	if err := c.Get(ctx, "scanner:stats", &got); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss after TTL, got %v", err)
	}
}

func TestCacheInvalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "dashboard:summary", summary{Overdue: 2}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.Invalidate(ctx, "dashboard:summary"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}

	var got summary
	if err := c.Get(ctx, "dashboard:summary", &got); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss after invalidate, got %v", err)
	}
}

func TestNilCacheIsNoop(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	if err := c.Set(ctx, "k", summary{}, time.Minute); err != nil {
		t.Fatalf("nil set should be a no-op, got %v", err)
	}
	var got summary
	if err := c.Get(ctx, "k", &got); !errors.Is(err, ErrMiss) {
		t.Fatalf("nil get should miss, got %v", err)
	}
}
