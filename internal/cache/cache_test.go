package cache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*Cache, func()) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return New(client, time.Minute), func() {
		_ = client.Close()
		mr.Close()
	}
}

func TestFetchJSONCachesLoaderResult(t *testing.T) {
	c, cleanup := newTestCache(t)
	defer cleanup()
	ctx := context.Background()

	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return map[string]int{"value": 42}, nil
	}

	key, err := c.Key(ctx, "stats", "stock")
	if err != nil {
		t.Fatalf("key error: %v", err)
	}
	var out map[string]int
	if err := c.FetchJSON(ctx, key, &out, loader); err != nil {
		t.Fatalf("fetch error: %v", err)
	}
	if out["value"] != 42 || calls != 1 {
		t.Fatalf("unexpected first fetch: %v calls=%d", out, calls)
	}

	if err := c.FetchJSON(ctx, key, &out, loader); err != nil {
		t.Fatalf("fetch error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected cached value, loader called %d times", calls)
	}
}

func TestBumpChangesKeys(t *testing.T) {
	c, cleanup := newTestCache(t)
	defer cleanup()
	ctx := context.Background()

	before, err := c.Key(ctx, "stats")
	if err != nil {
		t.Fatalf("key error: %v", err)
	}
	if err := c.Bump(ctx); err != nil {
		t.Fatalf("bump error: %v", err)
	}
	after, err := c.Key(ctx, "stats")
	if err != nil {
		t.Fatalf("key error: %v", err)
	}
	if before == after {
		t.Fatalf("expected version bump to change keys, both %q", before)
	}
}

func TestNilCachePassesThrough(t *testing.T) {
	var c *Cache
	ctx := context.Background()
	var out int
	err := c.FetchJSON(ctx, "any", &out, func(context.Context) (any, error) { return 7, nil })
	if err != nil {
		t.Fatalf("fetch error: %v", err)
	}
	if out != 7 {
		t.Fatalf("expected loader value, got %d", out)
	}
	if err := c.Bump(ctx); err != nil {
		t.Fatalf("nil bump must be a no-op, got %v", err)
	}
}
