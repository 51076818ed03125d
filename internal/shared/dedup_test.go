package shared

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestDedupStoreWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()

	store := NewDedupStore(client, "lowstock", time.Hour)
	ctx := context.Background()

	seen, err := store.Seen(ctx, "V1")
	if err != nil {
		t.Fatalf("seen error: %v", err)
	}
	if seen {
		t.Fatalf("first occurrence must not be seen")
	}

	seen, err = store.Seen(ctx, "V1")
	if err != nil {
		t.Fatalf("seen error: %v", err)
	}
	if !seen {
		t.Fatalf("second occurrence inside window must be suppressed")
	}

	mr.FastForward(2 * time.Hour)
	seen, err = store.Seen(ctx, "V1")
	if err != nil {
		t.Fatalf("seen error: %v", err)
	}
	if seen {
		t.Fatalf("expired key must fire again")
	}
}

func TestDedupStoreForget(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()

	store := NewDedupStore(client, "lowstock", time.Hour)
	ctx := context.Background()

	if _, err := store.Seen(ctx, "V1"); err != nil {
		t.Fatalf("seen error: %v", err)
	}
	if err := store.Forget(ctx, "V1"); err != nil {
		t.Fatalf("forget error: %v", err)
	}
	seen, err := store.Seen(ctx, "V1")
	if err != nil {
		t.Fatalf("seen error: %v", err)
	}
	if seen {
		t.Fatalf("forgotten key must fire again")
	}
}

func TestDedupStoreValidation(t *testing.T) {
	var store *DedupStore
	if _, err := store.Seen(context.Background(), "x"); err == nil {
		t.Fatalf("nil store must error")
	}
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()
	s := NewDedupStore(client, "p", time.Minute)
	if _, err := s.Seen(context.Background(), ""); err == nil {
		t.Fatalf("empty key must error")
	}
}
