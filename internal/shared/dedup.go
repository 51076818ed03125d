package shared

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// DedupStore suppresses repeat events inside a time window. It replaces the
// module-level "already processed" sets of the previous system with an
// injectable store so every consumer (and every test) can own its instance.
type DedupStore struct {
	client *redis.Client
	prefix string
	window time.Duration
}

// NewDedupStore constructs a store. Keys expire after window, so an event
// suppressed now fires again once the window has passed.
func NewDedupStore(client *redis.Client, prefix string, window time.Duration) *DedupStore {
	return &DedupStore{client: client, prefix: prefix, window: window}
}

// Seen records the key and reports whether it was already present inside
// the window. The first caller gets false, subsequent callers true.
func (s *DedupStore) Seen(ctx context.Context, key string) (bool, error) {
	if s == nil || s.client == nil {
		return false, errors.New("dedup store not initialised")
	}
	if key == "" {
		return false, errors.New("dedup key required")
	}
	created, err := s.client.SetNX(ctx, s.prefix+":"+key, 1, s.window).Result()
	if err != nil {
		return false, err
	}
	return !created, nil
}

// Forget removes a key, typically to re-arm an alert after remediation.
func (s *DedupStore) Forget(ctx context.Context, key string) error {
	if s == nil || s.client == nil {
		return errors.New("dedup store not initialised")
	}
	return s.client.Del(ctx, s.prefix+":"+key).Err()
}
