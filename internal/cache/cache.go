// Package cache provides a versioned Redis JSON cache shared by the
// dashboard services. Invalidation is global: mutations bump a single
// version counter, which changes every derived key at once.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	versionKey     = "backoffice:cache:version"
	invalidChannel = "snapshot.bump"
)

// Cache wraps Redis with version-prefixed JSON caching. A nil Cache (or one
// without a client) degrades to pass-through loads so tests and degraded
// deployments keep working.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New constructs the cache helper.
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Version returns the current cache version, initialising it to 1 when
// missing or corrupt.
func (c *Cache) Version(ctx context.Context) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	ver, err := c.client.Get(ctx, versionKey).Int64()
	switch {
	case errors.Is(err, redis.Nil):
		ver = 1
	case err != nil:
		return 0, err
	case ver <= 0:
		ver = 1
	default:
		return ver, nil
	}
	if err := c.client.Set(ctx, versionKey, ver, 0).Err(); err != nil {
		return 0, err
	}
	return ver, nil
}

// Key joins the parts and suffixes the current version.
func (c *Cache) Key(ctx context.Context, parts ...string) (string, error) {
	joined := strings.Join(parts, ":")
	if c == nil || c.client == nil {
		return joined, nil
	}
	ver, err := c.Version(ctx)
	if err != nil {
		return "", err
	}
	return joined + ":" + strconv.FormatInt(ver, 10), nil
}

// FetchJSON resolves a cached value, falling back to the loader and storing
// its result. The loader's value round-trips through JSON either way so that
// cached and fresh responses share one shape.
func (c *Cache) FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error {
	if loader == nil {
		return errors.New("cache: loader required")
	}
	if c != nil && c.client != nil {
		payload, err := c.client.Get(ctx, key).Bytes()
		if err == nil {
			return json.Unmarshal(payload, dest)
		}
		if !errors.Is(err, redis.Nil) {
			return err
		}
	}
	value, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if c != nil && c.client != nil {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			return err
		}
	}
	return json.Unmarshal(raw, dest)
}

// Bump invalidates every cached entry by incrementing the version and
// notifying subscribers.
func (c *Cache) Bump(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	ver, err := c.client.Incr(ctx, versionKey).Result()
	if err != nil {
		return err
	}
	return c.client.Publish(ctx, invalidChannel, strconv.FormatInt(ver, 10)).Err()
}

// ListenForInvalidation keeps the local version in sync with bump events
// published by other processes. Runs until ctx is cancelled.
func (c *Cache) ListenForInvalidation(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	pubsub := c.client.Subscribe(ctx, invalidChannel)
	go func() {
		defer func() { _ = pubsub.Close() }()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				ver, err := strconv.ParseInt(msg.Payload, 10, 64)
				if err != nil || ver <= 0 {
					_ = c.client.Incr(ctx, versionKey).Err()
					continue
				}
				_ = c.client.Set(ctx, versionKey, ver, 0).Err()
			}
		}
	}()
	return nil
}
