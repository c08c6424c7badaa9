// Package cache is a thin JSON view cache over redis. A nil *Cache is a
// valid no-op cache, so callers never branch on whether redis is
// configured.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache struct {
	client *redis.Client
}

// New connects from a redis URL. An empty URL yields a nil cache.
func New(redisURL string) (*Cache, error) {
	if redisURL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &Cache{client: redis.NewClient(opts)}, nil
}

// Ping verifies the connection. Nil cache pings fine.
func (c *Cache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Get unmarshals a cached value into dest. Returns false on a miss or any
// redis failure; a broken cache never breaks the read path.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// miss or degraded cache, fall through to the source
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// Set stores a value with a TTL. Failures are swallowed for the same
// reason Get's are.
func (c *Cache) Set(ctx context.Context, key string, val any, ttl time.Duration) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(val)
	if err != nil {
		return
	}
	c.client.Set(ctx, key, raw, ttl)
}

// Close releases the connection. Nil-safe.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
