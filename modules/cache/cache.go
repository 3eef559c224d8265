// Package cache provides a Redis-backed cache-aside layer for catalog reads.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache wraps a Redis client with JSON serialization and hit/miss counters.
type Cache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	stats  *stats
}

type stats struct {
	hits          uint64
	misses        uint64
	sets          uint64
	invalidations uint64
	errors        uint64
}

// StatsSnapshot is a point-in-time view of the cache counters.
type StatsSnapshot struct {
	Hits          uint64  `json:"hits"`
	Misses        uint64  `json:"misses"`
	Sets          uint64  `json:"sets"`
	Invalidations uint64  `json:"invalidations"`
	Errors        uint64  `json:"errors"`
	HitRate       float64 `json:"hit_rate"`
}

// New creates a new Cache.
func New(client *redis.Client, prefix string, ttl time.Duration) *Cache {
	return &Cache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		stats:  &stats{},
	}
}

// Get retrieves a value from the cache into dest. The boolean reports a hit.
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			atomic.AddUint64(&c.stats.misses, 1)
			return false, nil
		}
		atomic.AddUint64(&c.stats.errors, 1)
		return false, fmt.Errorf("cache get error: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		atomic.AddUint64(&c.stats.errors, 1)
		return false, fmt.Errorf("cache unmarshal error: %w", err)
	}

	atomic.AddUint64(&c.stats.hits, 1)
	return true, nil
}

// Set stores a value in the cache with the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		atomic.AddUint64(&c.stats.errors, 1)
		return fmt.Errorf("cache marshal error: %w", err)
	}

	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		atomic.AddUint64(&c.stats.errors, 1)
		return fmt.Errorf("cache set error: %w", err)
	}

	atomic.AddUint64(&c.stats.sets, 1)
	return nil
}

// Delete removes a single key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		atomic.AddUint64(&c.stats.errors, 1)
		return fmt.Errorf("cache delete error: %w", err)
	}
	atomic.AddUint64(&c.stats.invalidations, 1)
	return nil
}

// InvalidateAll removes every key under the cache prefix. Called after any
// catalog mutation so reads reconverge on the store.
func (c *Cache) InvalidateAll(ctx context.Context) error {
	var cursor uint64
	var removed int

	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.prefix+"*", 100).Result()
		if err != nil {
			atomic.AddUint64(&c.stats.errors, 1)
			return fmt.Errorf("cache scan error: %w", err)
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				atomic.AddUint64(&c.stats.errors, 1)
				return fmt.Errorf("cache delete error: %w", err)
			}
			removed += len(keys)
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	atomic.AddUint64(&c.stats.invalidations, uint64(removed))
	return nil
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() StatsSnapshot {
	hits := atomic.LoadUint64(&c.stats.hits)
	misses := atomic.LoadUint64(&c.stats.misses)

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}

	return StatsSnapshot{
		Hits:          hits,
		Misses:        misses,
		Sets:          atomic.LoadUint64(&c.stats.sets),
		Invalidations: atomic.LoadUint64(&c.stats.invalidations),
		Errors:        atomic.LoadUint64(&c.stats.errors),
		HitRate:       hitRate,
	}
}

// Ping checks the Redis connection.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (c *Cache) Close() error {
	return c.client.Close()
}
