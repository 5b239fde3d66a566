// Package redis caches scrape results in Redis.
package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/scout"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultTTL is how long a cached result stays valid.
	DefaultTTL = 15 * time.Minute

	// DefaultFallbackTTL applies to results that include fallback records,
	// so live results replace them soon after the sites recover.
	DefaultFallbackTTL = time.Minute
)

// Cmdable is the subset of the Redis client the cache needs.
type Cmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

var _ Cmdable = (*redis.Client)(nil)

// NewClient connects to the Redis server at url (redis://...) and verifies
// the connection.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, scout.Errorf(scout.EINVALID, "invalid redis URL: %v", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// Option configures a cache decorator.
type Option func(*cache)

// WithTTL sets the cache TTL.
func WithTTL(d time.Duration) Option {
	return func(c *cache) {
		c.ttl = d
	}
}

// WithFallbackTTL sets the TTL for results that include fallback records.
// Zero or less means such results are not cached.
func WithFallbackTTL(d time.Duration) Option {
	return func(c *cache) {
		c.fallbackTTL = d
	}
}

type cache struct {
	client      Cmdable
	ttl         time.Duration
	fallbackTTL time.Duration
}

func newCache(client Cmdable, opts []Option) cache {
	c := cache{client: client, ttl: DefaultTTL, fallbackTTL: DefaultFallbackTTL}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// cacheKey is stable for the same kind, query and limit.
func cacheKey(kind, query string, limit int) string {
	sum := xxhash.Sum64String(kind + "|" + query + "|" + strconv.Itoa(limit))
	return "scout:" + kind + ":" + strconv.FormatUint(sum, 16)
}
