// Package cache stores raw InnerTube responses in Redis.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/justestif/go-ytmusic/ytmusic"
)

const (
	keyPrefix = "ytmusic:resp:"

	// DefaultTTL is how long a cached response is served.
	DefaultTTL = 10 * time.Minute
)

// ResponseCache is a ytmusic.Requester that answers repeated requests from
// Redis. Redis being unavailable never fails a request; the inner
// Requester is used instead.
type ResponseCache struct {
	next   ytmusic.Requester
	rdb    redis.Cmdable
	ttl    time.Duration
	logger *log.Logger
}

// Option configures a ResponseCache.
type Option func(*ResponseCache)

// WithTTL sets the expiry of cached responses.
func WithTTL(ttl time.Duration) Option {
	return func(c *ResponseCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithLogger sets the logger for Redis failures.
func WithLogger(l *log.Logger) Option {
	return func(c *ResponseCache) {
		if l != nil {
			c.logger = l
		}
	}
}

// New wraps next with a Redis-backed cache.
func New(next ytmusic.Requester, rdb redis.Cmdable, opts ...Option) *ResponseCache {
	c := &ResponseCache{
		next:   next,
		rdb:    rdb,
		ttl:    DefaultTTL,
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initialized forwards to the inner Requester when it tracks initialization.
func (c *ResponseCache) Initialized() bool {
	if in, ok := c.next.(interface{ Initialized() bool }); ok {
		return in.Initialized()
	}
	return true
}

// Request returns the cached response for an identical request, or asks the
// inner Requester and caches what it returns.
func (c *ResponseCache) Request(ctx context.Context, endpoint string, body map[string]any, query map[string]string) ([]byte, error) {
	key, err := Key(endpoint, body, query)
	if err != nil {
		return nil, err
	}

	cached, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		return cached, nil
	case errors.Is(err, redis.Nil):
	default:
		c.logger.Printf("cache: reading %s: %v", endpoint, err)
	}

	resp, err := c.next.Request(ctx, endpoint, body, query)
	if err != nil {
		return nil, err
	}

	if err := c.rdb.Set(ctx, key, resp, c.ttl).Err(); err != nil {
		c.logger.Printf("cache: writing %s: %v", endpoint, err)
	}
	return resp, nil
}

// Key derives the cache key of a request. Map keys are encoded in sorted
// order, so equal requests share a key.
func Key(endpoint string, body map[string]any, query map[string]string) (string, error) {
	data, err := json.Marshal(struct {
		Endpoint string            `json:"endpoint"`
		Body     map[string]any    `json:"body"`
		Query    map[string]string `json:"query"`
	}{endpoint, body, query})
	if err != nil {
		return "", fmt.Errorf("encoding cache key: %w", err)
	}
	sum := sha256.Sum256(data)
	return keyPrefix + hex.EncodeToString(sum[:]), nil
}
