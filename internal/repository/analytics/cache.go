// Package analytics provides a short-TTL cache for the analytics feeds.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/rueidis"
)

const keyPrefix = "georetrieve:analytics:"

// ErrCacheMiss signals that no cached payload exists for the key.
var ErrCacheMiss = errors.New("analytics cache miss")

// Cache stores analytics payloads in Redis with an expiry.
type Cache struct {
	client rueidis.Client
	ttl    time.Duration
}

// Config holds the cache connection settings.
type Config struct {
	Addrs    []string
	Password string
	TTL      time.Duration
}

// NewCache connects to Redis and returns a Cache.
func NewCache(cfg Config) (*Cache, error) {
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress: cfg.Addrs,
		Password:    cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("connect analytics cache: %w", err)
	}
	return &Cache{client: client, ttl: cfg.TTL}, nil
}

// Get returns the cached payload or ErrCacheMiss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	cmd := c.client.B().Get().Key(keyPrefix + key).Build()
	data, err := c.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("cache get %s: %w", key, err)
	}
	return data, nil
}

// Set stores a payload with the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, value []byte) error {
	cmd := c.client.B().Set().Key(keyPrefix + key).Value(string(value)).Ex(c.ttl).Build()
	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// Ping checks cache connectivity.
func (c *Cache) Ping(ctx context.Context) error {
	if err := c.client.Do(ctx, c.client.B().Ping().Build()).Error(); err != nil {
		return fmt.Errorf("ping analytics cache: %w", err)
	}
	return nil
}

// Close releases the connection.
func (c *Cache) Close() {
	c.client.Close()
}
