package cache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisClient is the subset of *redis.Client used by RedisCache.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Close() error
}

// RedisCache stores entries in redis. It lets several server processes share
// fetched glyphs and rendered artifacts.
type RedisCache struct {
	client redisClient
	closed atomic.Bool
}

// NewRedisCache connects to the redis server at url
// (e.g. "redis://localhost:6379/0") and verifies the connection.
func NewRedisCache(ctx context.Context, url string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisCache{client: client}, nil
}

// newRedisCacheWithClient wraps an existing client.
func newRedisCacheWithClient(c redisClient) *RedisCache {
	return &RedisCache{client: c}
}

// Get retrieves a value from redis. redis.Nil is reported as a miss.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if c.closed.Load() {
		return nil, false, ErrClosed
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a value in redis with the given ttl (0 = no expiration).
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if c.closed.Load() {
		return ErrClosed
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

// Delete removes key from redis.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if c.closed.Load() {
		return ErrClosed
	}
	return c.client.Del(ctx, key).Err()
}

// Close closes the underlying client. Subsequent calls return ErrClosed.
func (c *RedisCache) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	return c.client.Close()
}

// Ensure RedisCache implements Cache.
var _ Cache = (*RedisCache)(nil)
