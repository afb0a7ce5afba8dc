// Package cache keeps rendered public listings and login attempt counters in
// Redis. When no Redis address is configured the Noop cache is used and every
// read misses.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Keys of cached public listings.
const (
	KeyCategories = "categories:active"
	KeyBanners    = "banners:active"
	KeySettings   = "settings"
)

type Cache interface {
	// Get decodes the value under key into dst and reports whether it was found.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, keys ...string) error
	// Incr bumps a counter and (re)starts its expiry.
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
	// Count reads a counter; a missing counter is zero.
	Count(ctx context.Context, key string) (int64, error)
}

type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// RedisCache stores JSON-encoded values with a fixed TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects and pings the server.
func NewRedis(ctx context.Context, cfg Config) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return &RedisCache{client: client, ttl: cfg.TTL}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		// A value we cannot decode is stale; drop it and report a miss.
		c.client.Del(ctx, key)
		return false, nil
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *RedisCache) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func (c *RedisCache) Count(ctx context.Context, key string) (int64, error) {
	n, err := c.client.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

var (
	_ Cache = (*RedisCache)(nil)
	_ Cache = Noop{}
)

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string, any) (bool, error)             { return false, nil }
func (Noop) Set(context.Context, string, any) error                     { return nil }
func (Noop) Delete(context.Context, ...string) error                    { return nil }
func (Noop) Incr(context.Context, string, time.Duration) (int64, error) { return 0, nil }
func (Noop) Count(context.Context, string) (int64, error)               { return 0, nil }
