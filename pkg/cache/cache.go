package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/bookstore/config"
	"github.com/shashiranjanraj/bookstore/pkg/logger"
	"github.com/shashiranjanraj/bookstore/pkg/metrics"
)

const driverName = "redis"

// RDB is nil when Redis is not configured or unreachable; every helper then
// degrades to a no-op (Get always misses).
var RDB *redis.Client

// Connect initialises the Redis client and verifies the connection with a ping.
// Returns an error so the caller can react (log warning, fall back, or abort).
func Connect(ctx context.Context) error {
	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		RDB = nil
		return fmt.Errorf("cache: redis ping: %w", err)
	}
	RDB = client
	return nil
}

// Use swaps the client (tests, custom wiring). Passing nil disables caching.
func Use(client *redis.Client) {
	RDB = client
}

// Get retrieves a cached value by key and unmarshals into dest.
// Returns true on a cache hit, false on miss or error.
func Get(ctx context.Context, key string, dest interface{}) bool {
	if RDB == nil {
		return false
	}

	val, err := RDB.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.WithCtx(ctx).Warn("cache: get failed", "key", key, "error", err)
		}
		metrics.CacheMisses.WithLabelValues(driverName).Inc()
		return false
	}

	if err := json.Unmarshal(val, dest); err != nil {
		metrics.CacheMisses.WithLabelValues(driverName).Inc()
		return false
	}

	metrics.CacheHits.WithLabelValues(driverName).Inc()
	return true
}

// Set stores value in Redis under key for the given TTL.
func Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if RDB == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: marshal %s: %w", key, err)
	}

	return RDB.Set(ctx, key, data, ttl).Err()
}

// Forget removes one or more keys.
func Forget(ctx context.Context, keys ...string) error {
	if RDB == nil || len(keys) == 0 {
		return nil
	}
	return RDB.Del(ctx, keys...).Err()
}

// ForgetMatching removes every key matching a glob pattern such as
// "analytics:*". It walks the keyspace with SCAN, never KEYS.
func ForgetMatching(ctx context.Context, pattern string) error {
	if RDB == nil {
		return nil
	}

	var batch []string
	iter := RDB.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 100 {
			if err := RDB.Del(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("cache: forget %s: %w", pattern, err)
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache: scan %s: %w", pattern, err)
	}
	return Forget(ctx, batch...)
}

// Remember returns the cached value for key, or calls fn, stores its result
// for ttl and returns it. A ttl of zero bypasses the cache entirely.
// Cache write failures are logged and never fail the call.
func Remember[T any](ctx context.Context, key string, ttl time.Duration, fn func(context.Context) (T, error)) (T, error) {
	var cached T
	if ttl > 0 && Get(ctx, key, &cached) {
		return cached, nil
	}

	fresh, err := fn(ctx)
	if err != nil {
		return fresh, err
	}

	if ttl > 0 {
		if err := Set(ctx, key, fresh, ttl); err != nil {
			logger.WithCtx(ctx).Warn("cache: set failed", "key", key, "error", err)
		}
	}
	return fresh, nil
}

// Store adapts the package helpers to orm.Cacher.
type Store struct{}

func (Store) Get(ctx context.Context, key string, dest interface{}) bool {
	return Get(ctx, key, dest)
}

func (Store) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return Set(ctx, key, value, ttl)
}

func (Store) Forget(ctx context.Context, keys ...string) error {
	return Forget(ctx, keys...)
}
