// Package cache provides Redis caching utilities for the application.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"homiee/internal/observability"
)

var client *redis.Client

type metricsHook struct{}

func (h metricsHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h metricsHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		if err != nil && !errors.Is(err, redis.Nil) {
			observability.RedisErrorRate.WithLabelValues(cmd.Name()).Inc()
		}
		return err
	}
}

func (h metricsHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		if err != nil && !errors.Is(err, redis.Nil) {
			observability.RedisErrorRate.WithLabelValues("pipeline").Inc()
		}
		return err
	}
}

// InitRedis initializes the Redis client with the given address.
// The application runs without a cache when Redis is unreachable.
func InitRedis(addr string) {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			slog.Warn("Invalid REDIS_URL, continuing without cache",
				slog.String("addr", addr), slog.String("error", err.Error()))
			client = nil
			return
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client = redis.NewClient(opts)
	client.AddHook(metricsHook{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("Redis unreachable, continuing without cache", slog.String("error", err.Error()))
		client = nil
	} else {
		slog.Info("Redis connected successfully")
	}
}

// SetClient replaces the Redis client. Used by tests and dependency injection.
func SetClient(c *redis.Client) {
	client = c
}

// GetClient returns the current Redis client instance.
func GetClient() *redis.Client {
	return client
}

// Close shuts down the Redis client if one is connected.
func Close() {
	if client != nil {
		_ = client.Close()
		client = nil
	}
}

// Aside implements the cache-aside pattern: fetch the key from Redis into dest,
// falling back to load on a miss and writing the loaded value back with the TTL.
// Cache failures degrade to calling load directly.
func Aside[T any](ctx context.Context, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	var zero T
	if client == nil {
		return load()
	}

	raw, err := client.Get(ctx, key).Bytes()
	if err == nil {
		var cached T
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			return cached, nil
		}
		// Corrupt entry, drop it and fall through to the loader.
		client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		slog.WarnContext(ctx, "Cache read failed, falling back to source",
			slog.String("key", key), slog.String("error", err.Error()))
	}

	value, err := load()
	if err != nil {
		return zero, err
	}

	// An absent row encodes as JSON null. Writing it back would pin the miss
	// for the full TTL and hide a row created in the meantime, so only real
	// values are cached.
	if encoded, jsonErr := json.Marshal(value); jsonErr == nil && string(encoded) != "null" {
		client.Set(ctx, key, encoded, ttl)
	}
	return value, nil
}
