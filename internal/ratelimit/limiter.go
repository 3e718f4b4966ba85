// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-job-tracker/internal/config"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "job-tracker:ratelimit:"

// Result describes the state of a key's window after a hit.
type Result struct {
	// Allowed is false once the key has used up its window.
	Allowed bool
	// Limit is the number of requests allowed per window.
	Limit int
	// Remaining is how many requests are left in the current window.
	Remaining int
	// RetryAfter is the time until the window resets.
	RetryAfter time.Duration
}

// Limiter counts hits per key in Redis.
type Limiter struct {
	redis  redis.UniversalClient
	limit  int
	window time.Duration
}

// New creates a [Limiter] over the given client.
func New(client redis.UniversalClient, limit int, window time.Duration) (*Limiter, error) {
	if limit <= 0 || window <= 0 {
		return nil, fmt.Errorf("%w: limit=%d window=%s", ErrInvalidConfig, limit, window)
	}

	return &Limiter{
		redis:  client,
		limit:  limit,
		window: window,
	}, nil
}

// NewFromConfig dials Redis with the settings of cfg and checks the
// connection. It returns a nil limiter and no error when no Redis address
// is configured, which disables limiting.
func NewFromConfig(ctx context.Context, cfg config.RateLimit) (*Limiter, error) {
	if cfg.RedisAddress == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return New(client, cfg.Requests, cfg.Window)
}

// Allow records a hit for key and reports whether it is still within the
// window's budget.
func (l *Limiter) Allow(ctx context.Context, key string) (Result, error) {
	redisKey := keyPrefix + key

	count, err := l.incrementWithTTL(ctx, redisKey)
	if err != nil {
		return Result{}, err
	}

	ttl, err := l.redis.PTTL(ctx, redisKey).Result()
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if ttl < 0 {
		ttl = l.window
	}

	remaining := l.limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return Result{
		Allowed:    count <= int64(l.limit),
		Limit:      l.limit,
		Remaining:  remaining,
		RetryAfter: ttl,
	}, nil
}

// Close releases the underlying Redis client.
func (l *Limiter) Close() error {
	return l.redis.Close()
}

func (l *Limiter) incrementWithTTL(ctx context.Context, key string) (int64, error) {
	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	// the window starts with its first hit
	if count == 1 {
		if err = l.redis.PExpire(ctx, key, l.window).Err(); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
		}
	}

	return count, nil
}
