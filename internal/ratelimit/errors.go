package ratelimit

import "errors"

var (
	// ErrRedisUnavailable wraps every failure talking to Redis.
	ErrRedisUnavailable = errors.New("rate limiter: redis unavailable")

	// ErrInvalidConfig is returned by [New] for a non-positive limit or window.
	ErrInvalidConfig = errors.New("rate limiter: invalid config")
)
