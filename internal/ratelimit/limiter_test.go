package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-job-tracker/internal/config"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, limit int, window time.Duration) (*Limiter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	l, err := New(client, limit, window)
	require.NoError(t, err)
	return l, mr
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		limit  int
		window time.Duration
	}{
		{name: "zero limit", limit: 0, window: time.Minute},
		{name: "negative limit", limit: -1, window: time.Minute},
		{name: "zero window", limit: 10, window: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(nil, tt.limit, tt.window)
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Nil(t, l)
		})
	}
}

func TestAllow_WithinAndOverLimit(t *testing.T) {
	l, _ := newTestLimiter(t, 3, time.Minute)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		res, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, res.Allowed, "hit %d", i)
		assert.Equal(t, 3-i, res.Remaining)
		assert.Equal(t, 3, res.Limit)
	}

	res, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.Positive(t, res.RetryAfter)
	assert.LessOrEqual(t, res.RetryAfter, time.Minute)
}

func TestAllow_KeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()

	res, err := l.Allow(ctx, "a")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = l.Allow(ctx, "a")
	require.NoError(t, err)
	assert.False(t, res.Allowed)

	res, err = l.Allow(ctx, "b")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestAllow_WindowResets(t *testing.T) {
	l, mr := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()

	_, err := l.Allow(ctx, "ip")
	require.NoError(t, err)
	res, err := l.Allow(ctx, "ip")
	require.NoError(t, err)
	require.False(t, res.Allowed)

	mr.FastForward(time.Minute + time.Second)

	res, err = l.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestAllow_TTLSetOnFirstHitOnly(t *testing.T) {
	l, mr := newTestLimiter(t, 5, time.Minute)
	ctx := context.Background()

	_, err := l.Allow(ctx, "ip")
	require.NoError(t, err)
	mr.FastForward(30 * time.Second)
	_, err = l.Allow(ctx, "ip")
	require.NoError(t, err)

	ttl := mr.TTL(keyPrefix + "ip")
	assert.LessOrEqual(t, ttl, 30*time.Second)
}

func TestAllow_RedisDown(t *testing.T) {
	l, mr := newTestLimiter(t, 5, time.Minute)
	mr.Close()

	_, err := l.Allow(context.Background(), "ip")
	require.ErrorIs(t, err, ErrRedisUnavailable)
}

func TestNewFromConfig(t *testing.T) {
	t.Run("disabled without address", func(t *testing.T) {
		l, err := NewFromConfig(context.Background(), config.RateLimit{})
		require.NoError(t, err)
		assert.Nil(t, l)
	})

	t.Run("connects to redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		l, err := NewFromConfig(context.Background(), config.RateLimit{
			RedisAddress: mr.Addr(),
			Requests:     2,
			Window:       time.Minute,
		})
		require.NoError(t, err)
		require.NotNil(t, l)
		t.Cleanup(func() { _ = l.Close() })

		res, err := l.Allow(context.Background(), "ip")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	})

	t.Run("unreachable redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		l, err := NewFromConfig(context.Background(), config.RateLimit{
			RedisAddress: addr,
			Requests:     2,
			Window:       time.Minute,
		})
		require.ErrorIs(t, err, ErrRedisUnavailable)
		assert.Nil(t, l)
	})
}
