package http

import (
	"context"
	"time"

	"github.com/MKhiriev/go-job-tracker/internal/logger"
	"github.com/MKhiriev/go-job-tracker/internal/metrics"
	"github.com/MKhiriev/go-job-tracker/internal/ratelimit"
	"github.com/MKhiriev/go-job-tracker/internal/service"
)

// RateLimiter is satisfied by [ratelimit.Limiter].
type RateLimiter interface {
	Allow(ctx context.Context, key string) (ratelimit.Result, error)
}

type Handler struct {
	services *service.Services

	metrics        *metrics.Metrics
	limiter        RateLimiter
	requestTimeout time.Duration
	trustProxy     bool

	logger *logger.Logger
}

// Option configures optional collaborators of a [Handler].
type Option func(*Handler)

// WithMetrics records request metrics and exposes them on /metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Handler) {
		h.metrics = m
	}
}

// WithRateLimiter enables per-IP limiting of the /api routes.
func WithRateLimiter(l RateLimiter) Option {
	return func(h *Handler) {
		h.limiter = l
	}
}

// WithRequestTimeout cancels the context of requests running longer than d.
func WithRequestTimeout(d time.Duration) Option {
	return func(h *Handler) {
		h.requestTimeout = d
	}
}

// WithTrustedProxy keys rate limiting on the address appended to
// X-Forwarded-For by the proxy in front of the server. Without it the
// header is ignored, since any client can set it.
func WithTrustedProxy(trusted bool) Option {
	return func(h *Handler) {
		h.trustProxy = trusted
	}
}

func NewHandler(services *service.Services, logger *logger.Logger, opts ...Option) *Handler {
	h := &Handler{
		services: services,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(h)
	}

	logger.Info().
		Bool("metrics", h.metrics != nil).
		Bool("rate_limit", h.limiter != nil).
		Msg("http handler created")
	return h
}
