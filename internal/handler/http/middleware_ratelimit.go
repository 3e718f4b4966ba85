package http

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-job-tracker/internal/logger"
)

// withRateLimit counts requests per client IP. Limiting is skipped when no
// limiter is configured, and fails open when the limiter errors.
func (h *Handler) withRateLimit(next http.Handler) http.Handler {
	if h.limiter == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		result, err := h.limiter.Allow(r.Context(), clientIP(r, h.trustProxy))
		if err != nil {
			logger.FromRequest(r).Warn().Err(err).Msg("rate limiter unavailable, request let through")
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))

		if !result.Allowed {
			w.Header().Set("Retry-After", strconv.Itoa(int(result.RetryAfter.Seconds())))
			if h.metrics != nil {
				h.metrics.IncRateLimited()
			}
			writeError(w, r, ErrTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP is the remote address without its port. Behind a trusted proxy
// it is the last X-Forwarded-For hop, the one the proxy itself appended;
// earlier hops come from the client and are never used.
func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if ip := lastForwardedHop(r.Header.Values("X-Forwarded-For")); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func lastForwardedHop(values []string) string {
	if len(values) == 0 {
		return ""
	}

	hops := strings.Split(values[len(values)-1], ",")
	ip := net.ParseIP(strings.TrimSpace(hops[len(hops)-1]))
	if ip == nil {
		return ""
	}
	return ip.String()
}
