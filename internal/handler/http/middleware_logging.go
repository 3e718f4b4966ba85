package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/MKhiriev/go-job-tracker/internal/logger"
	"github.com/go-chi/chi/v5"
)

// unmatchedRoute labels requests that hit no registered route, so metrics
// do not grow a label per scanned URL.
const unmatchedRoute = "unmatched"

// withLogging writes one access log entry per request and, when metrics are
// enabled, observes the request under its chi route pattern.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		start := time.Now()

		uri := r.RequestURI
		method := r.Method

		lw := &responseWriter{
			ResponseWriter: w,
		}

		next.ServeHTTP(lw, r)

		duration := time.Since(start)
		status := lw.statusCode()
		route := routePattern(r)

		log.Info().
			Str("uri", uri).
			Str("route", route).
			Str("method", method).
			Str("remote_addr", r.RemoteAddr).
			Int("status", status).
			Dur("duration", duration).
			Int("size", lw.size).
			Send()

		if h.metrics != nil {
			h.metrics.ObserveHTTPRequest(route, method, strconv.Itoa(status), duration)
		}
	})
}

func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return unmatchedRoute
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return unmatchedRoute
}
