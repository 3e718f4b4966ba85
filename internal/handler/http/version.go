package http

import (
	"net/http"

	"github.com/MKhiriev/go-job-tracker/internal/logger"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(serverVersion))
}

// healthz answers 200 while the database is reachable and 503 otherwise.
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")

	if err := h.services.AppInfoService.Ping(r.Context()); err != nil {
		logger.FromRequest(r).Err(err).Msg("health check failed")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("unavailable"))
		return
	}

	w.Write([]byte("ok"))
}
