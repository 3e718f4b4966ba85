package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-job-tracker/internal/logger"
	"github.com/MKhiriev/go-job-tracker/internal/service"
	"github.com/MKhiriev/go-job-tracker/internal/utils"
	"github.com/MKhiriev/go-job-tracker/models"
)

// Stable values of [models.ErrorResponse.Kind].
const (
	kindValidation   = "Validation"
	kindUnauthorized = "Unauthorized"
	kindConflict     = "Conflict"
	kindNotFound     = "NotFound"
	kindInternal     = "Internal"
	kindRateLimited  = "RateLimited"
)

var errorStatusMap = map[error]int{
	service.ErrValidation:   http.StatusBadRequest,
	service.ErrUnauthorized: http.StatusUnauthorized,
	service.ErrConflict:     http.StatusConflict,
	service.ErrNotFound:     http.StatusNotFound,
	service.ErrInternal:     http.StatusInternalServerError,

	ErrEmptyAuthorizationHeader: http.StatusUnauthorized,
	ErrEmptyToken:               http.StatusUnauthorized,
	ErrInvalidJSON:              http.StatusBadRequest,
	ErrTooManyRequests:          http.StatusTooManyRequests,
	ErrRouteNotFound:            http.StatusNotFound,
}

var statusKindMap = map[int]string{
	http.StatusBadRequest:          kindValidation,
	http.StatusUnauthorized:        kindUnauthorized,
	http.StatusConflict:            kindConflict,
	http.StatusNotFound:            kindNotFound,
	http.StatusTooManyRequests:     kindRateLimited,
	http.StatusInternalServerError: kindInternal,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// errorResponse builds the body sent for err. Only messages of service
// errors and of this package's sentinels reach the client; anything else
// is reported as a bare internal error.
func errorResponse(err error) (models.ErrorResponse, int) {
	status := statusFromError(err)
	response := models.ErrorResponse{
		Kind:    statusKindMap[status],
		Message: http.StatusText(http.StatusInternalServerError),
	}

	var serviceErr *service.Error
	switch {
	case errors.As(err, &serviceErr):
		response.Message = serviceErr.Message
	case status != http.StatusInternalServerError:
		response.Message = err.Error()
	}

	return response, status
}

// writeError logs err and writes its mapped status and body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	response, status := errorResponse(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	utils.WriteJSON(w, response, status)
}

func routeNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, ErrRouteNotFound)
}
