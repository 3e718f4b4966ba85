package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-job-tracker/models"
	"github.com/go-resty/resty/v2"
)

var statusErrorMap = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusNotFound:            ErrNotFound,
	http.StatusConflict:            ErrConflict,
	http.StatusTooManyRequests:     ErrTooManyRequests,
	http.StatusInternalServerError: ErrInternalServerError,
	http.StatusServiceUnavailable:  ErrServiceUnavailable,
}

func mapHTTPError(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	message := errorMessage(resp.Body())
	if message == "" {
		message = http.StatusText(resp.StatusCode())
	}

	if target, ok := statusErrorMap[resp.StatusCode()]; ok {
		return fmt.Errorf("%w: %s", target, message)
	}
	return fmt.Errorf("http %d: %s", resp.StatusCode(), message)
}

// errorMessage extracts the message of a JSON error body, falling back to
// the raw body for plain text responses.
func errorMessage(body []byte) string {
	var response models.ErrorResponse
	if err := json.Unmarshal(body, &response); err == nil && response.Message != "" {
		return response.Message
	}
	return strings.TrimSpace(string(body))
}
