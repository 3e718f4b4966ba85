package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-job-tracker/internal/logger"
	"github.com/MKhiriev/go-job-tracker/internal/utils"
)

const bearerPrefix = "Bearer "

// auth is the access gate. It extracts the bearer token from the
// "Authorization" header, resolves its owner via
// [service.AuthService.Authenticate] and stores the resulting
// [models.Identity] in the request context under [utils.IdentityCtxKey].
//
// Requests are rejected with 401 when the header is absent or not a Bearer
// header, when the token is empty, or when authentication fails.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := getTokenFromAuthHeader(r.Header.Get("Authorization"))
		if err != nil {
			log.Debug().Err(err).Msg("request without usable bearer token")
			writeError(w, r, err)
			return
		}

		ctx := r.Context()
		identity, err := h.services.AuthService.Authenticate(ctx, tokenString)
		if err != nil {
			writeError(w, r, err)
			return
		}

		ctx = utils.WithIdentity(ctx, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromAuthHeader extracts the token from a header value of the form
//
//	Authorization: Bearer <token>
//
// It returns [ErrEmptyAuthorizationHeader] when the value is empty or uses
// another scheme, and [ErrEmptyToken] when the token part is blank.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", ErrEmptyAuthorizationHeader
	}

	tokenString, _, _ := strings.Cut(strings.TrimSpace(authHeader[len(bearerPrefix):]), " ")
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
