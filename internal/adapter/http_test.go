// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-job-tracker/internal/config"
	"github.com/MKhiriev/go-job-tracker/internal/logger"
	"github.com/MKhiriev/go-job-tracker/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()
	adapterCfg := config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 5 * time.Second}

	a, err := NewHTTPServerAdapter(adapterCfg, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func decodeRequest[T any](t *testing.T, r *http.Request) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(r.Body).Decode(&v))
	return v
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "adds scheme", raw: "localhost:8080", want: "http://localhost:8080"},
		{name: "keeps https", raw: "https://auth.example.com/", want: "https://auth.example.com"},
		{name: "trims spaces", raw: "  127.0.0.1:9000 ", want: "http://127.0.0.1:9000"},
		{name: "empty", raw: "   ", wantErr: true},
		{name: "no host", raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegister_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/auth/register", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		req := decodeRequest[models.RegisterRequest](t, r)
		assert.Equal(t, "alice", req.Username)
		assert.Equal(t, "alice@example.com", req.Email)

		writeJSON(t, w, http.StatusCreated, models.RegisterResponse{
			Message: "User registered successfully",
			User:    models.PublicUser{Username: "alice"},
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Register(context.Background(), models.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, "alice", got.User.Username)
	assert.Equal(t, "User registered successfully", got.Message)
}

func TestRegister_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusConflict, models.ErrorResponse{Kind: "Conflict", Message: "Email is already registered."})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Register(context.Background(), models.RegisterRequest{Email: "alice@example.com"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "Email is already registered.")
}

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/login", r.URL.Path)
		req := decodeRequest[models.LoginRequest](t, r)
		if req.Password != "secret123" {
			writeJSON(t, w, http.StatusUnauthorized, models.ErrorResponse{Kind: "Unauthorized", Message: "Invalid email or password."})
			return
		}
		writeJSON(t, w, http.StatusOK, models.LoginResponse{
			Message:      "Login successful",
			User:         models.PublicUser{Username: "alice"},
			AccessToken:  "access",
			RefreshToken: "refresh",
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)

	t.Run("success", func(t *testing.T) {
		got, err := a.Login(context.Background(), models.LoginRequest{Email: "alice@example.com", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, "access", got.AccessToken)
		assert.Equal(t, "refresh", got.RefreshToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := a.Login(context.Background(), models.LoginRequest{Email: "alice@example.com", Password: "nope"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnauthorized)
		assert.Contains(t, err.Error(), "Invalid email or password.")
	})
}

func TestRefresh(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/refresh-token", r.URL.Path)
		req := decodeRequest[models.RefreshRequest](t, r)
		assert.Equal(t, "old-refresh", req.RefreshToken)

		writeJSON(t, w, http.StatusOK, models.RefreshResponse{
			Message: "New tokens generated",
			Tokens:  models.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"},
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Refresh(context.Background(), "old-refresh")

	require.NoError(t, err)
	assert.Equal(t, models.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, got)
}

func TestGatedRoutesSendBearerToken(t *testing.T) {
	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		writeJSON(t, w, http.StatusOK, models.MessageResponse{Message: "done"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	ctx := context.Background()

	tests := []struct {
		name string
		path string
		call func() (string, error)
	}{
		{name: "logout", path: "/api/v1/auth/logout", call: func() (string, error) { return a.Logout(ctx, "tok", "refresh") }},
		{name: "logout all", path: "/api/v1/auth/logout-all", call: func() (string, error) { return a.LogoutAll(ctx, "tok") }},
		{name: "change password", path: "/api/v1/auth/change-password", call: func() (string, error) {
			return a.ChangePassword(ctx, "tok", models.ChangePasswordRequest{OldPassword: "a", NewPassword: "b"})
		}},
		{name: "dashboard", path: "/api/v1/auth/dashboard", call: func() (string, error) { return a.Dashboard(ctx, "tok") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := tt.call()
			require.NoError(t, err)
			assert.Equal(t, "done", msg)
			assert.Equal(t, "Bearer tok", gotAuth)
			assert.Equal(t, tt.path, gotPath)
		})
	}
}

func TestDashboard_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, models.ErrorResponse{Kind: "Unauthorized", Message: "Token is expired or invalid."})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Dashboard(context.Background(), "expired")

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestListUsers(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/auth/", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.UsersResponse{
			Message:   "Records retrieved successfully.",
			Results:   []models.UserListItem{{UserID: "u1", Username: "alice", Email: "alice@example.com", CreatedAt: created}},
			UserCount: 1,
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.ListUsers(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, got.UserCount)
	require.Len(t, got.Results, 1)
	assert.Equal(t, "alice", got.Results[0].Username)
	assert.True(t, created.Equal(got.Results[0].CreatedAt))
}

func TestVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/version/", r.URL.Path)
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("v1.2.3\n"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Version(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "v1.2.3", got)
}

func TestMapHTTPError_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusTooManyRequests, ErrTooManyRequests},
		{http.StatusInternalServerError, ErrInternalServerError},
		{http.StatusServiceUnavailable, ErrServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("plain failure"))
			}))
			defer srv.Close()

			_, err := newTestAdapter(t, srv.URL).ListUsers(context.Background())
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "plain failure")
		})
	}
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "Route not found.", errorMessage([]byte(`{"kind":"NotFound","message":"Route not found."}`)))
	assert.Equal(t, "oops", errorMessage([]byte(" oops \n")))
	assert.Equal(t, "", errorMessage(nil))
}

func TestConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestAdapter(t, url).Version(context.Background())
	assert.Error(t, err)
}
