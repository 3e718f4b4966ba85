// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client-side transport to the job tracker
// server.
//
// [ServerAdapter] hides the HTTP API behind plain Go calls. Error values
// defined in errors.go are mapped from HTTP status codes by mapHTTPError so
// that callers can use [errors.Is] (e.g. [ErrConflict] for 409,
// [ErrUnauthorized] for 401); the server's message is kept in the error text.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-job-tracker/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter is the client's view of the server API. It holds no session
// state; callers pass the tokens of the current session explicitly.
type ServerAdapter interface {
	Register(ctx context.Context, request models.RegisterRequest) (models.RegisterResponse, error)
	Login(ctx context.Context, request models.LoginRequest) (models.LoginResponse, error)
	// Refresh exchanges refreshToken for a new token pair. The old refresh
	// token stops working.
	Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error)
	Logout(ctx context.Context, accessToken, refreshToken string) (string, error)
	LogoutAll(ctx context.Context, accessToken string) (string, error)
	ChangePassword(ctx context.Context, accessToken string, request models.ChangePasswordRequest) (string, error)
	// Dashboard returns the greeting of the gated dashboard route.
	Dashboard(ctx context.Context, accessToken string) (string, error)
	ListUsers(ctx context.Context) (models.UsersResponse, error)
	Version(ctx context.Context) (string, error)
}
