// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/MKhiriev/go-job-tracker/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func validRegisterRequest() models.RegisterRequest {
	return models.RegisterRequest{
		Username: "alice",
		Email:    "a@x.com",
		Password: "secret1",
	}
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestUserValidator_Register(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *models.RegisterRequest)
		wantErr error
	}{
		{name: "valid", mutate: func(r *models.RegisterRequest) {}},
		{name: "missing username", mutate: func(r *models.RegisterRequest) { r.Username = "  " }, wantErr: ErrUsernameRequired},
		{name: "short username", mutate: func(r *models.RegisterRequest) { r.Username = "al" }, wantErr: ErrUsernameLength},
		{name: "long username", mutate: func(r *models.RegisterRequest) { r.Username = strings.Repeat("a", 41) }, wantErr: ErrUsernameLength},
		{name: "username at upper bound", mutate: func(r *models.RegisterRequest) { r.Username = strings.Repeat("a", 40) }},
		{name: "missing email", mutate: func(r *models.RegisterRequest) { r.Email = "" }, wantErr: ErrEmailRequired},
		{name: "bad email", mutate: func(r *models.RegisterRequest) { r.Email = "not-an-email" }, wantErr: ErrEmailFormat},
		{name: "email without tld", mutate: func(r *models.RegisterRequest) { r.Email = "a@x" }, wantErr: ErrEmailFormat},
		{name: "dotted email", mutate: func(r *models.RegisterRequest) { r.Email = "first.last@mail.example.org" }},
		{name: "long email", mutate: func(r *models.RegisterRequest) { r.Email = strings.Repeat("a", 45) + "@x.com" }, wantErr: ErrEmailTooLong},
		{name: "missing password", mutate: func(r *models.RegisterRequest) { r.Password = "" }, wantErr: ErrPasswordRequired},
		{name: "short password", mutate: func(r *models.RegisterRequest) { r.Password = "12345" }, wantErr: ErrPasswordLength},
		{name: "password over 72 bytes", mutate: func(r *models.RegisterRequest) { r.Password = strings.Repeat("p", 73) }, wantErr: ErrPasswordLength},
	}

	v := NewUserValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegisterRequest()
			tt.mutate(&req)

			err := v.Validate(context.Background(), req)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUserValidator_Register_PointerAndFields(t *testing.T) {
	v := NewUserValidator()
	req := validRegisterRequest()
	req.Password = ""

	assert.ErrorIs(t, v.Validate(context.Background(), &req), ErrPasswordRequired)
	assert.NoError(t, v.Validate(context.Background(), &req, FieldUsername, FieldEmail))
	assert.ErrorIs(t, v.Validate(context.Background(), req, "nope"), ErrUnknownField)
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestUserValidator_Login(t *testing.T) {
	v := NewUserValidator()

	assert.NoError(t, v.Validate(context.Background(), models.LoginRequest{Email: "a@x.com", Password: "x"}))
	assert.ErrorIs(t, v.Validate(context.Background(), models.LoginRequest{Password: "x"}), ErrEmailRequired)
	assert.ErrorIs(t, v.Validate(context.Background(), &models.LoginRequest{Email: "a@x.com"}), ErrPasswordRequired)
}

// ---------------------------------------------------------------------------
// Change password
// ---------------------------------------------------------------------------

func TestUserValidator_ChangePassword(t *testing.T) {
	v := NewUserValidator()

	assert.NoError(t, v.Validate(context.Background(), models.ChangePasswordRequest{OldPassword: "secret1", NewPassword: "secret2"}))
	assert.ErrorIs(t, v.Validate(context.Background(), models.ChangePasswordRequest{NewPassword: "secret2"}), ErrPasswordRequired)
	assert.ErrorIs(t, v.Validate(context.Background(), models.ChangePasswordRequest{OldPassword: "secret1", NewPassword: "short"}), ErrPasswordLength)
	assert.ErrorIs(t, v.Validate(context.Background(), models.ChangePasswordRequest{OldPassword: "secret1", NewPassword: "secret1"}), ErrSamePassword)
}

func TestUserValidator_UnsupportedType(t *testing.T) {
	v := NewUserValidator()
	assert.ErrorIs(t, v.Validate(context.Background(), 42), ErrUnsupportedType)
}
