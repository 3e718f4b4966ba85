// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/MKhiriev/go-job-tracker/internal/adapter"
	"github.com/MKhiriev/go-job-tracker/internal/logger"
	"github.com/MKhiriev/go-job-tracker/internal/mock"
	"github.com/MKhiriev/go-job-tracker/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	storedPair  = models.TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1"}
	renewedPair = models.TokenPair{AccessToken: "access-2", RefreshToken: "refresh-2"}
)

type testApp struct {
	*App
	server   *mock.MockServerAdapter
	prompter *mock.MockPrompter
	sessions *FileSessionStore
	out      *bytes.Buffer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	ctrl := gomock.NewController(t)

	server := mock.NewMockServerAdapter(ctrl)
	prompter := mock.NewMockPrompter(ctrl)
	sessions := NewFileSessionStore(filepath.Join(t.TempDir(), "session.json"))
	out := &bytes.Buffer{}

	return &testApp{
		App:      NewApp(server, sessions, prompter, out, models.NewAppBuildInfo("v0.9.0", "2026-10-01", "abc123"), logger.Nop()),
		server:   server,
		prompter: prompter,
		sessions: sessions,
		out:      out,
	}
}

func (ta *testApp) loggedIn(t *testing.T) {
	t.Helper()
	require.NoError(t, ta.sessions.Save(storedPair))
}

func (ta *testApp) storedTokens(t *testing.T) models.TokenPair {
	t.Helper()
	tokens, err := ta.sessions.Load()
	require.NoError(t, err)
	return tokens
}

func unauthorized(msg string) error {
	return fmt.Errorf("%w: %s", adapter.ErrUnauthorized, msg)
}

func TestRun_NoCommand(t *testing.T) {
	ta := newTestApp(t)

	err := ta.Run(context.Background(), nil)

	assert.ErrorIs(t, err, ErrMissingCommand)
	assert.Contains(t, ta.out.String(), "usage: job-tracker <command>")
}

func TestRun_UnknownCommand(t *testing.T) {
	ta := newTestApp(t)

	err := ta.Run(context.Background(), []string{"frobnicate"})

	assert.ErrorIs(t, err, ErrUnknownCommand)
	assert.Contains(t, err.Error(), "frobnicate")
}

func TestRun_Help(t *testing.T) {
	ta := newTestApp(t)

	require.NoError(t, ta.Run(context.Background(), []string{"help"}))

	for _, name := range []string{"register", "login", "refresh", "logout", "logout-all", "change-password", "whoami", "users", "version"} {
		assert.Contains(t, ta.out.String(), name)
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ta := newTestApp(t)
		gomock.InOrder(
			ta.prompter.EXPECT().Prompt("Username").Return("alice", nil),
			ta.prompter.EXPECT().Prompt("Email").Return("alice@example.com", nil),
			ta.prompter.EXPECT().PromptPassword("Password").Return("secret123", nil),
			ta.prompter.EXPECT().PromptPassword("Repeat password").Return("secret123", nil),
		)
		ta.server.EXPECT().
			Register(ctx, models.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret123"}).
			Return(models.RegisterResponse{Message: "User registered successfully", User: models.PublicUser{Username: "alice"}}, nil)

		require.NoError(t, ta.Run(ctx, []string{"register"}))
		assert.Equal(t, "User registered successfully: alice\n", ta.out.String())

		_, err := ta.sessions.Load()
		assert.ErrorIs(t, err, ErrNotLoggedIn, "registering does not log in")
	})

	t.Run("passwords differ", func(t *testing.T) {
		ta := newTestApp(t)
		ta.prompter.EXPECT().Prompt(gomock.Any()).Return("x", nil).Times(2)
		ta.prompter.EXPECT().PromptPassword("Password").Return("secret123", nil)
		ta.prompter.EXPECT().PromptPassword("Repeat password").Return("secret124", nil)

		assert.ErrorIs(t, ta.Run(ctx, []string{"register"}), ErrPasswordsDiffer)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the session", func(t *testing.T) {
		ta := newTestApp(t)
		ta.prompter.EXPECT().Prompt("Email").Return("alice@example.com", nil)
		ta.prompter.EXPECT().PromptPassword("Password").Return("secret123", nil)
		ta.server.EXPECT().
			Login(ctx, models.LoginRequest{Email: "alice@example.com", Password: "secret123"}).
			Return(models.LoginResponse{
				Message:      "Login successful",
				User:         models.PublicUser{Username: "alice"},
				AccessToken:  storedPair.AccessToken,
				RefreshToken: storedPair.RefreshToken,
			}, nil)

		require.NoError(t, ta.Run(ctx, []string{"login"}))
		assert.Equal(t, storedPair, ta.storedTokens(t))
		assert.Contains(t, ta.out.String(), "Welcome, alice.")
	})

	t.Run("rejected", func(t *testing.T) {
		ta := newTestApp(t)
		ta.prompter.EXPECT().Prompt("Email").Return("alice@example.com", nil)
		ta.prompter.EXPECT().PromptPassword("Password").Return("wrong", nil)
		ta.server.EXPECT().Login(ctx, gomock.Any()).Return(models.LoginResponse{}, unauthorized("Invalid email or password."))

		err := ta.Run(ctx, []string{"login"})

		assert.ErrorIs(t, err, adapter.ErrUnauthorized)
		_, err = ta.sessions.Load()
		assert.ErrorIs(t, err, ErrNotLoggedIn)
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("not logged in", func(t *testing.T) {
		ta := newTestApp(t)
		assert.ErrorIs(t, ta.Run(ctx, []string{"refresh"}), ErrNotLoggedIn)
	})

	t.Run("rotates the stored pair", func(t *testing.T) {
		ta := newTestApp(t)
		ta.loggedIn(t)
		ta.server.EXPECT().Refresh(ctx, storedPair.RefreshToken).Return(renewedPair, nil)

		require.NoError(t, ta.Run(ctx, []string{"refresh"}))
		assert.Equal(t, renewedPair, ta.storedTokens(t))
	})

	t.Run("revoked session is forgotten", func(t *testing.T) {
		ta := newTestApp(t)
		ta.loggedIn(t)
		ta.server.EXPECT().Refresh(ctx, storedPair.RefreshToken).Return(models.TokenPair{}, unauthorized("Invalid refresh token"))

		err := ta.Run(ctx, []string{"refresh"})

		assert.ErrorIs(t, err, ErrNotLoggedIn)
		assert.ErrorIs(t, err, adapter.ErrUnauthorized)
		_, err = ta.sessions.Load()
		assert.ErrorIs(t, err, ErrNotLoggedIn)
	})
}

func TestWhoami_RefreshesExpiredAccessToken(t *testing.T) {
	ctx := context.Background()
	ta := newTestApp(t)
	ta.loggedIn(t)

	gomock.InOrder(
		ta.server.EXPECT().Dashboard(ctx, storedPair.AccessToken).Return("", unauthorized("Token is expired or invalid.")),
		ta.server.EXPECT().Refresh(ctx, storedPair.RefreshToken).Return(renewedPair, nil),
		ta.server.EXPECT().Dashboard(ctx, renewedPair.AccessToken).Return("Welcome alice, your id is u1", nil),
	)

	require.NoError(t, ta.Run(ctx, []string{"whoami"}))
	assert.Equal(t, "Welcome alice, your id is u1\n", ta.out.String())
	assert.Equal(t, renewedPair, ta.storedTokens(t))
}

func TestWhoami_RetriesOnlyOnce(t *testing.T) {
	ctx := context.Background()
	ta := newTestApp(t)
	ta.loggedIn(t)

	ta.server.EXPECT().Dashboard(ctx, gomock.Any()).Return("", unauthorized("User not found.")).Times(2)
	ta.server.EXPECT().Refresh(ctx, storedPair.RefreshToken).Return(renewedPair, nil)

	err := ta.Run(ctx, []string{"whoami"})

	assert.ErrorIs(t, err, adapter.ErrUnauthorized)
}

func TestWhoami_OtherErrorsAreNotRetried(t *testing.T) {
	ctx := context.Background()
	ta := newTestApp(t)
	ta.loggedIn(t)

	ta.server.EXPECT().Dashboard(ctx, storedPair.AccessToken).Return("", adapter.ErrInternalServerError)

	assert.ErrorIs(t, ta.Run(ctx, []string{"whoami"}), adapter.ErrInternalServerError)
	assert.Equal(t, storedPair, ta.storedTokens(t))
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("clears the session", func(t *testing.T) {
		ta := newTestApp(t)
		ta.loggedIn(t)
		ta.server.EXPECT().Logout(ctx, storedPair.AccessToken, storedPair.RefreshToken).Return("Logged out alice successfully.", nil)

		require.NoError(t, ta.Run(ctx, []string{"logout"}))
		assert.Equal(t, "Logged out alice successfully.\n", ta.out.String())
		_, err := ta.sessions.Load()
		assert.ErrorIs(t, err, ErrNotLoggedIn)
	})

	t.Run("keeps the session on failure", func(t *testing.T) {
		ta := newTestApp(t)
		ta.loggedIn(t)
		ta.server.EXPECT().Logout(ctx, gomock.Any(), gomock.Any()).Return("", adapter.ErrServiceUnavailable)

		assert.ErrorIs(t, ta.Run(ctx, []string{"logout"}), adapter.ErrServiceUnavailable)
		assert.Equal(t, storedPair, ta.storedTokens(t))
	})

	t.Run("uses the refreshed pair on retry", func(t *testing.T) {
		ta := newTestApp(t)
		ta.loggedIn(t)
		gomock.InOrder(
			ta.server.EXPECT().Logout(ctx, storedPair.AccessToken, storedPair.RefreshToken).Return("", unauthorized("Token is expired or invalid.")),
			ta.server.EXPECT().Refresh(ctx, storedPair.RefreshToken).Return(renewedPair, nil),
			ta.server.EXPECT().Logout(ctx, renewedPair.AccessToken, renewedPair.RefreshToken).Return("Logged out alice successfully.", nil),
		)

		require.NoError(t, ta.Run(ctx, []string{"logout"}))
	})
}

func TestLogoutAll(t *testing.T) {
	ctx := context.Background()
	ta := newTestApp(t)
	ta.loggedIn(t)
	ta.server.EXPECT().LogoutAll(ctx, storedPair.AccessToken).Return("Logged out alice from 3 session(s).", nil)

	require.NoError(t, ta.Run(ctx, []string{"logout-all"}))
	assert.Contains(t, ta.out.String(), "3 session(s)")
	_, err := ta.sessions.Load()
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("not logged in", func(t *testing.T) {
		ta := newTestApp(t)
		assert.ErrorIs(t, ta.Run(ctx, []string{"change-password"}), ErrNotLoggedIn)
	})

	t.Run("success ends the session", func(t *testing.T) {
		ta := newTestApp(t)
		ta.loggedIn(t)
		gomock.InOrder(
			ta.prompter.EXPECT().PromptPassword("Current password").Return("secret123", nil),
			ta.prompter.EXPECT().PromptPassword("New password").Return("secret456", nil),
			ta.prompter.EXPECT().PromptPassword("Repeat new password").Return("secret456", nil),
		)
		ta.server.EXPECT().
			ChangePassword(ctx, storedPair.AccessToken, models.ChangePasswordRequest{OldPassword: "secret123", NewPassword: "secret456"}).
			Return("Password changed successfully. Please log in again.", nil)

		require.NoError(t, ta.Run(ctx, []string{"change-password"}))
		assert.Contains(t, ta.out.String(), "Please log in again.")
		_, err := ta.sessions.Load()
		assert.ErrorIs(t, err, ErrNotLoggedIn)
	})
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	ta := newTestApp(t)
	ta.server.EXPECT().ListUsers(ctx).Return(models.UsersResponse{
		Message: "Records retrieved successfully.",
		Results: []models.UserListItem{
			{UserID: "u1", Username: "alice", Email: "alice@example.com", CreatedAt: time.Now()},
			{UserID: "u2", Username: "bob", Email: "bob@example.com", CreatedAt: time.Now()},
		},
		UserCount: 2,
	}, nil)

	require.NoError(t, ta.Run(ctx, []string{"users"}))

	out := ta.out.String()
	assert.Contains(t, out, "Records retrieved successfully. (2)")
	assert.Contains(t, out, "USERNAME")
	assert.Contains(t, out, "alice@example.com")
	assert.Contains(t, out, "bob@example.com")
}

func TestVersion(t *testing.T) {
	ctx := context.Background()
	ta := newTestApp(t)
	ta.server.EXPECT().Version(ctx).Return("v1.0.0", nil)

	require.NoError(t, ta.Run(ctx, []string{"version"}))
	assert.Equal(t, "client: v0.9.0 (commit abc123, built 2026-10-01)\nserver: v1.0.0\n", ta.out.String())
}

func TestVersion_ServerDown(t *testing.T) {
	ctx := context.Background()
	ta := newTestApp(t)
	ta.server.EXPECT().Version(ctx).Return("", adapter.ErrServiceUnavailable)

	assert.ErrorIs(t, ta.Run(ctx, []string{"version"}), adapter.ErrServiceUnavailable)
	assert.Contains(t, ta.out.String(), "client: v0.9.0")
}
