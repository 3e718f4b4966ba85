// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/go-job-tracker/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/client_mock.go -package=mock

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run executes the subcommand in args and returns when it is done.
	Run(ctx context.Context, args []string) error
}

// SessionStore persists the token pair of the logged-in user.
type SessionStore interface {
	// Load returns the stored pair, or ErrNotLoggedIn when there is none.
	Load() (models.TokenPair, error)
	Save(tokens models.TokenPair) error
	// Clear forgets the stored pair. Clearing an empty store is not an error.
	Clear() error
}

// Prompter asks the user for input.
type Prompter interface {
	Prompt(label string) (string, error)
	// PromptPassword reads a value without echoing it.
	PromptPassword(label string) (string, error)
}
