// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client of the job tracker.
//
// An [App] runs one subcommand per process: it prompts for credentials on
// the terminal, calls the server through an adapter.ServerAdapter and keeps
// the current token pair in a session file between runs.
package client
