// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the access gate when parsing the
// "Authorization" HTTP header. Their text is sent to the client as is.
var (
	// ErrEmptyAuthorizationHeader is returned when the request has no
	// "Authorization" header or it does not use the Bearer scheme.
	ErrEmptyAuthorizationHeader = errors.New("No authorization header found.")

	// ErrEmptyToken is returned when the header carries the Bearer scheme
	// but no token.
	ErrEmptyToken = errors.New("Invalid credentials. No access token supplied.")

	// ErrInvalidJSON is returned for request bodies that cannot be decoded.
	ErrInvalidJSON = errors.New("Invalid JSON was passed.")

	// ErrTooManyRequests is returned once a client has used up its rate
	// limit window.
	ErrTooManyRequests = errors.New("Too many requests, please try again later.")

	// ErrRouteNotFound is returned for unknown routes and unsupported methods.
	ErrRouteNotFound = errors.New("Route not found.")
)
