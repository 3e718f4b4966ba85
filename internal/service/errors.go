package service

import (
	"errors"
)

// Error kinds. Every error returned by a service matches exactly one of them
// with errors.Is; the transport layer maps kinds to status codes.
var (
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
	ErrInternal     = errors.New("internal error")
)

// Error is a service failure with a message that is safe to show to the
// caller. It matches its kind and, when set, the underlying cause.
type Error struct {
	Kind    error
	Message string
	cause   error
}

func newError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// withCause returns a copy of e that also matches cause.
func (e *Error) withCause(cause error) *Error {
	return &Error{Kind: e.Kind, Message: e.Message, cause: cause}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.cause}
}

// Is lets errors.Is match two *Error values by message, so copies made by
// withCause still match their template.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Kind == e.Kind && t.Message == e.Message
	}
	return false
}

var (
	ErrMissingCredentials      = newError(ErrValidation, "Please provide email and password.")
	ErrInvalidCredentials      = newError(ErrUnauthorized, "Invalid email or password.")
	ErrEmailAlreadyRegistered  = newError(ErrConflict, "User with this email already exists.")
	ErrTokenIsExpiredOrInvalid = newError(ErrUnauthorized, "Token is expired or invalid.")
	ErrRefreshTokenRequired    = newError(ErrUnauthorized, "Refresh token required.")
	ErrInvalidRefreshToken     = newError(ErrUnauthorized, "Invalid refresh token")
	ErrUserNoLongerExists      = newError(ErrUnauthorized, "User not found.")
	ErrWrongPassword           = newError(ErrUnauthorized, "Old password is incorrect.")
	ErrTokenCreationFailed     = newError(ErrInternal, "Could not issue tokens.")
	ErrInternalFailure         = newError(ErrInternal, "Internal server error.")
)

// ErrVersionIsNotSpecified is returned by NewAppInfoService when no version
// was configured.
var ErrVersionIsNotSpecified = errors.New("app version is not specified")

// validationError turns a validator error into a Validation failure that
// carries the validator's message.
func validationError(err error) error {
	return newError(ErrValidation, err.Error()).withCause(err)
}

// internalError hides err behind a generic message.
func internalError(err error) error {
	return ErrInternalFailure.withCause(err)
}
