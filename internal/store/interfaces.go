package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-job-tracker/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts.
type UserRepository interface {
	// CreateUser inserts user. A taken email yields ErrEmailAlreadyExists.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID string) (models.User, error)
	// ListUsers returns every user ordered by creation time.
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error
}

// SessionRepository persists login sessions and the hash of the one refresh
// token each of them accepts.
type SessionRepository interface {
	CreateSession(ctx context.Context, session models.Session) error
	FindSessionByID(ctx context.Context, sessionID string) (models.Session, error)

	// RotateSession swaps the token hash of a live session from oldHash to
	// newHash. It returns ErrSessionNotFound when the session is revoked or
	// its current hash is not oldHash, so of two concurrent rotations with
	// the same token only one succeeds.
	RotateSession(ctx context.Context, sessionID, oldHash, newHash string, expiresAt time.Time) error

	// RevokeSession revokes the live session holding tokenHash.
	RevokeSession(ctx context.Context, sessionID, tokenHash string) error

	// RevokeUserSessions revokes every live session of the user and returns
	// how many were revoked.
	RevokeUserSessions(ctx context.Context, userID string) (int64, error)

	// DeleteExpiredSessions removes sessions that expired or were revoked
	// before the given time.
	DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error)
}

// ErrorClassificator maps driver errors to an [ErrorClassification].
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
