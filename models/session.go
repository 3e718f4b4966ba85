package models

import "time"

// Session is one login of a user. It holds the hash of the single refresh
// token currently valid for it; refreshing replaces the hash, logout sets
// RevokedAt.
type Session struct {
	// SessionID is a ULID, carried in the refresh token's "sid" claim.
	SessionID string

	// UserID is the owner of the session.
	UserID string

	// TokenHash is the HMAC-SHA256 hex digest of the current refresh token.
	// The plaintext token is never stored.
	TokenHash string

	// ExpiresAt is when the current refresh token stops being accepted.
	ExpiresAt time.Time

	// RevokedAt is set on logout or when a later login supersedes the
	// session. Nil for live sessions.
	RevokedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the name of the database table
// associated with the Session model.
func (s Session) TableName() string {
	return "sessions"
}

// IsActive reports whether the session is neither revoked nor expired at now.
func (s Session) IsActive(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
