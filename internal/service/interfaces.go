package service

import (
	"context"

	"github.com/MKhiriev/go-job-tracker/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// TokenService mints and checks signed access and refresh tokens. It never
// touches the store.
type TokenService interface {
	IssueAccess(identity models.Identity) (models.Token, error)
	IssueRefresh(identity models.Identity, sessionID string) (models.Token, error)
	// IssuePair issues an access token and a refresh token bound to sessionID.
	IssuePair(identity models.Identity, sessionID string) (access, refresh models.Token, err error)
	// Verify checks signature, expiry, issuer and class of token and returns
	// its claims, or ErrTokenIsExpiredOrInvalid.
	Verify(token string, class models.TokenClass) (models.Claims, error)
	// HashRefreshToken returns the form in which a refresh token is stored.
	HashRefreshToken(token string) string
	// RefreshTokenMatches compares token against a stored hash in constant time.
	RefreshTokenMatches(token, tokenHash string) bool
}

// AuthService is the session manager and the core of the access gate.
type AuthService interface {
	Register(ctx context.Context, request models.RegisterRequest) (models.PublicUser, error)
	Login(ctx context.Context, request models.LoginRequest) (models.LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error)
	Logout(ctx context.Context, identity models.Identity, refreshToken string) (string, error)
	LogoutAll(ctx context.Context, identity models.Identity) (string, error)
	ChangePassword(ctx context.Context, identity models.Identity, request models.ChangePasswordRequest) (string, error)
	// Authenticate resolves the owner of a valid access token.
	Authenticate(ctx context.Context, accessToken string) (models.Identity, error)
}

type UserService interface {
	ListUsers(ctx context.Context) ([]models.UserListItem, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	// Ping reports whether the database is reachable.
	Ping(ctx context.Context) error
}

// Pinger is satisfied by *sql.DB and *store.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}
