package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-job-tracker/internal/config"
	"github.com/MKhiriev/go-job-tracker/internal/crypto"
	"github.com/MKhiriev/go-job-tracker/internal/logger"
	"github.com/MKhiriev/go-job-tracker/internal/store"
	"github.com/MKhiriev/go-job-tracker/internal/utils"
	"github.com/MKhiriev/go-job-tracker/internal/validators"
	"github.com/MKhiriev/go-job-tracker/models"
)

// authService is the concrete implementation of AuthService.
//
// A session row holds the hash of the one refresh token it accepts. Login
// creates a session, refresh swaps the hash with a compare-and-swap, logout
// revokes the session. In single-session mode login first revokes every
// other session of the user.
type authService struct {
	users    store.UserRepository
	sessions store.SessionRepository

	hasher    crypto.PasswordHasher
	tokens    TokenService
	validator validators.Validator

	userIDs    *utils.UUIDGenerator
	sessionIDs *utils.ULIDGenerator

	singleSession bool
	now           func() time.Time

	logger *logger.Logger
}

// NewAuthService constructs an AuthService. All state is read-only after
// construction, so the service is safe for concurrent use.
func NewAuthService(
	users store.UserRepository,
	sessions store.SessionRepository,
	hasher crypto.PasswordHasher,
	tokens TokenService,
	cfg config.App,
	logger *logger.Logger,
) AuthService {
	return &authService{
		users:         users,
		sessions:      sessions,
		hasher:        hasher,
		tokens:        tokens,
		validator:     validators.NewUserValidator(),
		userIDs:       utils.NewUUIDGenerator(),
		sessionIDs:    utils.NewULIDGenerator(),
		singleSession: !cfg.AllowMultipleSessions,
		now:           func() time.Time { return time.Now().UTC() },
		logger:        logger,
	}
}

// Register validates the request, hashes the password and stores the user.
// Only the username is returned.
func (a *authService) Register(ctx context.Context, request models.RegisterRequest) (models.PublicUser, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, request); err != nil {
		return models.PublicUser{}, validationError(err)
	}

	passwordHash, err := a.hasher.Hash(request.Password)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("error hashing password")
		return models.PublicUser{}, internalError(err)
	}

	user := models.User{
		UserID:       a.userIDs.Generate(),
		Username:     strings.TrimSpace(request.Username),
		Email:        normalizeEmail(request.Email),
		PasswordHash: passwordHash,
		CreatedAt:    a.now(),
	}

	created, err := a.users.CreateUser(ctx, user)
	if errors.Is(err, store.ErrEmailAlreadyExists) {
		return models.PublicUser{}, ErrEmailAlreadyRegistered.withCause(err)
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("user creation ended with error")
		return models.PublicUser{}, internalError(err)
	}

	log.Info().Str("user_id", created.UserID).Msg("user registered")
	return created.Public(), nil
}

// Login checks the credentials and opens a new session.
//
// Unknown email and wrong password fail with the same error, and an unknown
// email still costs one bcrypt comparison.
func (a *authService) Login(ctx context.Context, request models.LoginRequest) (models.LoginResult, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, request); err != nil {
		return models.LoginResult{}, ErrMissingCredentials.withCause(err)
	}

	user, err := a.users.FindUserByEmail(ctx, normalizeEmail(request.Email))
	if errors.Is(err, store.ErrNoUserWasFound) {
		a.hasher.VerifyDummy(request.Password)
		return models.LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("user search by email failed")
		return models.LoginResult{}, internalError(err)
	}

	if !a.hasher.Verify(request.Password, user.PasswordHash) {
		log.Info().Str("user_id", user.UserID).Msg("wrong password")
		return models.LoginResult{}, ErrInvalidCredentials
	}

	a.upgradePasswordHash(ctx, user, request.Password)

	if a.singleSession {
		if _, err = a.sessions.RevokeUserSessions(ctx, user.UserID); err != nil {
			log.Err(err).Str("func", "*authService.Login").Msg("error revoking previous sessions")
			return models.LoginResult{}, internalError(err)
		}
	}

	pair, err := a.openSession(ctx, user.Identity())
	if err != nil {
		return models.LoginResult{}, err
	}

	return models.LoginResult{User: user.Public(), Tokens: pair}, nil
}

// Refresh exchanges a live refresh token for a new pair. The stored hash is
// replaced only if it still holds the hash of refreshToken.
func (a *authService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	if refreshToken == "" {
		return models.TokenPair{}, ErrRefreshTokenRequired
	}

	claims, session, err := a.liveSession(ctx, refreshToken)
	if err != nil {
		return models.TokenPair{}, err
	}

	access, refresh, err := a.tokens.IssuePair(claims.Identity(), session.SessionID)
	if err != nil {
		log.Err(err).Str("func", "*authService.Refresh").Msg("error issuing tokens")
		return models.TokenPair{}, err
	}

	err = a.sessions.RotateSession(ctx, session.SessionID, session.TokenHash, a.tokens.HashRefreshToken(refresh.String()), refresh.ExpiresAt.Time)
	if errors.Is(err, store.ErrSessionNotFound) {
		// a concurrent refresh or logout got there first
		return models.TokenPair{}, ErrInvalidRefreshToken
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Refresh").Msg("error rotating session")
		return models.TokenPair{}, internalError(err)
	}

	return models.TokenPair{AccessToken: access.String(), RefreshToken: refresh.String()}, nil
}

// Logout revokes the session of refreshToken, which must belong to identity.
func (a *authService) Logout(ctx context.Context, identity models.Identity, refreshToken string) (string, error) {
	log := logger.FromContext(ctx)

	if refreshToken == "" {
		return "", ErrRefreshTokenRequired
	}

	claims, session, err := a.liveSession(ctx, refreshToken)
	if err != nil {
		return "", err
	}
	if claims.UserID != identity.UserID {
		return "", ErrInvalidRefreshToken
	}

	err = a.sessions.RevokeSession(ctx, session.SessionID, session.TokenHash)
	if errors.Is(err, store.ErrSessionNotFound) {
		return "", ErrInvalidRefreshToken
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Logout").Msg("error revoking session")
		return "", internalError(err)
	}

	return fmt.Sprintf("Logged out %s successfully.", identity.Name), nil
}

// LogoutAll revokes every session of identity.
func (a *authService) LogoutAll(ctx context.Context, identity models.Identity) (string, error) {
	log := logger.FromContext(ctx)

	n, err := a.sessions.RevokeUserSessions(ctx, identity.UserID)
	if err != nil {
		log.Err(err).Str("func", "*authService.LogoutAll").Msg("error revoking sessions")
		return "", internalError(err)
	}

	return fmt.Sprintf("Logged out %s from %d session(s).", identity.Name, n), nil
}

// ChangePassword replaces the password of identity after checking the old
// one, then revokes all of the user's sessions.
func (a *authService) ChangePassword(ctx context.Context, identity models.Identity, request models.ChangePasswordRequest) (string, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, request); err != nil {
		return "", validationError(err)
	}

	user, err := a.users.FindUserByID(ctx, identity.UserID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return "", ErrUserNoLongerExists
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.ChangePassword").Msg("user search by id failed")
		return "", internalError(err)
	}

	if !a.hasher.Verify(request.OldPassword, user.PasswordHash) {
		return "", ErrWrongPassword
	}

	passwordHash, err := a.hasher.Hash(request.NewPassword)
	if err != nil {
		log.Err(err).Str("func", "*authService.ChangePassword").Msg("error hashing password")
		return "", internalError(err)
	}

	if err = a.users.UpdatePasswordHash(ctx, user.UserID, passwordHash); err != nil {
		log.Err(err).Str("func", "*authService.ChangePassword").Msg("error storing password hash")
		return "", internalError(err)
	}

	if _, err = a.sessions.RevokeUserSessions(ctx, user.UserID); err != nil {
		log.Err(err).Str("func", "*authService.ChangePassword").Msg("error revoking sessions")
		return "", internalError(err)
	}

	return "Password changed successfully. Please log in again.", nil
}

// Authenticate verifies accessToken and confirms that its owner still
// exists. The returned name is the current username.
func (a *authService) Authenticate(ctx context.Context, accessToken string) (models.Identity, error) {
	log := logger.FromContext(ctx)

	claims, err := a.tokens.Verify(accessToken, models.AccessToken)
	if err != nil {
		return models.Identity{}, err
	}

	user, err := a.users.FindUserByID(ctx, claims.UserID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.Identity{}, ErrUserNoLongerExists
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Authenticate").Msg("user search by id failed")
		return models.Identity{}, internalError(err)
	}

	return user.Identity(), nil
}

// openSession stores a new session for identity and returns its first pair.
func (a *authService) openSession(ctx context.Context, identity models.Identity) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	sessionID := a.sessionIDs.Generate()
	access, refresh, err := a.tokens.IssuePair(identity, sessionID)
	if err != nil {
		log.Err(err).Str("func", "*authService.openSession").Msg("error issuing tokens")
		return models.TokenPair{}, err
	}

	now := a.now()
	session := models.Session{
		SessionID: sessionID,
		UserID:    identity.UserID,
		TokenHash: a.tokens.HashRefreshToken(refresh.String()),
		ExpiresAt: refresh.ExpiresAt.Time.UTC(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = a.sessions.CreateSession(ctx, session); err != nil {
		log.Err(err).Str("func", "*authService.openSession").Msg("error storing session")
		return models.TokenPair{}, internalError(err)
	}

	return models.TokenPair{AccessToken: access.String(), RefreshToken: refresh.String()}, nil
}

// liveSession verifies refreshToken and loads the session it is bound to.
// Any mismatch is reported as ErrInvalidRefreshToken.
func (a *authService) liveSession(ctx context.Context, refreshToken string) (models.Claims, models.Session, error) {
	log := logger.FromContext(ctx)

	claims, err := a.tokens.Verify(refreshToken, models.RefreshToken)
	if err != nil {
		return models.Claims{}, models.Session{}, ErrInvalidRefreshToken.withCause(err)
	}

	session, err := a.sessions.FindSessionByID(ctx, claims.SessionID)
	if errors.Is(err, store.ErrSessionNotFound) {
		return models.Claims{}, models.Session{}, ErrInvalidRefreshToken
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.liveSession").Msg("session search failed")
		return models.Claims{}, models.Session{}, internalError(err)
	}

	switch {
	case session.UserID != claims.UserID,
		!session.IsActive(a.now()),
		!a.tokens.RefreshTokenMatches(refreshToken, session.TokenHash):
		return models.Claims{}, models.Session{}, ErrInvalidRefreshToken
	}

	return claims, session, nil
}

// upgradePasswordHash rehashes the password when the stored hash was made
// with another cost. Failures are logged and otherwise ignored.
func (a *authService) upgradePasswordHash(ctx context.Context, user models.User, password string) {
	if !a.hasher.NeedsRehash(user.PasswordHash) {
		return
	}

	log := logger.FromContext(ctx)

	passwordHash, err := a.hasher.Hash(password)
	if err != nil {
		log.Err(err).Str("func", "*authService.upgradePasswordHash").Msg("error rehashing password")
		return
	}
	if err = a.users.UpdatePasswordHash(ctx, user.UserID, passwordHash); err != nil {
		log.Err(err).Str("func", "*authService.upgradePasswordHash").Msg("error storing rehashed password")
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
