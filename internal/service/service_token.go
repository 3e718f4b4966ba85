package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-job-tracker/internal/config"
	"github.com/MKhiriev/go-job-tracker/internal/utils"
	"github.com/MKhiriev/go-job-tracker/models"
)

// tokenService signs tokens of both classes with the keys and lifetimes of
// an immutable config.Tokens.
type tokenService struct {
	cfg config.Tokens
	ids *utils.UUIDGenerator
	now func() time.Time
}

func NewTokenService(cfg config.Tokens) TokenService {
	return &tokenService{
		cfg: cfg,
		ids: utils.NewUUIDGenerator(),
		now: time.Now,
	}
}

func (s *tokenService) IssueAccess(identity models.Identity) (models.Token, error) {
	return s.issue(identity, models.AccessToken, "")
}

func (s *tokenService) IssueRefresh(identity models.Identity, sessionID string) (models.Token, error) {
	return s.issue(identity, models.RefreshToken, sessionID)
}

func (s *tokenService) IssuePair(identity models.Identity, sessionID string) (models.Token, models.Token, error) {
	access, err := s.IssueAccess(identity)
	if err != nil {
		return models.Token{}, models.Token{}, err
	}

	refresh, err := s.IssueRefresh(identity, sessionID)
	if err != nil {
		return models.Token{}, models.Token{}, err
	}

	return access, refresh, nil
}

func (s *tokenService) issue(identity models.Identity, class models.TokenClass, sessionID string) (models.Token, error) {
	key, lifetime := s.classSettings(class)
	now := s.now()

	claims := models.Claims{
		UserID:    identity.UserID,
		Name:      identity.Name,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Subject:   identity.UserID,
			Audience:  jwt.ClaimStrings{class.String()},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			ID:        s.ids.Generate(),
		},
	}

	signed, err := utils.GenerateJWTToken(claims, key)
	if err != nil {
		return models.Token{}, ErrTokenCreationFailed.withCause(fmt.Errorf("%s token: %w", class, err))
	}

	return models.Token{Claims: claims, SignedString: signed}, nil
}

func (s *tokenService) Verify(token string, class models.TokenClass) (models.Claims, error) {
	if token == "" {
		return models.Claims{}, ErrTokenIsExpiredOrInvalid
	}

	key, _ := s.classSettings(class)
	claims, err := utils.ValidateAndParseJWTToken(token, key, s.cfg.Issuer, class.String())
	if err != nil {
		return models.Claims{}, ErrTokenIsExpiredOrInvalid.withCause(err)
	}

	// only refresh tokens are bound to a session
	if (class == models.RefreshToken) != (claims.SessionID != "") {
		return models.Claims{}, ErrTokenIsExpiredOrInvalid
	}

	return *claims, nil
}

func (s *tokenService) HashRefreshToken(token string) string {
	return utils.HashString(token, s.cfg.RefreshHashKey)
}

func (s *tokenService) RefreshTokenMatches(token, tokenHash string) bool {
	return utils.HashMatches(token, tokenHash, s.cfg.RefreshHashKey)
}

func (s *tokenService) classSettings(class models.TokenClass) ([]byte, time.Duration) {
	if class == models.RefreshToken {
		return s.cfg.RefreshSignKey, s.cfg.RefreshDuration
	}
	return s.cfg.AccessSignKey, s.cfg.AccessDuration
}
