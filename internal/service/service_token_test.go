package service

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-job-tracker/internal/config"
	"github.com/MKhiriev/go-job-tracker/models"
)

var alice = models.Identity{UserID: "0190b3c4-0000-7000-8000-000000000001", Name: "alice"}

func testTokens() config.Tokens {
	return config.Tokens{
		Issuer:          "go-job-tracker",
		AccessSignKey:   []byte("access-secret"),
		RefreshSignKey:  []byte("refresh-secret"),
		AccessDuration:  15 * time.Minute,
		RefreshDuration: 24 * time.Hour,
		RefreshHashKey:  "refresh-hash-key",
	}
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := NewTokenService(testTokens())

	access, refresh, err := svc.IssuePair(alice, "session-1")
	require.NoError(t, err)
	require.NotEqual(t, access.String(), refresh.String())

	claims, err := svc.Verify(access.String(), models.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, alice, claims.Identity())
	assert.Empty(t, claims.SessionID)
	assert.Equal(t, alice.UserID, claims.Subject)
	assert.Equal(t, jwt.ClaimStrings{"access"}, claims.Audience)

	claims, err = svc.Verify(refresh.String(), models.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, alice, claims.Identity())
	assert.Equal(t, "session-1", claims.SessionID)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenService_CrossClassVerificationFails(t *testing.T) {
	svc := NewTokenService(testTokens())

	access, refresh, err := svc.IssuePair(alice, "session-1")
	require.NoError(t, err)

	_, err = svc.Verify(access.String(), models.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Verify(refresh.String(), models.AccessToken)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestTokenService_SameKeysStillSeparateClasses(t *testing.T) {
	cfg := testTokens()
	cfg.RefreshSignKey = cfg.AccessSignKey
	svc := NewTokenService(cfg)

	access, err := svc.IssueAccess(alice)
	require.NoError(t, err)

	_, err = svc.Verify(access.String(), models.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid, "audience must differ even when keys are shared")
}

func TestTokenService_TokensMintedTogetherDiffer(t *testing.T) {
	svc := NewTokenService(testTokens())

	first, err := svc.IssueAccess(alice)
	require.NoError(t, err)
	second, err := svc.IssueAccess(alice)
	require.NoError(t, err)

	assert.NotEqual(t, first.String(), second.String())
	assert.NotEqual(t, first.ID, second.ID)
}

func TestTokenService_Expired(t *testing.T) {
	svc := NewTokenService(testTokens()).(*tokenService)
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }

	access, err := svc.IssueAccess(alice)
	require.NoError(t, err)

	_, err = svc.Verify(access.String(), models.AccessToken)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestTokenService_TamperedClaims(t *testing.T) {
	svc := NewTokenService(testTokens())

	access, err := svc.IssueAccess(alice)
	require.NoError(t, err)

	parts := strings.Split(access.String(), ".")
	require.Len(t, parts, 3)
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	forged := strings.Replace(string(payload), `"name":"alice"`, `"name":"mallory"`, 1)
	require.NotEqual(t, string(payload), forged)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(forged))

	_, err = svc.Verify(strings.Join(parts, "."), models.AccessToken)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestTokenService_RejectsForeignTokens(t *testing.T) {
	cfg := testTokens()
	svc := NewTokenService(cfg)

	claims := models.Claims{
		UserID: alice.UserID,
		Name:   alice.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   alice.UserID,
			Audience:  jwt.ClaimStrings{"access"},
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(cfg.AccessSignKey)
	require.NoError(t, err)

	otherIssuer := cfg
	otherIssuer.Issuer = "someone-else"
	foreign, err := NewTokenService(otherIssuer).IssueAccess(alice)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"empty":        "",
		"garbage":      "not.a.jwt",
		"alg none":     none,
		"alg HS512":    hs512,
		"other issuer": foreign.String(),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Verify(token, models.AccessToken)
			assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
		})
	}
}

func TestTokenService_RefreshTokenHash(t *testing.T) {
	svc := NewTokenService(testTokens())

	hash := svc.HashRefreshToken("token")
	assert.Len(t, hash, 64)
	assert.NotContains(t, hash, "token")
	assert.True(t, svc.RefreshTokenMatches("token", hash))
	assert.False(t, svc.RefreshTokenMatches("other", hash))
	assert.False(t, svc.RefreshTokenMatches("token", "zz"))
}

func TestTokenService_IssueWithoutKeyFails(t *testing.T) {
	cfg := testTokens()
	cfg.AccessSignKey = nil

	_, err := NewTokenService(cfg).IssueAccess(alice)
	assert.ErrorIs(t, err, ErrTokenCreationFailed)
	assert.ErrorIs(t, err, ErrInternal)
}
