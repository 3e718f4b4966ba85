package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-job-tracker/models"
	"github.com/golang-jwt/jwt/v5"
)

const bearerScheme = "Bearer"

// GenerateJWTToken signs claims with HMAC-SHA256 and returns the compact
// token string.
//
// The issuer, subject and expiry claims and the sign key are required.
//
// Example usage:
//
//	signed, err := utils.GenerateJWTToken(claims, []byte("secret"))
func GenerateJWTToken(claims models.Claims, signKey []byte) (string, error) {
	if claims.Issuer == "" || claims.Subject == "" || claims.ExpiresAt == nil || len(signKey) == 0 {
		return "", errors.New("invalid params for generating JWT Token")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(signKey)
	if err != nil {
		return "", fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return tokenString, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts its claims.
//
// Validation includes:
//   - HS256 as the only accepted algorithm
//   - Signature verification using the provided sign key
//   - Issuer (iss) and audience (aud) claim checks
//   - Expiration (exp) claim presence and check
//   - Subject (sub) presence and agreement with the user_id claim
//
// Example usage:
//
//	claims, err := utils.ValidateAndParseJWTToken(raw, []byte("secret"), "job-tracker", "access")
//	if err != nil {
//	    // handle invalid or expired token
//	}
func ValidateAndParseJWTToken(tokenString string, signKey []byte, issuer, audience string) (*models.Claims, error) {
	claims := &models.Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return signKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return nil, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.Subject == "" || claims.UserID == "" {
		return nil, errors.New("empty subject error")
	}
	if claims.Subject != claims.UserID {
		return nil, errors.New("subject does not match user id")
	}

	return claims, nil
}

// BearerHeader returns the "Authorization" header value carrying token.
func BearerHeader(token string) string {
	return bearerScheme + " " + strings.TrimSpace(token)
}
