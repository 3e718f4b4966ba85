package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClass distinguishes access tokens from refresh tokens. Each class has
// its own signing key and lifetime, and is carried in the "aud" claim.
type TokenClass string

const (
	AccessToken  TokenClass = "access"
	RefreshToken TokenClass = "refresh"
)

// String implements [fmt.Stringer].
func (c TokenClass) String() string {
	return string(c)
}

// Claims is the payload of every issued JWT.
//
// UserID and Name identify the token owner. SessionID is set on refresh
// tokens only and binds the token to a stored [Session]. The embedded
// [jwt.RegisteredClaims] carry iss, sub, aud (token class), iat, exp and a
// random jti so two tokens minted in the same second still differ.
type Claims struct {
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	SessionID string `json:"sid,omitempty"`

	jwt.RegisteredClaims
}

// Identity returns the owner of the token.
func (c Claims) Identity() Identity {
	return Identity{UserID: c.UserID, Name: c.Name}
}

// Token wraps a signed JWT together with the claims it was built from.
type Token struct {
	Claims

	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}

// TokenPair is an access token issued together with its refresh token.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
