package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HashString computes an HMAC-SHA256 signature over the given string
// using the provided hash key and returns the result as a hex-encoded string.
//
// Refresh tokens are stored only in this form.
//
// Example usage:
//
//	tokenHash := utils.HashString(refreshToken, "my-secret-key")
func HashString(data string, hashKey string) string {
	return hex.EncodeToString(hashString([]byte(data), hashKey))
}

// HashMatches reports whether data hashes to the hex digest expected.
// The comparison is constant time.
func HashMatches(data, expected, hashKey string) bool {
	want, err := hex.DecodeString(expected)
	if err != nil {
		return false
	}
	return hmac.Equal(hashString([]byte(data), hashKey), want)
}

// hashString computes an HMAC-SHA256 digest over the given byte slice
// using the provided hash key. A new HMAC instance is created on each call.
func hashString(data []byte, hashKey string) []byte {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write(data)
	return hasher.Sum(nil)
}
