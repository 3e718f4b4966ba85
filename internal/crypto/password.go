// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// ErrHashingPassword wraps failures of the underlying hash function.
var ErrHashingPassword = errors.New("error hashing password")

const dummyPassword = "job-tracker-dummy-password"

// bcryptHasher is the private implementation of [PasswordHasher].
type bcryptHasher struct {
	cost int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewBcryptHasher constructs a [PasswordHasher] with the given bcrypt cost.
// Costs outside bcrypt's supported range fall back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

// Hash implements [PasswordHasher]. The salt is generated by bcrypt and
// encoded into the returned hash.
func (h *bcryptHasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHashingPassword, err)
	}
	return string(hash), nil
}

// Verify implements [PasswordHasher].
func (h *bcryptHasher) Verify(plaintext, storedHash string) bool {
	if storedHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plaintext)) == nil
}

// NeedsRehash implements [PasswordHasher]. Malformed hashes always need a
// rehash.
func (h *bcryptHasher) NeedsRehash(storedHash string) bool {
	cost, err := bcrypt.Cost([]byte(storedHash))
	if err != nil {
		return true
	}
	return cost != h.cost
}

// VerifyDummy implements [PasswordHasher]. The dummy hash is computed once,
// on first use, with the configured cost.
func (h *bcryptHasher) VerifyDummy(plaintext string) {
	h.dummyOnce.Do(func() {
		h.dummyHash, _ = bcrypt.GenerateFromPassword([]byte(dummyPassword), h.cost)
	})
	_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte(plaintext))
}
