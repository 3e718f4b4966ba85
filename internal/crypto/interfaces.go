package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher turns plaintext passwords into salted one-way hashes and
// checks plaintexts against stored hashes. It knows nothing about users,
// storage or transport.
type PasswordHasher interface {
	// Hash returns a new salted hash of plaintext. Two calls with the same
	// plaintext return different hashes.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches storedHash. It never panics
	// and returns false for malformed hashes.
	Verify(plaintext, storedHash string) bool

	// NeedsRehash reports whether storedHash was produced with settings
	// other than the current ones.
	NeedsRehash(storedHash string) bool

	// VerifyDummy spends the same time as a failed Verify. Callers use it
	// when there is no stored hash to compare against, so response timing
	// does not reveal whether an account exists.
	VerifyDummy(plaintext string)
}
