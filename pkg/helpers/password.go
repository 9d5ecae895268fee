package helpers

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes the plain text password using bcrypt
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword checks plain against a stored hash. Legacy unsalted
// SHA-256 hex digests are still accepted so old accounts can log in once and
// be rehashed.
func CompareHashAndPassword(hash string, plain string) bool {
	if hash == "" {
		return false
	}
	if IsLegacyHash(hash) {
		sum := sha256.Sum256([]byte(plain))
		want := hex.EncodeToString(sum[:])
		return subtle.ConstantTimeCompare([]byte(want), []byte(hash)) == 1
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// IsLegacyHash reports whether hash is a pre-bcrypt SHA-256 hex digest.
func IsLegacyHash(hash string) bool {
	if len(hash) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(hash)
	return err == nil
}
