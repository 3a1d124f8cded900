package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, stored string) bool
}

// BcryptHasher produces salted adaptive bcrypt digests for new passwords.
// Verify additionally accepts the unsalted SHA-256 hex digests written by
// the previous deployment, so accounts migrated from it keep working; those
// records are upgraded to bcrypt the next time the hash is rewritten.
type BcryptHasher struct {
	Cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{Cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

func (h *BcryptHasher) Verify(password, stored string) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return verifyLegacy(password, stored)
}

// LegacyDigest returns the unsalted SHA-256 hex digest used by the old
// deployments. Kept only so migrated fixtures and tests can produce the
// stored form; new hashes always go through bcrypt.
func LegacyDigest(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func verifyLegacy(password, stored string) bool {
	if len(stored) != sha256.Size*2 {
		return false
	}
	digest := LegacyDigest(password)
	return subtle.ConstantTimeCompare([]byte(digest), []byte(stored)) == 1
}
