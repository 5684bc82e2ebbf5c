package cryptox

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Bounds for the bcrypt cost factor. The digest itself records the cost it
// was produced with, so raising the configured cost never breaks
// verification of previously stored digests.
const (
	MinPasswordCost     = bcrypt.MinCost
	MaxPasswordCost     = bcrypt.MaxCost
	DefaultPasswordCost = 12
)

// ErrPasswordMismatch is returned by VerifyPassword when the plaintext does
// not match the stored digest, or when the digest is malformed. Callers must
// not distinguish the two cases.
var ErrPasswordMismatch = errors.New("cryptox: password does not match")

// HashPassword produces a salted bcrypt digest at the given cost factor.
// The salt is generated internally and encoded into the digest.
func HashPassword(password string, cost int) (string, error) {
	if cost < MinPasswordCost || cost > MaxPasswordCost {
		return "", fmt.Errorf("cryptox: bcrypt cost %d out of range [%d, %d]", cost, MinPasswordCost, MaxPasswordCost)
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("cryptox: failed to hash password: %w", err)
	}
	return string(digest), nil
}

// VerifyPassword compares a plaintext password against a bcrypt digest in
// constant time. A malformed digest verifies as a mismatch rather than an
// error, so untrusted stored values can never panic a login path.
func VerifyPassword(password, digest string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}
