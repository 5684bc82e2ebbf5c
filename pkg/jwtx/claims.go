package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL is the default lifetime for access tokens. There is
// no refresh flow and no revocation list, so the expiry horizon is the only
// bound on a token's trust window.
const DefaultAccessTokenTTL = 24 * time.Hour

// Claims are the access-token claims shared across the service. The token is
// self-contained: middleware trusts email and role as embedded at issuance
// and never re-fetches the live user record.
type Claims struct {
	jwt.RegisteredClaims

	// Email of the authenticated user, canonicalized at issuance.
	Email string `json:"email,omitempty"`

	// Role name (ADMIN, MANAGER, STAFF) used for authorization decisions.
	Role string `json:"role,omitempty"`
}

// NewAccessClaims builds minimally-correct claims for a user.
func NewAccessClaims(subject, email, role, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
		Role:  role,
	}
}

// ValidateIssuer checks the issuer against an expected value. An empty
// expectation enforces nothing.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't used
// before it becomes valid (nbf).
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}
	return nil
}
