package domain

import "time"

// Invite grants the right to create exactly one account with a pre-assigned
// role. Only the SHA-256 fingerprint of the redemption token is stored; the
// raw token is returned once at creation and delivered out of band.
type Invite struct {
	ID         string
	Email      string // canonical target email
	Role       Role   // role the redeemed user receives
	TokenHash  string
	InvitedBy  string // user id of the admin who created it
	ExpiresAt  time.Time
	RedeemedAt *time.Time // nil until redeemed; once set, permanently terminal
	CreatedAt  time.Time
}

// Redeemable reports whether the invite can still be redeemed at the given
// instant. Expiry is evaluated lazily; expired invites are never mutated.
func (i Invite) Redeemable(now time.Time) bool {
	return i.RedeemedAt == nil && now.Before(i.ExpiresAt)
}
