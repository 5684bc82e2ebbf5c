package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role is a closed enumeration. Adding a role means revisiting every
// authorization decision point, so parsing is strict and switches over roles
// must stay exhaustive.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleStaff   Role = "STAFF"
)

// ParseRole validates a raw role string against the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleStaff:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) String() string { return string(r) }

// Status tracks whether an account may authenticate.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// ParseStatus validates a raw status string against the closed set.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusActive, StatusInactive:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown status %q", s)
	}
}

func (s Status) String() string { return string(s) }

type User struct {
	ID           string
	Name         string
	Email        string // canonical form, globally unique
	PasswordHash string // bcrypt encoded, never leaves the service layer
	Role         Role
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the projection safe to return to clients.
type PublicUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Public strips the password hash and other internals from a user record.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}

// CanonicalEmail normalizes an email address for lookup and storage. All
// boundaries (login, invite creation) must canonicalize before touching the
// store so uniqueness holds regardless of caller casing.
func CanonicalEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
