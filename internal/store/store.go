package store

import (
	"context"
	"errors"
	"time"

	"github.com/Ihsas01/admin-project-management/internal/domain"
)

var (
	ErrNotFound = errors.New("store: not found")
	ErrConflict = errors.New("store: conflict")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. Sub-repositories keep concerns tidy and let services be
// tested against the real driver with an in-memory database.
type Store interface {
	Users() Users
	Invites() Invites
	Projects() Projects

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing when fn returns
	// nil and rolling back otherwise. This is the recommended form for
	// multi-step operations that must be atomic, like invite redemption.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks up a user by canonical email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrConflict when the email is already taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUserRole sets the role and bumps updated_at.
	UpdateUserRole(ctx context.Context, userID string, role domain.Role) error

	// UpdateUserStatus sets the status and bumps updated_at.
	UpdateUserStatus(ctx context.Context, userID string, status domain.Status) error

	// ListUsers returns users ordered by creation date (newest first).
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)

	// CountUsers returns the total number of users, for pagination.
	CountUsers(ctx context.Context) (int64, error)

	// IsEmpty returns true if there are no users (seeding check).
	IsEmpty(ctx context.Context) (bool, error)
}

type Invites interface {
	// CreateInvite writes a new invite (token_hash is the SHA-256
	// fingerprint of the opaque redemption token). Returns ErrConflict when
	// an unredeemed invite already exists for the email; the partial unique
	// index makes this race-safe against concurrent creation.
	CreateInvite(ctx context.Context, inv domain.Invite) error

	// GetUnredeemedInviteByEmail returns the live invite for an email, if
	// any. Expired invites still match; expiry is the caller's policy.
	GetUnredeemedInviteByEmail(ctx context.Context, email string) (domain.Invite, error)

	// GetUnredeemedInviteByTokenHash returns an unredeemed invite by
	// fingerprint regardless of expiry, so redemption can distinguish
	// not-found from expired.
	GetUnredeemedInviteByTokenHash(ctx context.Context, hash string) (domain.Invite, error)

	// MarkInviteRedeemed sets redeemed_at only if it is still null. Returns
	// false when the invite was already redeemed, so two concurrent
	// redemptions resolve to exactly one winner.
	MarkInviteRedeemed(ctx context.Context, inviteID string, at time.Time) (bool, error)

	// DeleteRedeemedInvitesBefore removes terminal invites redeemed before
	// the cutoff (housekeeping).
	DeleteRedeemedInvitesBefore(ctx context.Context, cutoff time.Time) error

	// DeleteExpiredInvites removes unredeemed invites whose expiry has
	// passed (housekeeping; only run when re-invite after expiry is
	// allowed, since deleting unblocks a new invite for the email).
	DeleteExpiredInvites(ctx context.Context, now time.Time) error
}

type Projects interface {
	// CreateProject inserts a new project.
	CreateProject(ctx context.Context, p domain.Project) error

	// GetProjectByID returns a project by id; soft-deleted projects report
	// ErrNotFound.
	GetProjectByID(ctx context.Context, id string) (domain.Project, error)

	// ListProjects returns non-deleted projects ordered by creation date
	// (newest first).
	ListProjects(ctx context.Context) ([]domain.Project, error)

	// UpdateProject applies the non-nil fields and bumps updated_at.
	UpdateProject(ctx context.Context, id string, name, description *string, status *domain.ProjectStatus) error

	// SoftDeleteProject flags the project deleted; it never hard-deletes.
	SoftDeleteProject(ctx context.Context, id string) error
}
