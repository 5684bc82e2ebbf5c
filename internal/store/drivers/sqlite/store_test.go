package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/Ihsas01/admin-project-management/internal/domain"
	"github.com/Ihsas01/admin-project-management/internal/store"
	"github.com/Ihsas01/admin-project-management/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func testUser(email string) domain.User {
	now := time.Now().UTC()
	return domain.User{
		ID:           idx.New().String(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: "$2a$10$fakefakefakefakefakefakefakefakefakefakefakefakefake",
		Role:         domain.RoleStaff,
		Status:       domain.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func testInvite(email, invitedBy string, expiresAt time.Time) domain.Invite {
	return domain.Invite{
		ID:        idx.New().String(),
		Email:     email,
		Role:      domain.RoleStaff,
		TokenHash: idx.New().String(),
		InvitedBy: invitedBy,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
}

func TestUsersRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	u := testUser("alice@example.com")
	require.NoError(t, s.Users().CreateUser(ctx, u))

	byEmail, err := s.Users().GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)
	require.Equal(t, domain.RoleStaff, byEmail.Role)
	require.Equal(t, domain.StatusActive, byEmail.Status)

	byID, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Email, byID.Email)

	_, err = s.Users().GetUserByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateUserDuplicateEmailConflicts(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Users().CreateUser(ctx, testUser("dup@example.com")))
	err := s.Users().CreateUser(ctx, testUser("dup@example.com"))
	require.ErrorIs(t, err, store.ErrConflict)
}

func TestUpdateUserRoleAndStatus(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	u := testUser("bob@example.com")
	require.NoError(t, s.Users().CreateUser(ctx, u))

	require.NoError(t, s.Users().UpdateUserRole(ctx, u.ID, domain.RoleManager))
	require.NoError(t, s.Users().UpdateUserStatus(ctx, u.ID, domain.StatusInactive))

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleManager, got.Role)
	require.Equal(t, domain.StatusInactive, got.Status)

	require.ErrorIs(t, s.Users().UpdateUserRole(ctx, "missing", domain.RoleStaff), store.ErrNotFound)
}

func TestListUsersPagination(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for i := 0; i < 5; i++ {
		u := testUser(string(rune('a'+i)) + "@example.com")
		require.NoError(t, s.Users().CreateUser(ctx, u))
	}

	count, err := s.Users().CountUsers(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 5, count)

	page, err := s.Users().ListUsers(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)

	rest, err := s.Users().ListUsers(ctx, 10, 4)
	require.NoError(t, err)
	require.Len(t, rest, 1)
}

func TestLiveInviteUniquePerEmail(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	admin := testUser("admin@example.com")
	require.NoError(t, s.Users().CreateUser(ctx, admin))

	expiry := time.Now().UTC().Add(time.Hour)
	first := testInvite("new@example.com", admin.ID, expiry)
	require.NoError(t, s.Invites().CreateInvite(ctx, first))

	// A second live invite for the same email violates the partial unique
	// index, even though the token hash differs.
	err := s.Invites().CreateInvite(ctx, testInvite("new@example.com", admin.ID, expiry))
	require.ErrorIs(t, err, store.ErrConflict)

	// After redemption the slot frees up.
	ok, err := s.Invites().MarkInviteRedeemed(ctx, first.ID, time.Now().UTC())
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, s.Invites().CreateInvite(ctx, testInvite("new@example.com", admin.ID, expiry)))
}

func TestMarkInviteRedeemedIsSingleUse(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	admin := testUser("admin@example.com")
	require.NoError(t, s.Users().CreateUser(ctx, admin))

	inv := testInvite("joiner@example.com", admin.ID, time.Now().UTC().Add(time.Hour))
	require.NoError(t, s.Invites().CreateInvite(ctx, inv))

	got, err := s.Invites().GetUnredeemedInviteByTokenHash(ctx, inv.TokenHash)
	require.NoError(t, err)
	require.Nil(t, got.RedeemedAt)

	ok, err := s.Invites().MarkInviteRedeemed(ctx, inv.ID, time.Now().UTC())
	require.NoError(t, err)
	require.True(t, ok)

	// Second attempt loses.
	ok, err = s.Invites().MarkInviteRedeemed(ctx, inv.ID, time.Now().UTC())
	require.NoError(t, err)
	require.False(t, ok)

	_, err = s.Invites().GetUnredeemedInviteByTokenHash(ctx, inv.TokenHash)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteExpiredInvites(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	admin := testUser("admin@example.com")
	require.NoError(t, s.Users().CreateUser(ctx, admin))

	now := time.Now().UTC()
	expired := testInvite("stale@example.com", admin.ID, now.Add(-time.Hour))
	live := testInvite("fresh@example.com", admin.ID, now.Add(time.Hour))
	require.NoError(t, s.Invites().CreateInvite(ctx, expired))
	require.NoError(t, s.Invites().CreateInvite(ctx, live))

	require.NoError(t, s.Invites().DeleteExpiredInvites(ctx, now))

	_, err := s.Invites().GetUnredeemedInviteByEmail(ctx, "stale@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.Invites().GetUnredeemedInviteByEmail(ctx, "fresh@example.com")
	require.NoError(t, err)
}

func TestProjectsSoftDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	owner := testUser("owner@example.com")
	require.NoError(t, s.Users().CreateUser(ctx, owner))

	now := time.Now().UTC()
	p := domain.Project{
		ID:          idx.New().String(),
		Name:        "Website Redesign",
		Description: "Complete redesign of company website",
		Status:      domain.ProjectActive,
		CreatedBy:   owner.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, s.Projects().CreateProject(ctx, p))

	name := "Website Relaunch"
	status := domain.ProjectArchived
	require.NoError(t, s.Projects().UpdateProject(ctx, p.ID, &name, nil, &status))

	got, err := s.Projects().GetProjectByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "Website Relaunch", got.Name)
	require.Equal(t, domain.ProjectArchived, got.Status)
	require.Equal(t, "Complete redesign of company website", got.Description)

	require.NoError(t, s.Projects().SoftDeleteProject(ctx, p.ID))

	_, err = s.Projects().GetProjectByID(ctx, p.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	listed, err := s.Projects().ListProjects(ctx)
	require.NoError(t, err)
	require.Empty(t, listed)

	require.ErrorIs(t, s.Projects().SoftDeleteProject(ctx, p.ID), store.ErrNotFound)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	u := testUser("tx@example.com")
	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, u); err != nil {
			return err
		}
		return context.Canceled // force rollback
	})
	require.Error(t, err)

	_, err = s.Users().GetUserByEmail(ctx, "tx@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}
