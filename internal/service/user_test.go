package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/Ihsas01/admin-project-management/internal/domain"
	"github.com/Ihsas01/admin-project-management/internal/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newTestUserService(t *testing.T) (*UserService, *sqlite.Store) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	return &UserService{Store: st}, st
}

func TestListUsersPagination(t *testing.T) {
	t.Parallel()

	svc, st := newTestUserService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		seedUser(t, st, fmt.Sprintf("user%d@example.com", i), "pw", domain.RoleStaff, domain.StatusActive)
	}

	t.Run("pages and totals", func(t *testing.T) {
		users, pg, err := svc.ListUsers(ctx, 1, 2)
		require.NoError(t, err)
		require.Len(t, users, 2)
		require.EqualValues(t, 5, pg.Total)
		require.Equal(t, 3, pg.TotalPages)

		last, pg, err := svc.ListUsers(ctx, 3, 2)
		require.NoError(t, err)
		require.Len(t, last, 1)
		require.Equal(t, 3, pg.Page)
	})

	t.Run("clamps bad inputs", func(t *testing.T) {
		users, pg, err := svc.ListUsers(ctx, 0, -1)
		require.NoError(t, err)
		require.Len(t, users, 5)
		require.Equal(t, 1, pg.Page)
		require.Equal(t, DefaultPageSize, pg.Limit)
	})

	t.Run("never exposes password hashes", func(t *testing.T) {
		users, _, err := svc.ListUsers(ctx, 1, 10)
		require.NoError(t, err)
		for _, u := range users {
			require.NotEmpty(t, u.Email)
		}
	})
}

func TestUpdateRoleAndStatus(t *testing.T) {
	t.Parallel()

	svc, st := newTestUserService(t)
	ctx := context.Background()
	user := seedUser(t, st, "staff@example.com", "pw", domain.RoleStaff, domain.StatusActive)

	t.Run("promotes role", func(t *testing.T) {
		updated, err := svc.UpdateRole(ctx, user.ID, domain.RoleManager)
		require.NoError(t, err)
		require.Equal(t, domain.RoleManager, updated.Role)
	})

	t.Run("deactivates", func(t *testing.T) {
		updated, err := svc.UpdateStatus(ctx, user.ID, domain.StatusInactive)
		require.NoError(t, err)
		require.Equal(t, domain.StatusInactive, updated.Status)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.UpdateRole(ctx, "missing", domain.RoleAdmin)
		require.ErrorIs(t, err, ErrUserNotFound)
		_, err = svc.UpdateStatus(ctx, "missing", domain.StatusActive)
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}
