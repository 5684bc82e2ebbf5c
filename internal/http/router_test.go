package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Ihsas01/admin-project-management/internal/domain"
	"github.com/Ihsas01/admin-project-management/internal/service"
	"github.com/Ihsas01/admin-project-management/internal/store/drivers/sqlite"
	"github.com/Ihsas01/admin-project-management/pkg/cryptox"
	"github.com/Ihsas01/admin-project-management/pkg/idx"
	"github.com/Ihsas01/admin-project-management/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *Router {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.NewHS256([]byte("test-secret"), "test-issuer")
	require.NoError(t, err)

	authSvc := &service.AuthService{
		Store:     st,
		Signer:    signer,
		Issuer:    "test-issuer",
		TokenTTL:  time.Hour,
		InviteTTL: 24 * time.Hour,
		HashCost:  cryptox.MinPasswordCost,
	}

	r := NewRouter(signer, "test", st, slog.New(slog.DiscardHandler))
	r.AuthService = authSvc
	r.UserService = &service.UserService{Store: st}
	r.ProjectService = &service.ProjectService{Store: st}
	r.ApplyRoutes()

	seedRouterUser(t, r, "admin@example.com", "admin-password", domain.RoleAdmin)
	seedRouterUser(t, r, "staff@example.com", "staff-password", domain.RoleStaff)
	return r
}

func seedRouterUser(t *testing.T, r *Router, email, password string, role domain.Role) {
	t.Helper()

	hash, err := cryptox.HashPassword(password, cryptox.MinPasswordCost)
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, r.store.Users().CreateUser(context.Background(), domain.User{
		ID:           idx.New().String(),
		Name:         "Seed",
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Status:       domain.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}))
}

func doJSON(t *testing.T, r *Router, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, r *Router, email, password string) string {
	t.Helper()

	rec := doJSON(t, r, http.MethodPost, "/v1/auth/login", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res loginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotEmpty(t, res.Token)
	return res.Token
}

func TestLoginEndpoint(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)

	t.Run("success", func(t *testing.T) {
		login(t, r, "admin@example.com", "admin-password")
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/v1/auth/login", "", map[string]string{
			"email": "admin@example.com", "password": "nope",
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "invalid_credentials")
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/v1/auth/login", "", map[string]string{})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestInviteLifecycleEndToEnd(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)
	adminToken := login(t, r, "admin@example.com", "admin-password")

	// Admin mints an invite.
	rec := doJSON(t, r, http.MethodPost, "/v1/auth/invites", adminToken, map[string]string{
		"email": "new.manager@example.com", "role": "MANAGER",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var invite inviteCreateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &invite))
	require.NotEmpty(t, invite.Token)

	// The invitee registers with the raw token.
	rec = doJSON(t, r, http.MethodPost, "/v1/auth/register", "", map[string]string{
		"token": invite.Token, "name": "New Manager", "password": "long-enough-pw",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var registered loginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))
	require.Equal(t, domain.RoleManager, registered.User.Role)

	// The token cannot be redeemed twice.
	rec = doJSON(t, r, http.MethodPost, "/v1/auth/register", "", map[string]string{
		"token": invite.Token, "name": "Imposter", "password": "long-enough-pw",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)

	// The new credentials log in normally.
	login(t, r, "new.manager@example.com", "long-enough-pw")

	// A second invite for a now-existing user conflicts.
	rec = doJSON(t, r, http.MethodPost, "/v1/auth/invites", adminToken, map[string]string{
		"email": "new.manager@example.com", "role": "STAFF",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "email_taken")
}

func TestInviteAuthorization(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)
	staffToken := login(t, r, "staff@example.com", "staff-password")

	t.Run("unauthenticated", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/v1/auth/invites", "", map[string]string{
			"email": "x@example.com", "role": "STAFF",
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("staff is forbidden", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/v1/auth/invites", staffToken, map[string]string{
			"email": "x@example.com", "role": "STAFF",
		})
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("invalid role rejected", func(t *testing.T) {
		adminToken := login(t, r, "admin@example.com", "admin-password")
		rec := doJSON(t, r, http.MethodPost, "/v1/auth/invites", adminToken, map[string]string{
			"email": "x@example.com", "role": "SUPERUSER",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUserManagementEndpoints(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)
	adminToken := login(t, r, "admin@example.com", "admin-password")
	staffToken := login(t, r, "staff@example.com", "staff-password")

	t.Run("admin lists users", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/v1/users", adminToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var res listUsersResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		require.Len(t, res.Users, 2)
		require.EqualValues(t, 2, res.Pagination.Total)
	})

	t.Run("admin fetches single user", func(t *testing.T) {
		staff, err := r.store.Users().GetUserByEmail(context.Background(), "staff@example.com")
		require.NoError(t, err)

		rec := doJSON(t, r, http.MethodGet, "/v1/users/"+staff.ID, adminToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "staff@example.com")
		require.NotContains(t, rec.Body.String(), staff.PasswordHash)
	})

	t.Run("staff cannot list users", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/v1/users", staffToken, nil)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("role and status updates", func(t *testing.T) {
		staff, err := r.store.Users().GetUserByEmail(context.Background(), "staff@example.com")
		require.NoError(t, err)

		rec := doJSON(t, r, http.MethodPatch, "/v1/users/"+staff.ID+"/role", adminToken, map[string]string{"role": "MANAGER"})
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doJSON(t, r, http.MethodPatch, "/v1/users/"+staff.ID+"/status", adminToken, map[string]string{"status": "INACTIVE"})
		require.Equal(t, http.StatusOK, rec.Code)

		// A deactivated user can no longer log in.
		rec = doJSON(t, r, http.MethodPost, "/v1/auth/login", "", map[string]string{
			"email": "staff@example.com", "password": "staff-password",
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "account_deactivated")
	})

	t.Run("admin cannot deactivate self", func(t *testing.T) {
		admin, err := r.store.Users().GetUserByEmail(context.Background(), "admin@example.com")
		require.NoError(t, err)

		rec := doJSON(t, r, http.MethodPatch, "/v1/users/"+admin.ID+"/status", adminToken, map[string]string{"status": "INACTIVE"})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPatch, "/v1/users/missing/role", adminToken, map[string]string{"role": "ADMIN"})
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestProjectEndpoints(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)
	adminToken := login(t, r, "admin@example.com", "admin-password")
	staffToken := login(t, r, "staff@example.com", "staff-password")

	rec := doJSON(t, r, http.MethodPost, "/v1/projects", adminToken, map[string]string{
		"name": "Rollout", "description": "Q4 rollout",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created projectResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	t.Run("staff can read but not write", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/v1/projects", staffToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doJSON(t, r, http.MethodPost, "/v1/projects", staffToken, map[string]string{"name": "Nope"})
		require.Equal(t, http.StatusForbidden, rec.Code)

		rec = doJSON(t, r, http.MethodDelete, "/v1/projects/"+created.ID, staffToken, nil)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("update and archive", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPatch, "/v1/projects/"+created.ID, adminToken, map[string]string{"status": "ARCHIVED"})
		require.Equal(t, http.StatusOK, rec.Code)

		var updated projectResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
		require.Equal(t, domain.ProjectArchived, updated.Status)
	})

	t.Run("delete hides project", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodDelete, "/v1/projects/"+created.ID, adminToken, nil)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = doJSON(t, r, http.MethodGet, "/v1/projects/"+created.ID, adminToken, nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/livez", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"ok"`)

	rec = doJSON(t, r, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"database":"ok"`)
}
