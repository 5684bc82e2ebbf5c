package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Ihsas01/admin-project-management/internal/domain"
	"github.com/Ihsas01/admin-project-management/internal/service"
	"github.com/Ihsas01/admin-project-management/pkg/httpx"
	"github.com/Ihsas01/admin-project-management/pkg/slogx"
)

type UsersHandler struct {
	UserService *service.UserService
}

type listUsersResponse struct {
	Users      []domain.PublicUser `json:"users"`
	Pagination service.Pagination  `json:"pagination"`
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// HandleList serves GET /v1/users with page/limit query parameters.
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	users, pagination, err := h.UserService.ListUsers(ctx, page, limit)
	if err != nil {
		log.Error("failed to list users", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to list users")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, listUsersResponse{Users: users, Pagination: pagination})
}

// HandleGet serves GET /v1/users/{id}.
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := h.UserService.GetUser(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "User not found")
			return
		}
		slogx.FromContext(ctx).Error("failed to fetch user", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to fetch user")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, user)
}

// HandleUpdateRole serves PATCH /v1/users/{id}/role.
func (h *UsersHandler) HandleUpdateRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := r.PathValue("id")

	var req updateRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Malformed request body")
		return
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "role must be one of ADMIN, MANAGER, STAFF")
		return
	}

	user, err := h.UserService.UpdateRole(ctx, userID, role)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "User not found")
			return
		}
		log.Error("failed to update role", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to update role")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, user)
}

// HandleUpdateStatus serves PATCH /v1/users/{id}/status.
func (h *UsersHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := r.PathValue("id")

	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Malformed request body")
		return
	}
	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "status must be ACTIVE or INACTIVE")
		return
	}

	// Self-deactivation would strand the last admin.
	if status == domain.StatusInactive && userID == httpx.UserIDFromContext(ctx) {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Cannot deactivate your own account")
		return
	}

	user, err := h.UserService.UpdateStatus(ctx, userID, status)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "User not found")
			return
		}
		log.Error("failed to update status", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to update status")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, user)
}
