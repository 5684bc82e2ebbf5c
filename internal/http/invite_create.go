package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/Ihsas01/admin-project-management/internal/domain"
	"github.com/Ihsas01/admin-project-management/internal/service"
	"github.com/Ihsas01/admin-project-management/pkg/httpx"
	"github.com/Ihsas01/admin-project-management/pkg/slogx"
)

type InviteCreateHandler struct {
	AuthService *service.AuthService
}

type inviteCreateRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// inviteCreateResponse carries the raw redemption token. It appears in this
// response only; the server keeps just a fingerprint.
type inviteCreateResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *InviteCreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req inviteCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Malformed request body")
		return
	}
	if req.Email == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "email is required")
		return
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "role must be one of ADMIN, MANAGER, STAFF")
		return
	}

	invitedBy := httpx.UserIDFromContext(ctx)

	created, err := h.AuthService.CreateInvite(ctx, req.Email, role, invitedBy)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			httpx.WriteError(w, http.StatusConflict, "email_taken", "A user with this email already exists")
		case errors.Is(err, service.ErrInvitePending):
			httpx.WriteError(w, http.StatusConflict, "invite_pending", "An invite for this email is already pending")
		default:
			log.Error("failed to create invite", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to create invite")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, inviteCreateResponse{
		ID:        created.ID,
		Email:     created.Email,
		Role:      created.Role.String(),
		Token:     created.Token,
		ExpiresAt: created.ExpiresAt,
	})
}
