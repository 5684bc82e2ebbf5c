package http

import (
	"errors"
	"net/http"

	"github.com/Ihsas01/admin-project-management/internal/service"
	"github.com/Ihsas01/admin-project-management/pkg/httpx"
	"github.com/Ihsas01/admin-project-management/pkg/slogx"
)

// minPasswordLength is a floor, not a strength policy. Anything shorter is
// rejected before the expensive hash.
const minPasswordLength = 8

type InviteRedeemHandler struct {
	AuthService *service.AuthService
}

type inviteRedeemRequest struct {
	Token    string `json:"token"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (h *InviteRedeemHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req inviteRedeemRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Malformed request body")
		return
	}
	if req.Token == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "token is required")
		return
	}
	if req.Name == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}
	if len(req.Password) < minPasswordLength {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "password must be at least 8 characters")
		return
	}

	res, err := h.AuthService.RedeemInvite(ctx, req.Token, req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInviteNotFound):
			httpx.WriteError(w, http.StatusNotFound, "invite_not_found", "Invite token is invalid or already used")
		case errors.Is(err, service.ErrInviteExpired):
			httpx.WriteError(w, http.StatusBadRequest, "invite_expired", "Invite has expired")
		case errors.Is(err, service.ErrEmailTaken):
			httpx.WriteError(w, http.StatusConflict, "email_taken", "A user with this email already exists")
		default:
			log.Error("failed to redeem invite", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to redeem invite")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, loginResponse{Token: res.Token, User: res.User})
}
