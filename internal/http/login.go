package http

import (
	"errors"
	"net/http"

	"github.com/Ihsas01/admin-project-management/internal/domain"
	"github.com/Ihsas01/admin-project-management/internal/service"
	"github.com/Ihsas01/admin-project-management/pkg/httpx"
	"github.com/Ihsas01/admin-project-management/pkg/slogx"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string            `json:"token"`
	User  domain.PublicUser `json:"user"`
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Malformed request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	res, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
		case errors.Is(err, service.ErrAccountDeactivated):
			httpx.WriteError(w, http.StatusUnauthorized, "account_deactivated", "Account has been deactivated")
		default:
			log.Error("login failed", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to log in")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, loginResponse{Token: res.Token, User: res.User})
}
