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

type ProjectsHandler struct {
	ProjectService *service.ProjectService
}

type createProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type updateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

type projectResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Status      domain.ProjectStatus `json:"status"`
	CreatedBy   string               `json:"created_by"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

func toProjectResponse(p domain.Project) projectResponse {
	return projectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// HandleCreate serves POST /v1/projects.
func (h *ProjectsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req createProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Malformed request body")
		return
	}
	if req.Name == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	project, err := h.ProjectService.CreateProject(ctx, req.Name, req.Description, httpx.UserIDFromContext(ctx))
	if err != nil {
		log.Error("failed to create project", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to create project")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toProjectResponse(project))
}

// HandleList serves GET /v1/projects.
func (h *ProjectsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	projects, err := h.ProjectService.ListProjects(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list projects", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to list projects")
		return
	}

	out := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProjectResponse(p))
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"projects": out})
}

// HandleGet serves GET /v1/projects/{id}.
func (h *ProjectsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	project, err := h.ProjectService.GetProject(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "Project not found")
			return
		}
		slogx.FromContext(ctx).Error("failed to fetch project", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to fetch project")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toProjectResponse(project))
}

// HandleUpdate serves PATCH /v1/projects/{id}.
func (h *ProjectsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req updateProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Malformed request body")
		return
	}

	upd := service.ProjectUpdate{Name: req.Name, Description: req.Description}
	if req.Status != nil {
		status, err := domain.ParseProjectStatus(*req.Status)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "status must be ACTIVE or ARCHIVED")
			return
		}
		upd.Status = &status
	}

	project, err := h.ProjectService.UpdateProject(ctx, r.PathValue("id"), upd)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "Project not found")
			return
		}
		log.Error("failed to update project", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to update project")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toProjectResponse(project))
}

// HandleDelete serves DELETE /v1/projects/{id}.
func (h *ProjectsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.ProjectService.DeleteProject(ctx, r.PathValue("id")); err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "Project not found")
			return
		}
		slogx.FromContext(ctx).Error("failed to delete project", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to delete project")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
