package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Ihsas01/admin-project-management/internal/domain"
	"github.com/Ihsas01/admin-project-management/internal/store"
	"github.com/Ihsas01/admin-project-management/pkg/idx"
	"github.com/Ihsas01/admin-project-management/pkg/slogx"
)

var ErrProjectNotFound = errors.New("project not found")

// ProjectService manages the project catalog.
type ProjectService struct {
	Store store.Store
}

// ProjectUpdate carries a partial update; nil fields are left untouched.
type ProjectUpdate struct {
	Name        *string
	Description *string
	Status      *domain.ProjectStatus
}

// CreateProject records a new active project owned by the creating user.
func (s *ProjectService) CreateProject(ctx context.Context, name, description, createdBy string) (domain.Project, error) {
	log := slogx.FromContext(ctx)
	now := time.Now().UTC()

	project := domain.Project{
		ID:          idx.New().String(),
		Name:        name,
		Description: description,
		Status:      domain.ProjectActive,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Store.Projects().CreateProject(ctx, project); err != nil {
		log.Error("failed to create project", slog.Any("error", err))
		return domain.Project{}, err
	}

	log.Info("project created", slog.String("project_id", project.ID), slog.String("created_by", createdBy))
	return project, nil
}

// GetProject returns a project by id.
func (s *ProjectService) GetProject(ctx context.Context, id string) (domain.Project, error) {
	project, err := s.Store.Projects().GetProjectByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Project{}, ErrProjectNotFound
		}
		slogx.FromContext(ctx).Error("failed to fetch project", slog.Any("error", err))
		return domain.Project{}, err
	}
	return project, nil
}

// ListProjects returns all non-deleted projects, newest first.
func (s *ProjectService) ListProjects(ctx context.Context) ([]domain.Project, error) {
	projects, err := s.Store.Projects().ListProjects(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list projects", slog.Any("error", err))
		return nil, err
	}
	return projects, nil
}

// UpdateProject applies a partial update and returns the fresh record.
func (s *ProjectService) UpdateProject(ctx context.Context, id string, upd ProjectUpdate) (domain.Project, error) {
	log := slogx.FromContext(ctx)

	err := s.Store.Projects().UpdateProject(ctx, id, upd.Name, upd.Description, upd.Status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Project{}, ErrProjectNotFound
		}
		log.Error("failed to update project", slog.String("project_id", id), slog.Any("error", err))
		return domain.Project{}, err
	}

	project, err := s.Store.Projects().GetProjectByID(ctx, id)
	if err != nil {
		return domain.Project{}, err
	}

	log.Info("project updated", slog.String("project_id", id))
	return project, nil
}

// DeleteProject soft-deletes a project. The record stays in the database but
// disappears from all reads.
func (s *ProjectService) DeleteProject(ctx context.Context, id string) error {
	log := slogx.FromContext(ctx)

	if err := s.Store.Projects().SoftDeleteProject(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrProjectNotFound
		}
		log.Error("failed to delete project", slog.String("project_id", id), slog.Any("error", err))
		return err
	}

	log.Info("project deleted", slog.String("project_id", id))
	return nil
}
