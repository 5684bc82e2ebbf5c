package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Ihsas01/admin-project-management/internal/domain"
	"github.com/Ihsas01/admin-project-management/internal/store"
	"github.com/Ihsas01/admin-project-management/pkg/slogx"
)

var ErrUserNotFound = errors.New("user not found")

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// UserService exposes the admin-facing user directory.
type UserService struct {
	Store store.Store
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// ListUsers returns one page of users, newest first. Page numbers are
// 1-based; out-of-range inputs are clamped rather than rejected.
func (s *UserService) ListUsers(ctx context.Context, page, limit int) ([]domain.PublicUser, Pagination, error) {
	log := slogx.FromContext(ctx)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	total, err := s.Store.Users().CountUsers(ctx)
	if err != nil {
		log.Error("failed to count users", slog.Any("error", err))
		return nil, Pagination{}, err
	}

	users, err := s.Store.Users().ListUsers(ctx, limit, (page-1)*limit)
	if err != nil {
		log.Error("failed to list users", slog.Any("error", err))
		return nil, Pagination{}, err
	}

	public := make([]domain.PublicUser, 0, len(users))
	for _, u := range users {
		public = append(public, u.Public())
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return public, Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// GetUser returns a single user by id.
func (s *UserService) GetUser(ctx context.Context, id string) (domain.PublicUser, error) {
	user, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.PublicUser{}, ErrUserNotFound
		}
		slogx.FromContext(ctx).Error("failed to fetch user", slog.Any("error", err))
		return domain.PublicUser{}, err
	}
	return user.Public(), nil
}

// UpdateRole reassigns a user's role. Existing bearer tokens keep their old
// role claim until they expire; the change takes full effect on next login.
func (s *UserService) UpdateRole(ctx context.Context, userID string, role domain.Role) (domain.PublicUser, error) {
	log := slogx.FromContext(ctx)

	if err := s.Store.Users().UpdateUserRole(ctx, userID, role); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.PublicUser{}, ErrUserNotFound
		}
		log.Error("failed to update user role", slog.String("user_id", userID), slog.Any("error", err))
		return domain.PublicUser{}, err
	}

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.PublicUser{}, err
	}

	log.Info("user role updated", slog.String("user_id", userID), slog.String("role", role.String()))
	return user.Public(), nil
}

// UpdateStatus activates or deactivates an account. Deactivation blocks new
// logins immediately; tokens already issued remain valid until expiry.
func (s *UserService) UpdateStatus(ctx context.Context, userID string, status domain.Status) (domain.PublicUser, error) {
	log := slogx.FromContext(ctx)

	if err := s.Store.Users().UpdateUserStatus(ctx, userID, status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.PublicUser{}, ErrUserNotFound
		}
		log.Error("failed to update user status", slog.String("user_id", userID), slog.Any("error", err))
		return domain.PublicUser{}, err
	}

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.PublicUser{}, err
	}

	log.Info("user status updated", slog.String("user_id", userID), slog.String("status", status.String()))
	return user.Public(), nil
}
