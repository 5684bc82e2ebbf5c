package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Ihsas01/admin-project-management/internal/domain"
	"github.com/Ihsas01/admin-project-management/pkg/cryptox"
	"github.com/Ihsas01/admin-project-management/pkg/idx"
)

// seedAdmin creates the initial ADMIN account when the database is empty and
// seed credentials are configured. Every later account enters through the
// invite flow; this is the only path that creates a user without one.
func (app *Application) seedAdmin(ctx context.Context) error {
	if app.cfg.SeedAdminEmail == "" || app.cfg.SeedAdminPassword == "" {
		return nil
	}

	empty, err := app.db.Users().IsEmpty(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for existing users: %w", err)
	}
	if !empty {
		return nil
	}

	hash, err := cryptox.HashPassword(app.cfg.SeedAdminPassword, app.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed admin password: %w", err)
	}

	now := time.Now().UTC()
	admin := domain.User{
		ID:           idx.New().String(),
		Name:         app.cfg.SeedAdminName,
		Email:        domain.CanonicalEmail(app.cfg.SeedAdminEmail),
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Status:       domain.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := app.db.Users().CreateUser(ctx, admin); err != nil {
		return fmt.Errorf("failed to create seed admin: %w", err)
	}

	app.logger.Info("seed admin created", "user_id", admin.ID, "email", admin.Email)
	return nil
}
