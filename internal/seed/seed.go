package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atakan/campusadmin/internal/app/models"
	"github.com/atakan/campusadmin/internal/app/repositories"
	"github.com/atakan/campusadmin/internal/config"
	"github.com/atakan/campusadmin/internal/pkg/apperrors"
	"github.com/atakan/campusadmin/internal/pkg/auth"
	"github.com/atakan/campusadmin/internal/pkg/logger"
)

// SeedDefaultAdmin ensures the configured admin account exists.
// It is a no-op when the account is already present or when no
// admin credentials are configured.
func SeedDefaultAdmin(ctx context.Context, pool *pgxpool.Pool, cfg *config.Config) error {
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		logger.Debug().Msg("No admin credentials configured, skipping admin seed")
		return nil
	}

	userRepo := repositories.NewUserRepository(pool)

	_, err := userRepo.GetByEmail(ctx, cfg.Admin.Email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return fmt.Errorf("failed to check admin account: %w", err)
	}

	passwordHash, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Name:         "Administrator",
		Email:        cfg.Admin.Email,
		PasswordHash: passwordHash,
		Role:         models.RoleAdmin,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	logger.Info().Str("email", cfg.Admin.Email).Msg("Default admin account created")
	return nil
}
