package seed

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/rahulk/studyshare/internal/app/models"
	"github.com/rahulk/studyshare/internal/app/repositories"
	"github.com/rahulk/studyshare/internal/config"
	"github.com/rahulk/studyshare/internal/pkg/auth"
)

// CreateDefaultAdmin creates the initial admin account when no admin exists
// yet. Without it nobody could review contributor applications.
func CreateDefaultAdmin(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	userRepo := repositories.NewUserRepository(dbPool)

	exists, err := userRepo.AdminExists(ctx)
	if err != nil {
		return err
	}
	if exists {
		lgr.Debug().Msg("Admin account already exists, skipping seed")
		return nil
	}

	if cfg.Admin.Password == "" {
		lgr.Warn().Msg("No admin password configured - default admin not created")
		return nil
	}

	hashed, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:       cfg.Admin.Email,
		Password:    hashed,
		DisplayName: cfg.Admin.DisplayName,
		Role:        models.RoleAdmin,
		ShowContact: false,
	}

	id, err := userRepo.Create(ctx, admin)
	if err != nil {
		return err
	}

	lgr.Info().Int64("userID", id).Str("email", cfg.Admin.Email).Msg("Default admin account created")
	return nil
}
