// Package seed holds the idempotent startup bootstrap for the super-admin
// account.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"secalert/internal/auth"
	"secalert/internal/config"
	"secalert/internal/model"
	"secalert/internal/repository"
)

// EnsureSuperAdmin creates the super-admin account if it does not exist.
// It is gated by an existence check and safe to run on every startup.
func EnsureSuperAdmin(ctx context.Context, users repository.UserRepository, hasher *auth.Hasher, cfg *config.Config) error {
	email := strings.ToLower(strings.TrimSpace(cfg.SuperAdminEmail))

	_, err := users.FindByEmail(ctx, email)
	if err == nil {
		log.Printf("seed: super admin account already exists: %s", email)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check super admin existence: %w", err)
	}

	hash, err := hasher.Hash(cfg.SuperAdminPassword)
	if err != nil {
		return err
	}

	user := &model.User{
		Email:           email,
		PasswordHash:    hash,
		FirstName:       cfg.SuperAdminFirstName,
		LastName:        cfg.SuperAdminLastName,
		Role:            model.RoleSuperAdmin,
		IsEmailVerified: true,
		IsActive:        true,
	}
	if err := users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Another instance seeded concurrently.
			return nil
		}
		return fmt.Errorf("create super admin: %w", err)
	}

	log.Printf("seed: super admin account created: %s", email)
	return nil
}
