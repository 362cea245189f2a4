// Command seed runs the super-admin bootstrap once and exits. The server
// runs the same routine on startup, this tool exists for provisioning a
// database ahead of the first deploy.
package main

import (
	"context"
	"log"

	"secalert/internal/auth"
	"secalert/internal/config"
	"secalert/internal/db"
	"secalert/internal/model"
	"secalert/internal/repository"
	"secalert/internal/seed"
)

func main() {
	log.Println("Starting seed...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.VerificationToken{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(gormDB)
	hasher := auth.NewHasher(cfg.BcryptCost)

	if err := seed.EnsureSuperAdmin(context.Background(), userRepo, hasher, cfg); err != nil {
		log.Fatalf("Failed to seed super admin: %v", err)
	}

	log.Println("Seed completed")
}
