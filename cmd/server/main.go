package main

import (
	"context"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"secalert/internal/auth"
	"secalert/internal/cache"
	"secalert/internal/config"
	"secalert/internal/db"
	"secalert/internal/email"
	"secalert/internal/handler"
	"secalert/internal/model"
	"secalert/internal/repository"
	"secalert/internal/router"
	"secalert/internal/seed"
	"secalert/internal/service"
)

// @title Security Alert Auth API
// @version 1.0
// @description Authentication and session management API for the security alert dashboard.
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.VerificationToken{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	tokenRepo := repository.NewVerificationTokenRepository(gormDB)

	// Auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	tokenStore := auth.NewTokenStore(cacheClient)
	hasher := auth.NewHasher(cfg.BcryptCost)

	var mailer email.Sender
	if cfg.SMTPHost != "" {
		mailer = email.NewSMTPSender(email.SMTPConfig{
			Host:    cfg.SMTPHost,
			Port:    cfg.SMTPPort,
			User:    cfg.SMTPUser,
			Pass:    cfg.SMTPPass,
			From:    cfg.EmailFrom,
			BaseURL: cfg.AppBaseURL,
		})
	} else {
		log.Println("SMTP_HOST not set, email delivery disabled")
		mailer = email.LogSender{}
	}

	// Services
	verificationService := service.NewVerificationService(tokenRepo, cfg.VerificationTokenTTL, cfg.ResetTokenTTL)
	authService := service.NewAuthService(userRepo, verificationService, jwtService, tokenStore, hasher, mailer)

	// Ensure the super admin exists before serving traffic.
	if err := seed.EnsureSuperAdmin(context.Background(), userRepo, hasher, cfg); err != nil {
		log.Fatalf("super admin seed: %v", err)
	}

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(authService)

	router.Register(e, cfg, authHandler, adminHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
