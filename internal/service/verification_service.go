package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "secalert/internal/errors"
	"secalert/internal/model"
	"secalert/internal/repository"
)

const verificationTokenBytes = 32

// VerificationService manages the lifecycle of single-use verification
// artifacts (email verification and password reset tokens).
type VerificationService interface {
	// Issue generates a fresh token for the user and purpose, superseding
	// any prior unconsumed token of the same purpose.
	Issue(ctx context.Context, userID uuid.UUID, purpose model.TokenPurpose) (*model.VerificationToken, error)
	// Consume validates and atomically consumes a token, returning the
	// owning user id. Absent, expired, wrong-purpose and already-used
	// tokens all fail with ErrInvalidOrExpiredToken.
	Consume(ctx context.Context, token string, purpose model.TokenPurpose) (uuid.UUID, error)
}

type verificationService struct {
	tokens          repository.VerificationTokenRepository
	verificationTTL time.Duration
	resetTTL        time.Duration
}

// NewVerificationService creates a verification service with per-purpose
// token lifetimes.
func NewVerificationService(tokens repository.VerificationTokenRepository, verificationTTL, resetTTL time.Duration) VerificationService {
	return &verificationService{
		tokens:          tokens,
		verificationTTL: verificationTTL,
		resetTTL:        resetTTL,
	}
}

func (s *verificationService) Issue(ctx context.Context, userID uuid.UUID, purpose model.TokenPurpose) (*model.VerificationToken, error) {
	value, err := generateTokenValue()
	if err != nil {
		return nil, fmt.Errorf("generate verification token: %w", err)
	}

	if err := s.tokens.DeleteUnconsumed(ctx, userID, purpose); err != nil {
		return nil, fmt.Errorf("supersede verification tokens: %w", err)
	}

	record := &model.VerificationToken{
		Token:     value,
		UserID:    userID,
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(s.ttl(purpose)),
	}
	if err := s.tokens.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("store verification token: %w", err)
	}
	return record, nil
}

func (s *verificationService) Consume(ctx context.Context, token string, purpose model.TokenPurpose) (uuid.UUID, error) {
	record, err := s.tokens.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, apperrors.ErrInvalidOrExpiredToken
		}
		return uuid.Nil, fmt.Errorf("look up verification token: %w", err)
	}

	if record.Purpose != purpose {
		return uuid.Nil, apperrors.ErrInvalidOrExpiredToken
	}
	if time.Now().After(record.ExpiresAt) {
		return uuid.Nil, apperrors.ErrInvalidOrExpiredToken
	}

	// Conditional update so two concurrent consumers cannot both succeed.
	consumed, err := s.tokens.ConsumeIfUnconsumed(ctx, token)
	if err != nil {
		return uuid.Nil, fmt.Errorf("consume verification token: %w", err)
	}
	if !consumed {
		return uuid.Nil, apperrors.ErrInvalidOrExpiredToken
	}
	return record.UserID, nil
}

func (s *verificationService) ttl(purpose model.TokenPurpose) time.Duration {
	if purpose == model.PurposePasswordReset {
		return s.resetTTL
	}
	return s.verificationTTL
}

func generateTokenValue() (string, error) {
	buf := make([]byte, verificationTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
