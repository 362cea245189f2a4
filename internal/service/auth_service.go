package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"secalert/internal/auth"
	"secalert/internal/authz"
	"secalert/internal/email"
	apperrors "secalert/internal/errors"
	"secalert/internal/model"
	"secalert/internal/repository"
)

const minPasswordLength = 8

// RegisterInput carries the fields of a registration request. Any role the
// transport layer may have parsed is deliberately absent: the public path
// always yields a plain user, and the elevated path assigns the role
// server-side after the policy check.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// TokenPair is an access/refresh token pair minted for a session.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthService orchestrates registration, login, session issuance and the
// email-verification and password-reset flows.
type AuthService interface {
	// Register creates a plain user account and returns it along with an
	// initial session pair.
	Register(ctx context.Context, input RegisterInput) (*model.User, *TokenPair, error)
	Login(ctx context.Context, email, password string) (*TokenPair, *model.User, error)
	VerifyEmail(ctx context.Context, token string) error
	// ResendVerification reissues the verification artifact. It reports
	// alreadyVerified=true (with no error) when the account needs no
	// verification, so the handler can return a success-shaped message.
	ResendVerification(ctx context.Context, email string) (alreadyVerified bool, err error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	// CreateElevated registers an account with the target role on behalf of
	// the caller, subject to the role-escalation policy.
	CreateElevated(ctx context.Context, callerRole model.Role, target model.Role, input RegisterInput) (*model.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type authService struct {
	users        repository.UserRepository
	verification VerificationService
	jwtService   *auth.JWTService
	tokenStore   auth.TokenStoreInterface
	hasher       *auth.Hasher
	mailer       email.Sender
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	users repository.UserRepository,
	verification VerificationService,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	hasher *auth.Hasher,
	mailer email.Sender,
) AuthService {
	return &authService{
		users:        users,
		verification: verification,
		jwtService:   jwtService,
		tokenStore:   tokenStore,
		hasher:       hasher,
		mailer:       mailer,
	}
}

// Register creates a plain user account, issues a verification email and
// mints an initial token pair.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*model.User, *TokenPair, error) {
	user, err := s.register(ctx, input, model.RoleUser)
	if err != nil {
		return nil, nil, err
	}
	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// CreateElevated registers an admin or police account after checking the
// caller's role against the escalation policy. The role on the created
// account is always the target role, regardless of anything the caller
// supplied in the request body.
func (s *authService) CreateElevated(ctx context.Context, callerRole model.Role, target model.Role, input RegisterInput) (*model.User, error) {
	if !authz.CanCreateRole(callerRole, target) {
		return nil, apperrors.ErrForbidden
	}
	return s.register(ctx, input, target)
}

func (s *authService) register(ctx context.Context, input RegisterInput, role model.Role) (*model.User, error) {
	emailAddr := normalizeEmail(input.Email)
	if len(input.Password) < minPasswordLength {
		return nil, apperrors.ErrWeakPassword
	}

	existing, err := s.users.FindByEmail(ctx, emailAddr)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        emailAddr,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Role:         role,
		IsActive:     true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.issueVerification(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates a user and returns a fresh token pair.
func (s *authService) Login(ctx context.Context, emailAddr, password string) (*TokenPair, *model.User, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same error as a wrong password so accounts cannot be enumerated.
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("look up user: %w", err)
	}

	if err := s.hasher.Verify(password, user.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		// Malformed stored digest: keep the generic message outward but
		// preserve the real reason for diagnostics.
		log.Printf("auth: password verification failed for user %s: %v", user.ID, err)
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, nil, apperrors.ErrAccountDisabled
	}
	if !user.IsEmailVerified {
		return nil, nil, apperrors.ErrEmailNotVerified
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.users.Update(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("update last login: %w", err)
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

// VerifyEmail consumes an email-verification token and flips the flag.
func (s *authService) VerifyEmail(ctx context.Context, token string) error {
	userID, err := s.verification.Consume(ctx, token, model.PurposeEmailVerification)
	if err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("look up user: %w", err)
	}
	user.IsEmailVerified = true
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("mark email verified: %w", err)
	}
	return nil
}

// ResendVerification reissues the email-verification artifact.
func (s *authService) ResendVerification(ctx context.Context, emailAddr string) (bool, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperrors.ErrUserNotFound
		}
		return false, fmt.Errorf("look up user: %w", err)
	}

	if user.IsEmailVerified {
		return true, nil
	}

	if err := s.issueVerification(ctx, user); err != nil {
		return false, err
	}
	return false, nil
}

// ForgotPassword issues a password-reset artifact. An unknown email
// succeeds silently so accounts cannot be enumerated.
func (s *authService) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("look up user: %w", err)
	}

	artifact, err := s.verification.Issue(ctx, user.ID, model.PurposePasswordReset)
	if err != nil {
		return err
	}
	if err := s.mailer.SendResetEmail(ctx, user.Email, artifact.Token); err != nil {
		log.Printf("auth: failed to send reset email to %s: %v", user.Email, err)
	}
	return nil
}

// ResetPassword consumes a reset token and replaces the password hash.
func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return apperrors.ErrWeakPassword
	}

	userID, err := s.verification.Consume(ctx, token, model.PurposePasswordReset)
	if err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("look up user: %w", err)
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("store new password: %w", err)
	}
	return nil
}

// ChangePassword replaces the password hash after verifying the current one.
func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return apperrors.ErrWeakPassword
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("look up user: %w", err)
	}

	if err := s.hasher.Verify(currentPassword, user.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return apperrors.ErrInvalidCredentials
		}
		log.Printf("auth: password verification failed for user %s: %v", user.ID, err)
		return apperrors.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("store new password: %w", err)
	}
	return nil
}

// Refresh validates a refresh token and mints a new access/refresh pair.
// The presented token's ID is swapped for the new one in a single
// compare-and-rotate step, so of two concurrent refreshes presenting the
// same token exactly one succeeds.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return nil, err
		}
		return nil, apperrors.ErrInvalidRefreshToken
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	pair, tokenID, err := s.mintPair(user)
	if err != nil {
		return nil, err
	}
	rotated, err := s.tokenStore.RotateIfLatest(ctx, user.ID, claims.ID, tokenID, s.jwtService.RefreshTTL())
	if err != nil {
		return nil, fmt.Errorf("rotate refresh token: %w", err)
	}
	if !rotated {
		return nil, apperrors.ErrInvalidRefreshToken
	}
	return pair, nil
}

// GetUser loads a user profile by id.
func (s *authService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}
	return user, nil
}

func (s *authService) issueTokens(ctx context.Context, user *model.User) (*TokenPair, error) {
	pair, tokenID, err := s.mintPair(user)
	if err != nil {
		return nil, err
	}
	if err := s.tokenStore.SaveLatestRefresh(ctx, user.ID, tokenID, s.jwtService.RefreshTTL()); err != nil {
		return nil, fmt.Errorf("track refresh token: %w", err)
	}
	return pair, nil
}

func (s *authService) mintPair(user *model.User) (*TokenPair, string, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("generate access token: %w", err)
	}
	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("generate refresh token: %w", err)
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, tokenID, nil
}

// issueVerification mints and emails an email-verification artifact. A
// failure to persist the artifact is an internal error; only delivery is
// best-effort, a failed send never fails the calling flow.
func (s *authService) issueVerification(ctx context.Context, user *model.User) error {
	artifact, err := s.verification.Issue(ctx, user.ID, model.PurposeEmailVerification)
	if err != nil {
		return fmt.Errorf("issue verification token: %w", err)
	}
	if err := s.mailer.SendVerificationEmail(ctx, user.Email, artifact.Token); err != nil {
		log.Printf("auth: failed to send verification email to %s: %v", user.Email, err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
