package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"secalert/internal/model"
)

// TokenType discriminates access tokens from refresh tokens.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

var (
	// ErrTokenExpired is returned when a token is past its expiry.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenMalformed is returned when a token fails structural decoding.
	ErrTokenMalformed = errors.New("token is malformed")
	// ErrInvalidSignature is returned when a token signature does not verify.
	ErrInvalidSignature = errors.New("token signature is invalid")
	// ErrWrongTokenType is returned when an access token is presented where
	// a refresh token is required, or vice versa.
	ErrWrongTokenType = errors.New("wrong token type")
)

// Claims represents JWT claims carried by both token kinds. Role is only
// meaningful on access tokens; refresh tokens carry the subject and a JTI
// used for rotation tracking.
type Claims struct {
	UserID    uuid.UUID  `json:"user_id"`
	Role      model.Role `json:"role,omitempty"`
	TokenType TokenType  `json:"token_type"`
	jwt.RegisteredClaims
}

// JWTService issues and validates signed session tokens. The signing
// secret is injected at construction and held for the service lifetime.
type JWTService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewJWTService creates a new JWT service with the given secret and
// token lifetimes.
func NewJWTService(secret string, accessTTL, refreshTTL time.Duration) *JWTService {
	return &JWTService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// GenerateAccessToken issues a short-lived access token carrying the
// user's id and role.
func (s *JWTService) GenerateAccessToken(user *model.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:    user.ID,
		Role:      user.Role,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// GenerateRefreshToken issues a long-lived refresh token carrying the
// subject only. The token ID (JTI) is returned separately so the caller
// can record it for rotation tracking.
func (s *JWTService) GenerateRefreshToken(user *model.User) (tokenID string, token string, err error) {
	tokenID = uuid.New().String()
	now := time.Now()
	claims := &Claims{
		UserID:    user.ID,
		TokenType: TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err = tokenObj.SignedString(s.secret)
	return tokenID, token, err
}

// ValidateToken verifies signature and expiry, checks the token type
// discriminator, and returns the claims.
func (s *JWTService) ValidateToken(tokenString string, expected TokenType) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return s.secret, nil
	})

	if err != nil {
		return nil, translateValidationError(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}
	if claims.TokenType != expected {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}

// RefreshTTL reports the configured refresh token lifetime, used to bound
// rotation-tracking records.
func (s *JWTService) RefreshTTL() time.Duration {
	return s.refreshTTL
}

func translateValidationError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired), errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, ErrInvalidSignature):
		return ErrInvalidSignature
	default:
		return ErrTokenMalformed
	}
}
