package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"secalert/internal/model"
)

func testUser() *model.User {
	return &model.User{
		ID:    uuid.New(),
		Email: "alice@example.com",
		Role:  model.RolePolice,
	}
}

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute, 7*24*time.Hour)
	user := testUser()

	token, err := svc.GenerateAccessToken(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token, TokenTypeAccess)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Role, claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Equal(t, user.ID.String(), claims.Subject)
}

func TestJWTService_RefreshTokenCarriesJTI(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute, 7*24*time.Hour)
	user := testUser()

	tokenID, token, err := svc.GenerateRefreshToken(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenID)

	claims, err := svc.ValidateToken(token, TokenTypeRefresh)
	assert.NoError(t, err)
	assert.Equal(t, tokenID, claims.ID)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
}

func TestJWTService_WrongTokenType(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute, 7*24*time.Hour)
	user := testUser()

	access, err := svc.GenerateAccessToken(user)
	assert.NoError(t, err)
	_, refresh, err := svc.GenerateRefreshToken(user)
	assert.NoError(t, err)

	_, err = svc.ValidateToken(access, TokenTypeRefresh)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = svc.ValidateToken(refresh, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestJWTService_Expired(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute, -time.Minute)
	user := testUser()

	token, err := svc.GenerateAccessToken(user)
	assert.NoError(t, err)

	_, err = svc.ValidateToken(token, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestJWTService_NotExpiredJustBeforeExpiry(t *testing.T) {
	svc := NewJWTService("test-secret", time.Second, time.Second)
	user := testUser()

	token, err := svc.GenerateAccessToken(user)
	assert.NoError(t, err)

	_, err = svc.ValidateToken(token, TokenTypeAccess)
	assert.NoError(t, err)
}

func TestJWTService_InvalidSignature(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute, 7*24*time.Hour)
	other := NewJWTService("different-secret", 15*time.Minute, 7*24*time.Hour)
	user := testUser()

	token, err := other.GenerateAccessToken(user)
	assert.NoError(t, err)

	_, err = svc.ValidateToken(token, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestJWTService_Malformed(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute, 7*24*time.Hour)

	_, err := svc.ValidateToken("not-a-token", TokenTypeAccess)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}
