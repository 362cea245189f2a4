package handler

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

// The password length policy lives in the service, where it maps to 422.
// The request DTOs must therefore accept short passwords instead of
// pre-rejecting them with a binding 400.
func TestPasswordPolicyNotEnforcedByBinding(t *testing.T) {
	v := validator.New()

	assert.NoError(t, v.Struct(RegisterRequest{
		Email:     "alice@example.com",
		Password:  "short",
		FirstName: "Alice",
		LastName:  "Smith",
	}))
	assert.NoError(t, v.Struct(ResetPasswordRequest{
		Token:       "reset-token",
		NewPassword: "short",
	}))
	assert.NoError(t, v.Struct(ChangePasswordRequest{
		CurrentPassword: "current-password",
		NewPassword:     "short",
	}))
}
