package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"secalert/internal/model"
)

func TestCanCreateRole(t *testing.T) {
	tests := []struct {
		name    string
		caller  model.Role
		target  model.Role
		allowed bool
	}{
		{"super admin creates admin", model.RoleSuperAdmin, model.RoleAdmin, true},
		{"super admin creates police", model.RoleSuperAdmin, model.RolePolice, true},
		{"super admin creates super admin", model.RoleSuperAdmin, model.RoleSuperAdmin, false},
		{"super admin creates user", model.RoleSuperAdmin, model.RoleUser, false},
		{"admin creates admin", model.RoleAdmin, model.RoleAdmin, false},
		{"admin creates police", model.RoleAdmin, model.RolePolice, false},
		{"police creates police", model.RolePolice, model.RolePolice, false},
		{"user creates admin", model.RoleUser, model.RoleAdmin, false},
		{"unknown caller", model.Role("intruder"), model.RoleAdmin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanCreateRole(tt.caller, tt.target))
		})
	}
}
