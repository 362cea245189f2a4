// Package authz holds the pure role-escalation policy. It maps (caller
// role, role being created) to an allow/deny decision and owns no state.
package authz

import "secalert/internal/model"

// CanCreateRole reports whether a caller with the given role may create an
// account with the target role. Only super admins may create admin or
// police accounts. No role, super admin included, creates super-admin or
// plain user accounts through the elevated path: the former only exists
// via startup seeding, the latter via public self-registration.
func CanCreateRole(caller, target model.Role) bool {
	if caller != model.RoleSuperAdmin {
		return false
	}
	switch target {
	case model.RoleAdmin, model.RolePolice:
		return true
	default:
		return false
	}
}
