package model

// Role is the closed set of account roles.
type Role string

const (
	RoleUser       Role = "user"
	RolePolice     Role = "police"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RolePolice, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// Privilege returns the privilege rank of the role, higher is more
// privileged (SuperAdmin > Admin > Police > User). Authorization rules
// are expressed as explicit allow-rules, this ordering exists for
// display and auditing.
func (r Role) Privilege() int {
	switch r {
	case RoleSuperAdmin:
		return 3
	case RoleAdmin:
		return 2
	case RolePolice:
		return 1
	default:
		return 0
	}
}

func (r Role) String() string {
	return string(r)
}
