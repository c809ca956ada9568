// file: models/role.go
package models

// Role is the role claim carried by the session token.
type Role string

const (
	RoleSuperAdmin      Role = "SUPER_ADMIN"
	RoleProvincialAdmin Role = "PROVINCIAL_ADMIN"
	RoleAdminOperator   Role = "ADMIN_OPERATOR"
)

// Valid reports whether r is one of the dashboard roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleProvincialAdmin, RoleAdminOperator:
		return true
	}
	return false
}

// Label is the human readable role name shown in the header.
func (r Role) Label() string {
	switch r {
	case RoleSuperAdmin:
		return "Super Admin"
	case RoleProvincialAdmin:
		return "Provincial Admin"
	case RoleAdminOperator:
		return "Admin Operator"
	}
	return "Unknown"
}
