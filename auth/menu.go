// file: auth/menu.go
package auth

import "civil-quest-admin/models"

// MenuItem is one sidebar entry. Label is an i18n message id.
type MenuItem struct {
	Label string
	Path  string
	Roles []models.Role
}

// Allows reports whether role may see the item. An item without roles is shown to everyone.
func (m MenuItem) Allows(role models.Role) bool {
	if len(m.Roles) == 0 {
		return true
	}
	for _, r := range m.Roles {
		if r == role {
			return true
		}
	}
	return false
}

var (
	adminsOnly    = []models.Role{models.RoleSuperAdmin}
	managersOnly  = []models.Role{models.RoleSuperAdmin, models.RoleProvincialAdmin}
	sidebarLayout = []MenuItem{
		{Label: "menu.dashboard", Path: "/"},
		{Label: "menu.events", Path: "/events"},
		{Label: "menu.admins", Path: "/admins", Roles: adminsOnly},
		{Label: "menu.operators", Path: "/operators", Roles: managersOnly},
		{Label: "menu.sponsorships", Path: "/sponsorships", Roles: managersOnly},
		{Label: "menu.points", Path: "/points", Roles: adminsOnly},
		{Label: "menu.users", Path: "/users", Roles: managersOnly},
		{Label: "menu.premium", Path: "/premium-requests", Roles: adminsOnly},
		{Label: "menu.audit", Path: "/audit-logs", Roles: adminsOnly},
	}
)

// MenuFor returns the sidebar entries visible to role.
func MenuFor(role models.Role) []MenuItem {
	var out []MenuItem
	for _, item := range sidebarLayout {
		if item.Allows(role) {
			out = append(out, item)
		}
	}
	return out
}

// RolesFor returns the roles allowed on path, or nil when every role is.
func RolesFor(path string) []models.Role {
	for _, item := range sidebarLayout {
		if item.Path == path {
			return item.Roles
		}
	}
	return nil
}
