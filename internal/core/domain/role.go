package domain

import "strings"

// Role is the closed set of portal roles. The raw claim string from the
// session is parsed exactly once (ParseRole); everything downstream matches
// on the enum and never re-parses strings.
type Role string

const (
	RoleUser       Role = "USER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPERADMIN"
)

// Permission identifies a portal capability granted to a role.
type Permission string

const (
	PermManageUsers        Permission = "manage_users"
	PermManageRoles        Permission = "manage_roles"
	PermManagePermissions  Permission = "manage_permissions"
	PermManageServices     Permission = "manage_services"
	PermManageBilling      Permission = "manage_billing"
	PermManageCurrency     Permission = "manage_currency"
	PermViewAdminDashboard Permission = "view_admin_dashboard"
	PermViewReports        Permission = "view_reports"
)

// ParseRole maps a raw role claim to a Role. Comparison is case-insensitive;
// an empty or unknown claim is the implicit default role.
func ParseRole(claim string) Role {
	switch strings.ToLower(strings.TrimSpace(claim)) {
	case "superadmin":
		return RoleSuperAdmin
	case "admin":
		return RoleAdmin
	default:
		return RoleUser
	}
}

// Permissions returns the cumulative permission set for the role.
// SuperAdmin ⊇ Admin ⊇ User.
func (r Role) Permissions() []Permission {
	switch r {
	case RoleSuperAdmin:
		return []Permission{
			PermManageUsers,
			PermManageRoles,
			PermManagePermissions,
			PermManageServices,
			PermManageBilling,
			PermManageCurrency,
			PermViewAdminDashboard,
			PermViewReports,
		}
	case RoleAdmin:
		return []Permission{
			PermManageUsers,
			PermManageServices,
			PermManageBilling,
			PermManageCurrency,
			PermViewAdminDashboard,
			PermViewReports,
		}
	default:
		return []Permission{PermViewReports}
	}
}

// HasPermission reports whether the role grants the given permission.
func (r Role) HasPermission(p Permission) bool {
	for _, granted := range r.Permissions() {
		if granted == p {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the role carries admin privileges.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// IsSuperAdmin is the sole gate for actions that must not be delegated to
// ordinary admins.
func (r Role) IsSuperAdmin() bool {
	return r == RoleSuperAdmin
}
