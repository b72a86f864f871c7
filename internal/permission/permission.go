// Package permission maps account roles to capability predicates.
// Everything here is pure: no state, no storage access. Route middleware and
// the mutating services both consult these functions, so a capability is
// always checked twice (once at the route, once right before the write).
package permission

// Roles recognized by the system.
const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleEmployee  = "employee"
)

// IsAdmin reports whether the role is the administrator role.
func IsAdmin(role string) bool { return role == RoleAdmin }

// IsModerator reports whether the role is moderator or above.
func IsModerator(role string) bool { return role == RoleModerator || role == RoleAdmin }

// CanManageUsers: user administration is admin-only.
func CanManageUsers(role string) bool { return IsAdmin(role) }

// CanManageProducts: catalog writes require moderator or admin.
func CanManageProducts(role string) bool { return IsModerator(role) }

// CanManageSales: sale registration/deletion requires moderator or admin.
func CanManageSales(role string) bool { return IsModerator(role) }
