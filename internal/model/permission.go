package model

// Permission represents a string code for a specific system action.
type Permission string

const (
	// PermissionCatalogWrite allows managing categories, courses, schedules and course schedules.
	PermissionCatalogWrite Permission = "catalog:write"

	// PermissionPaymentMethodsWrite allows managing payment methods.
	PermissionPaymentMethodsWrite Permission = "payment_methods:write"

	// PermissionUsersRead allows viewing user lists and details.
	PermissionUsersRead Permission = "users:read"

	// PermissionUsersWrite allows creating, updating and deleting users.
	PermissionUsersWrite Permission = "users:write"

	// PermissionInvoicesReadAll allows reading every user's invoices.
	PermissionInvoicesReadAll Permission = "invoices:read_all"

	// PermissionDashboardRead allows viewing dashboard statistics and diagnostics.
	PermissionDashboardRead Permission = "dashboard:read"
)

// AllPermissions contains every permission in the system.
var AllPermissions = []Permission{
	PermissionCatalogWrite,
	PermissionPaymentMethodsWrite,
	PermissionUsersRead,
	PermissionUsersWrite,
	PermissionInvoicesReadAll,
	PermissionDashboardRead,
}

// rolePermissions is the fixed grant table. Users hold no elevated permissions.
var rolePermissions = map[Role][]Permission{
	RoleAdmin: AllPermissions,
	RoleUser:  {},
}

// PermissionsFor returns the permission codes granted to role.
func PermissionsFor(role Role) []string {
	perms := rolePermissions[role]
	codes := make([]string, len(perms))
	for i, p := range perms {
		codes[i] = string(p)
	}
	return codes
}

// HasPermission reports whether role is granted perm.
func (r Role) HasPermission(perm Permission) bool {
	for _, p := range rolePermissions[r] {
		if p == perm {
			return true
		}
	}
	return false
}
