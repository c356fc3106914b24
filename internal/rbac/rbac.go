package rbac

// Role constants
const (
	RoleSuperadmin          = "superadmin"
	RoleAdmin               = "admin"
	RoleManagedArtist       = "managed_artist"
	RoleManagedMusician     = "managed_musician"
	RoleManagedProfessional = "managed_professional"
	RoleArtist              = "artist"
	RoleMusician            = "musician"
	RoleProfessional        = "professional"
	RoleBooker              = "booker"
	RoleFan                 = "fan"
)

// Permission constants
const (
	PermManageInternalObjectives = "internal_objectives:manage"
	PermViewObjectiveReports     = "objective_reports:view"
)

// RolePermissions is the single authorization policy. Services and route
// middleware consult it identically; there is no second, narrower check
// hidden at either layer. Matching is exact and case-sensitive.
var RolePermissions = map[string][]string{
	RoleSuperadmin: {
		PermManageInternalObjectives, PermViewObjectiveReports,
	},
	RoleAdmin: {
		PermManageInternalObjectives, PermViewObjectiveReports,
	},
	RoleManagedArtist:       {PermManageInternalObjectives},
	RoleManagedMusician:     {PermManageInternalObjectives},
	RoleManagedProfessional: {PermManageInternalObjectives},
	RoleArtist:              {},
	RoleMusician:            {},
	RoleProfessional:        {},
	RoleBooker:              {},
	RoleFan:                 {},
}

// HasPermission checks if a role has a specific permission.
func HasPermission(role, permission string) bool {
	perms, ok := RolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range perms {
		if p == permission {
			return true
		}
	}
	return false
}

// IsKnownRole reports whether the role exists in the policy at all.
func IsKnownRole(role string) bool {
	_, ok := RolePermissions[role]
	return ok
}

// CanSelfRegister reports whether a role may be chosen at registration.
// Staff and managed roles are assigned by admins, never self-selected.
func CanSelfRegister(role string) bool {
	switch role {
	case RoleArtist, RoleMusician, RoleProfessional, RoleBooker, RoleFan:
		return true
	}
	return false
}
