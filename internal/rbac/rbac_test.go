package rbac

import "testing"

func TestHasPermission_ManageInternalObjectives(t *testing.T) {
	tests := []struct {
		role     string
		expected bool
	}{
		{RoleSuperadmin, true},
		{RoleAdmin, true},
		{RoleManagedArtist, true},
		{RoleManagedMusician, true},
		{RoleManagedProfessional, true},
		{RoleArtist, false},
		{RoleMusician, false},
		{RoleProfessional, false},
		{RoleBooker, false},
		{RoleFan, false},
		{"nonexistent", false},
		{"", false},
		// Exact, case-sensitive matching
		{"Admin", false},
		{"SUPERADMIN", false},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			result := HasPermission(tt.role, PermManageInternalObjectives)
			if result != tt.expected {
				t.Errorf("HasPermission(%q, manage) = %v, want %v", tt.role, result, tt.expected)
			}
		})
	}
}

func TestHasPermission_ViewObjectiveReports(t *testing.T) {
	tests := []struct {
		role     string
		expected bool
	}{
		{RoleSuperadmin, true},
		{RoleAdmin, true},
		// Managed talent can manage objectives but not read reports
		{RoleManagedArtist, false},
		{RoleManagedMusician, false},
		{RoleManagedProfessional, false},
		{RoleBooker, false},
		{RoleFan, false},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			result := HasPermission(tt.role, PermViewObjectiveReports)
			if result != tt.expected {
				t.Errorf("HasPermission(%q, reports) = %v, want %v", tt.role, result, tt.expected)
			}
		})
	}
}

func TestCanSelfRegister(t *testing.T) {
	tests := []struct {
		role     string
		expected bool
	}{
		{RoleArtist, true},
		{RoleMusician, true},
		{RoleProfessional, true},
		{RoleBooker, true},
		{RoleFan, true},
		{RoleSuperadmin, false},
		{RoleAdmin, false},
		{RoleManagedArtist, false},
		{RoleManagedMusician, false},
		{RoleManagedProfessional, false},
		{"nonexistent", false},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			if got := CanSelfRegister(tt.role); got != tt.expected {
				t.Errorf("CanSelfRegister(%q) = %v, want %v", tt.role, got, tt.expected)
			}
		})
	}
}

func TestIsKnownRole(t *testing.T) {
	for role := range RolePermissions {
		if !IsKnownRole(role) {
			t.Errorf("IsKnownRole(%q) = false, want true", role)
		}
	}
	if IsKnownRole("ghost") {
		t.Error("IsKnownRole(ghost) = true, want false")
	}
}
