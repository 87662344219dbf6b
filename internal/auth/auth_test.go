package auth

import "testing"

func TestValidRole(t *testing.T) {
	for _, role := range Roles {
		if !ValidRole(role) {
			t.Errorf("expected %q to be valid", role)
		}
	}

	for _, role := range []string{"", "admin", "SUPERUSER", "Teacher"} {
		if ValidRole(role) {
			t.Errorf("expected %q to be invalid", role)
		}
	}
}

func TestClaimsAuthorized(t *testing.T) {
	tests := []struct {
		name  string
		role  string
		roles []string
		want  bool
	}{
		{name: "empty list allows any authenticated user", role: RoleAlumni, roles: nil, want: true},
		{name: "role in list", role: RoleTeacher, roles: []string{RoleAdmin, RoleTeacher}, want: true},
		{name: "role not in list", role: RoleStudent, roles: []string{RoleAdmin, RoleTeacher}, want: false},
		{name: "case sensitive", role: "admin", roles: []string{RoleAdmin}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Claims{Role: tt.role}
			if got := c.Authorized(tt.roles...); got != tt.want {
				t.Errorf("Authorized(%v) with role %q = %v, want %v", tt.roles, tt.role, got, tt.want)
			}
		})
	}
}
