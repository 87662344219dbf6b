package analytics

import (
	"testing"

	"college/backend/internal/auth"
)

func TestRate(t *testing.T) {
	tests := []struct {
		name    string
		present int
		total   int
		want    float64
	}{
		{name: "empty scope", present: 0, total: 0, want: 0},
		{name: "none present", present: 0, total: 20, want: 0},
		{name: "all present", present: 20, total: 20, want: 100},
		{name: "seventeen of twenty", present: 17, total: 20, want: 85},
		{name: "rounds to two decimals", present: 1, total: 3, want: 33.33},
		{name: "rounds up", present: 2, total: 3, want: 66.67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Rate(tt.present, tt.total); got != tt.want {
				t.Errorf("Rate(%d, %d) = %v, want %v", tt.present, tt.total, got, tt.want)
			}
		})
	}
}

func TestKnownType(t *testing.T) {
	for _, typ := range []string{
		TypeOverview, TypeAdmin, TypeTeacher, TypeStudent,
		TypeAttendanceTrends, TypeSubjectPerformance, TypeStudentPerformance, TypeQRUsage,
	} {
		if !KnownType(typ) {
			t.Errorf("expected %q to be a known type", typ)
		}
	}

	for _, typ := range []string{"", "unknown", "OVERVIEW", "qr_usage"} {
		if KnownType(typ) {
			t.Errorf("expected %q to be unknown", typ)
		}
	}
}

func TestAllowedRoles(t *testing.T) {
	tests := []struct {
		typ     string
		role    string
		allowed bool
	}{
		{TypeAdmin, auth.RoleAdmin, true},
		{TypeAdmin, auth.RoleTeacher, false},
		{TypeStudent, auth.RoleStudent, true},
		{TypeStudent, auth.RoleParent, true},
		{TypeStudent, auth.RoleAlumni, false},
		{TypeQRUsage, auth.RoleAdmin, true},
		{TypeQRUsage, auth.RoleTeacher, false},
		{TypeOverview, auth.RoleTeacher, true},
		{TypeOverview, auth.RoleStudent, false},
	}

	for _, tt := range tests {
		found := false
		for _, role := range AllowedRoles(tt.typ) {
			if role == tt.role {
				found = true
				break
			}
		}
		if found != tt.allowed {
			t.Errorf("AllowedRoles(%q) contains %q = %v, want %v", tt.typ, tt.role, found, tt.allowed)
		}
	}
}

func TestSummaryDeriveRate(t *testing.T) {
	s := Summary{TotalCount: 40, PresentCount: 30, LateCount: 6, AbsentCount: 4}
	s.deriveRate()
	if s.Rate != 75 {
		t.Errorf("Rate = %v, want 75", s.Rate)
	}

	var empty Summary
	empty.deriveRate()
	if empty.Rate != 0 {
		t.Errorf("Rate = %v for an empty scope, want 0", empty.Rate)
	}
}
