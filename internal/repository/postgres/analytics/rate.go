package analytics

import (
	"math"

	"college/backend/internal/auth"
)

// Aggregation types the analytics endpoint understands.
const (
	TypeOverview           = "overview"
	TypeAdmin              = "admin"
	TypeTeacher            = "teacher"
	TypeStudent            = "student"
	TypeAttendanceTrends   = "attendance-trends"
	TypeSubjectPerformance = "subject-performance"
	TypeStudentPerformance = "student-performance"
	TypeQRUsage            = "qr-usage"
)

// roleAllowList gates every aggregation type. A type that is not a key here
// is an unknown type, which the resolver rejects outright.
var roleAllowList = map[string][]string{
	TypeOverview:           {auth.RoleAdmin, auth.RoleTeacher},
	TypeAdmin:              {auth.RoleAdmin},
	TypeTeacher:            {auth.RoleTeacher, auth.RoleAdmin},
	TypeStudent:            {auth.RoleStudent, auth.RoleParent, auth.RoleAdmin},
	TypeAttendanceTrends:   {auth.RoleAdmin, auth.RoleTeacher},
	TypeSubjectPerformance: {auth.RoleAdmin, auth.RoleTeacher},
	TypeStudentPerformance: {auth.RoleAdmin, auth.RoleTeacher},
	TypeQRUsage:            {auth.RoleAdmin},
}

// KnownType reports whether t is a recognized aggregation type.
func KnownType(t string) bool {
	_, ok := roleAllowList[t]
	return ok
}

// AllowedRoles returns the allow-list for an aggregation type.
func AllowedRoles(t string) []string {
	return roleAllowList[t]
}

// Rate computes present/total*100 rounded to two decimals. An empty scope
// yields 0, never NaN.
func Rate(present, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(present)/float64(total)*10000) / 100
}

// deriveRate fills Rate from the scanned counts.
func (s *Summary) deriveRate() {
	s.Rate = Rate(s.PresentCount, s.TotalCount)
}
