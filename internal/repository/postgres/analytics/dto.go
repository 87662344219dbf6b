package analytics

import (
	"github.com/Azure/go-autorest/autorest/date"
)

type Filter struct {
	Type       string
	PeriodDays int
	SubjectID  *int
	StudentID  *int
}

// Summary is the shared counting core every aggregation computes: totals,
// per-status counts and the derived present rate.
type Summary struct {
	TotalCount   int     `json:"total_count" bun:"total_count"`
	PresentCount int     `json:"present_count" bun:"present_count"`
	LateCount    int     `json:"late_count" bun:"late_count"`
	AbsentCount  int     `json:"absent_count" bun:"absent_count"`
	Rate         float64 `json:"attendance_rate" bun:"attendance_rate"`
}

type OverviewResponse struct {
	TotalStudents int `json:"total_students"`
	TotalTeachers int `json:"total_teachers"`
	TotalSubjects int `json:"total_subjects"`
	Summary
}

type DepartmentRate struct {
	DepartmentID *int    `json:"department_id"`
	Department   *string `json:"department"`
	Summary
}

type AdminResponse struct {
	Summary
	Departments []DepartmentRate `json:"departments"`
}

type SubjectRate struct {
	SubjectID *int    `json:"subject_id"`
	Subject   *string `json:"subject"`
	Summary
}

type TeacherResponse struct {
	Summary
	Subjects []SubjectRate `json:"subjects"`
}

type StudentResponse struct {
	StudentID int     `json:"student_id"`
	Student   *string `json:"student,omitempty"`
	Summary
	Subjects []SubjectRate `json:"subjects"`
}

type TrendPoint struct {
	Day *date.Date `json:"day"`
	Summary
}

type StudentRate struct {
	StudentID *int    `json:"student_id"`
	Student   *string `json:"student"`
	Summary
}

type QRUsageResponse struct {
	SessionsIssued   int     `json:"sessions_issued"`
	ScansResolved    int     `json:"scans_resolved"`
	ScansPerSession  float64 `json:"scans_per_session"`
	ActiveSessions   int     `json:"active_sessions"`
	DistinctTeachers int     `json:"distinct_teachers"`
}
