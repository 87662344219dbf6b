// Package analytics aggregates attendance records into the report summaries
// the dashboards consume. Every aggregation is computed fresh from the
// attendance table on each request; nothing here is cached or retried.
package analytics

import (
	"context"
	"database/sql"
	"math"
	"net/http"

	"college/backend/foundation/web"
	"college/backend/internal/auth"
	"college/backend/internal/pkg/repository/postgresql"
	"college/backend/internal/repository/postgres"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/pkg/errors"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// GetAnalytics dispatches on the aggregation type. Unknown types are a bad
// request; a caller outside the type's role allow-list gets 403 from
// CheckClaims. Store failures surface as 500 and are never retried.
func (r Repository) GetAnalytics(ctx context.Context, filter Filter) (interface{}, error) {
	if !KnownType(filter.Type) {
		return nil, web.NewRequestError(errors.Wrapf(postgres.ErrInvalidRequest, "unknown analytics type %s", filter.Type), http.StatusBadRequest)
	}

	claims, err := r.CheckClaims(ctx, AllowedRoles(filter.Type)...)
	if err != nil {
		return nil, err
	}

	if filter.PeriodDays <= 0 {
		filter.PeriodDays = 30
	}

	switch filter.Type {
	case TypeOverview:
		return r.overview(ctx, filter)
	case TypeAdmin:
		return r.admin(ctx, filter)
	case TypeTeacher:
		return r.teacher(ctx, claims, filter)
	case TypeStudent:
		return r.student(ctx, claims, filter)
	case TypeAttendanceTrends:
		return r.trends(ctx, filter)
	case TypeSubjectPerformance:
		return r.subjectPerformance(ctx, filter)
	case TypeStudentPerformance:
		return r.studentPerformance(ctx, filter)
	case TypeQRUsage:
		return r.qrUsage(ctx, filter)
	}

	return nil, web.NewRequestError(errors.Wrapf(postgres.ErrInvalidRequest, "unknown analytics type %s", filter.Type), http.StatusBadRequest)
}

// summaryColumns only counts; the rate is derived in Go so every
// aggregation shares one rounding rule.
const summaryColumns = `
	COUNT(a.id) AS total_count,
	COUNT(CASE WHEN a.status = 'PRESENT' THEN 1 END) AS present_count,
	COUNT(CASE WHEN a.status = 'LATE' THEN 1 END) AS late_count,
	COUNT(CASE WHEN a.status = 'ABSENT' THEN 1 END) AS absent_count
`

const rateOrder = `ORDER BY COUNT(CASE WHEN a.status = 'PRESENT' THEN 1 END)::float / GREATEST(1, COUNT(a.id)) DESC`

func (r Repository) overview(ctx context.Context, filter Filter) (OverviewResponse, error) {
	var response OverviewResponse

	err := r.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(id) FROM users WHERE role = 'STUDENT' AND deleted_at IS NULL) AS total_students,
			(SELECT COUNT(id) FROM users WHERE role = 'TEACHER' AND deleted_at IS NULL) AS total_teachers,
			(SELECT COUNT(id) FROM subject WHERE deleted_at IS NULL) AS total_subjects
	`).Scan(&response.TotalStudents, &response.TotalTeachers, &response.TotalSubjects)
	if err != nil {
		return OverviewResponse{}, web.NewRequestError(errors.Wrap(err, "selecting overview totals"), http.StatusInternalServerError)
	}

	err = r.QueryRowContext(ctx, `
		SELECT `+summaryColumns+`
		FROM attendance a
		WHERE a.deleted_at IS NULL
		AND a.attend_day >= CURRENT_DATE - $1::int
	`, filter.PeriodDays).Scan(
		&response.TotalCount,
		&response.PresentCount,
		&response.LateCount,
		&response.AbsentCount,
	)
	if err != nil {
		return OverviewResponse{}, web.NewRequestError(errors.Wrap(err, "selecting overview summary"), http.StatusInternalServerError)
	}
	response.deriveRate()

	return response, nil
}

func (r Repository) admin(ctx context.Context, filter Filter) (AdminResponse, error) {
	var response AdminResponse

	err := r.QueryRowContext(ctx, `
		SELECT `+summaryColumns+`
		FROM attendance a
		WHERE a.deleted_at IS NULL
		AND a.attend_day >= CURRENT_DATE - $1::int
	`, filter.PeriodDays).Scan(
		&response.TotalCount,
		&response.PresentCount,
		&response.LateCount,
		&response.AbsentCount,
	)
	if err != nil {
		return AdminResponse{}, web.NewRequestError(errors.Wrap(err, "selecting admin summary"), http.StatusInternalServerError)
	}
	response.deriveRate()

	rows, err := r.QueryContext(ctx, `
		SELECT
			d.id,
			d.name,
			`+summaryColumns+`
		FROM attendance a
		JOIN users u ON a.student_id = u.id
		LEFT JOIN department d ON u.department_id = d.id
		WHERE a.deleted_at IS NULL
		AND a.attend_day >= CURRENT_DATE - $1::int
		GROUP BY d.id, d.name
		`+rateOrder+`
	`, filter.PeriodDays)
	if err != nil {
		return AdminResponse{}, web.NewRequestError(errors.Wrap(err, "selecting department rates"), http.StatusInternalServerError)
	}
	defer rows.Close()

	for rows.Next() {
		var detail DepartmentRate
		if err = rows.Scan(
			&detail.DepartmentID,
			&detail.Department,
			&detail.TotalCount,
			&detail.PresentCount,
			&detail.LateCount,
			&detail.AbsentCount); err != nil {
			return AdminResponse{}, web.NewRequestError(errors.Wrap(err, "scanning department rates"), http.StatusInternalServerError)
		}
		detail.deriveRate()
		response.Departments = append(response.Departments, detail)
	}
	if err = rows.Err(); err != nil {
		return AdminResponse{}, web.NewRequestError(errors.Wrap(err, "reading department rates"), http.StatusInternalServerError)
	}

	return response, nil
}

func (r Repository) teacher(ctx context.Context, claims auth.Claims, filter Filter) (TeacherResponse, error) {
	var response TeacherResponse

	err := r.QueryRowContext(ctx, `
		SELECT `+summaryColumns+`
		FROM attendance a
		JOIN subject s ON a.subject_id = s.id
		WHERE a.deleted_at IS NULL
		AND s.teacher_id = $1
		AND a.attend_day >= CURRENT_DATE - $2::int
	`, claims.UserId, filter.PeriodDays).Scan(
		&response.TotalCount,
		&response.PresentCount,
		&response.LateCount,
		&response.AbsentCount,
	)
	if err != nil {
		return TeacherResponse{}, web.NewRequestError(errors.Wrap(err, "selecting teacher summary"), http.StatusInternalServerError)
	}
	response.deriveRate()

	rows, err := r.QueryContext(ctx, `
		SELECT
			s.id,
			s.name,
			`+summaryColumns+`
		FROM attendance a
		JOIN subject s ON a.subject_id = s.id
		WHERE a.deleted_at IS NULL
		AND s.teacher_id = $1
		AND a.attend_day >= CURRENT_DATE - $2::int
		GROUP BY s.id, s.name
		`+rateOrder+`
	`, claims.UserId, filter.PeriodDays)
	if err != nil {
		return TeacherResponse{}, web.NewRequestError(errors.Wrap(err, "selecting teacher subject rates"), http.StatusInternalServerError)
	}
	defer rows.Close()

	for rows.Next() {
		var detail SubjectRate
		if err = rows.Scan(
			&detail.SubjectID,
			&detail.Subject,
			&detail.TotalCount,
			&detail.PresentCount,
			&detail.LateCount,
			&detail.AbsentCount); err != nil {
			return TeacherResponse{}, web.NewRequestError(errors.Wrap(err, "scanning teacher subject rates"), http.StatusInternalServerError)
		}
		detail.deriveRate()
		response.Subjects = append(response.Subjects, detail)
	}
	if err = rows.Err(); err != nil {
		return TeacherResponse{}, web.NewRequestError(errors.Wrap(err, "reading teacher subject rates"), http.StatusInternalServerError)
	}

	return response, nil
}

// student narrows the scope to one student. A student caller is always
// self-scoped; a parent may only read their own children; an admin passes
// the student id explicitly.
func (r Repository) student(ctx context.Context, claims auth.Claims, filter Filter) (StudentResponse, error) {
	var studentID int

	switch claims.Role {
	case auth.RoleStudent:
		studentID = claims.UserId
	case auth.RoleParent:
		if filter.StudentID == nil {
			return StudentResponse{}, web.NewRequestError(errors.New("student_id parameter is required"), http.StatusBadRequest)
		}
		var ok bool
		err := r.QueryRowContext(ctx, `
			SELECT EXISTS (SELECT 1 FROM users WHERE id = $1 AND parent_id = $2 AND deleted_at IS NULL)
		`, *filter.StudentID, claims.UserId).Scan(&ok)
		if err != nil {
			return StudentResponse{}, web.NewRequestError(errors.Wrap(err, "checking parent link"), http.StatusInternalServerError)
		}
		if !ok {
			return StudentResponse{}, web.NewRequestError(errors.New("attempted action is not allowed"), http.StatusForbidden)
		}
		studentID = *filter.StudentID
	default:
		if filter.StudentID == nil {
			return StudentResponse{}, web.NewRequestError(errors.New("student_id parameter is required"), http.StatusBadRequest)
		}
		studentID = *filter.StudentID
	}

	response := StudentResponse{StudentID: studentID}

	err := r.QueryRowContext(ctx, `
		SELECT
			u.full_name,
			`+summaryColumns+`
		FROM users u
		LEFT JOIN attendance a ON a.student_id = u.id
			AND a.deleted_at IS NULL
			AND a.attend_day >= CURRENT_DATE - $2::int
		WHERE u.id = $1 AND u.deleted_at IS NULL
		GROUP BY u.full_name
	`, studentID, filter.PeriodDays).Scan(
		&response.Student,
		&response.TotalCount,
		&response.PresentCount,
		&response.LateCount,
		&response.AbsentCount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return StudentResponse{}, web.NewRequestError(errors.New("student not found"), http.StatusNotFound)
	}
	if err != nil {
		return StudentResponse{}, web.NewRequestError(errors.Wrap(err, "selecting student summary"), http.StatusInternalServerError)
	}
	response.deriveRate()

	rows, err := r.QueryContext(ctx, `
		SELECT
			s.id,
			s.name,
			`+summaryColumns+`
		FROM attendance a
		JOIN subject s ON a.subject_id = s.id
		WHERE a.deleted_at IS NULL
		AND a.student_id = $1
		AND a.attend_day >= CURRENT_DATE - $2::int
		GROUP BY s.id, s.name
		`+rateOrder+`
	`, studentID, filter.PeriodDays)
	if err != nil {
		return StudentResponse{}, web.NewRequestError(errors.Wrap(err, "selecting student subject rates"), http.StatusInternalServerError)
	}
	defer rows.Close()

	for rows.Next() {
		var detail SubjectRate
		if err = rows.Scan(
			&detail.SubjectID,
			&detail.Subject,
			&detail.TotalCount,
			&detail.PresentCount,
			&detail.LateCount,
			&detail.AbsentCount); err != nil {
			return StudentResponse{}, web.NewRequestError(errors.Wrap(err, "scanning student subject rates"), http.StatusInternalServerError)
		}
		detail.deriveRate()
		response.Subjects = append(response.Subjects, detail)
	}
	if err = rows.Err(); err != nil {
		return StudentResponse{}, web.NewRequestError(errors.Wrap(err, "reading student subject rates"), http.StatusInternalServerError)
	}

	return response, nil
}

// trends groups by day ascending, feeding the trend line.
func (r Repository) trends(ctx context.Context, filter Filter) ([]TrendPoint, error) {
	query := `
		SELECT
			a.attend_day,
			` + summaryColumns + `
		FROM attendance a
		WHERE a.deleted_at IS NULL
		AND a.attend_day >= CURRENT_DATE - $1::int
	`
	args := []interface{}{filter.PeriodDays}

	if filter.SubjectID != nil {
		query += " AND a.subject_id = $2"
		args = append(args, *filter.SubjectID)
	}

	query += `
		GROUP BY a.attend_day
		ORDER BY a.attend_day ASC
	`

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting attendance trends"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []TrendPoint

	for rows.Next() {
		var detail TrendPoint
		var dayString string

		if err = rows.Scan(
			&dayString,
			&detail.TotalCount,
			&detail.PresentCount,
			&detail.LateCount,
			&detail.AbsentCount); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning attendance trends"), http.StatusInternalServerError)
		}
		detail.deriveRate()

		day, err := date.ParseDate(dayString)
		if err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "converting attend_day to date.Date"), http.StatusInternalServerError)
		}
		detail.Day = &day

		list = append(list, detail)
	}
	if err = rows.Err(); err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "reading attendance trends"), http.StatusInternalServerError)
	}

	return list, nil
}

// subjectPerformance is a leaderboard: descending by rate.
func (r Repository) subjectPerformance(ctx context.Context, filter Filter) ([]SubjectRate, error) {
	rows, err := r.QueryContext(ctx, `
		SELECT
			s.id,
			s.name,
			`+summaryColumns+`
		FROM attendance a
		JOIN subject s ON a.subject_id = s.id
		WHERE a.deleted_at IS NULL
		AND a.attend_day >= CURRENT_DATE - $1::int
		GROUP BY s.id, s.name
		`+rateOrder+`
	`, filter.PeriodDays)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting subject performance"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []SubjectRate

	for rows.Next() {
		var detail SubjectRate
		if err = rows.Scan(
			&detail.SubjectID,
			&detail.Subject,
			&detail.TotalCount,
			&detail.PresentCount,
			&detail.LateCount,
			&detail.AbsentCount); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning subject performance"), http.StatusInternalServerError)
		}
		detail.deriveRate()
		list = append(list, detail)
	}
	if err = rows.Err(); err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "reading subject performance"), http.StatusInternalServerError)
	}

	return list, nil
}

func (r Repository) studentPerformance(ctx context.Context, filter Filter) ([]StudentRate, error) {
	query := `
		SELECT
			u.id,
			u.full_name,
			` + summaryColumns + `
		FROM attendance a
		JOIN users u ON a.student_id = u.id
		WHERE a.deleted_at IS NULL
		AND a.attend_day >= CURRENT_DATE - $1::int
	`
	args := []interface{}{filter.PeriodDays}

	if filter.SubjectID != nil {
		query += " AND a.subject_id = $2"
		args = append(args, *filter.SubjectID)
	}

	query += `
		GROUP BY u.id, u.full_name
		` + rateOrder

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting student performance"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []StudentRate

	for rows.Next() {
		var detail StudentRate
		if err = rows.Scan(
			&detail.StudentID,
			&detail.Student,
			&detail.TotalCount,
			&detail.PresentCount,
			&detail.LateCount,
			&detail.AbsentCount); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning student performance"), http.StatusInternalServerError)
		}
		detail.deriveRate()
		list = append(list, detail)
	}
	if err = rows.Err(); err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "reading student performance"), http.StatusInternalServerError)
	}

	return list, nil
}

func (r Repository) qrUsage(ctx context.Context, filter Filter) (QRUsageResponse, error) {
	var response QRUsageResponse

	err := r.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(id) FROM qr_session WHERE deleted_at IS NULL AND created_at >= CURRENT_DATE - $1::int) AS sessions_issued,
			(SELECT COUNT(id) FROM attendance WHERE deleted_at IS NULL AND qr_session_id IS NOT NULL AND attend_day >= CURRENT_DATE - $1::int) AS scans_resolved,
			(SELECT COUNT(id) FROM qr_session WHERE deleted_at IS NULL AND active = true AND expires_at > now()) AS active_sessions,
			(SELECT COUNT(DISTINCT teacher_id) FROM qr_session WHERE deleted_at IS NULL AND created_at >= CURRENT_DATE - $1::int) AS distinct_teachers
	`, filter.PeriodDays).Scan(
		&response.SessionsIssued,
		&response.ScansResolved,
		&response.ActiveSessions,
		&response.DistinctTeachers,
	)
	if err != nil {
		return QRUsageResponse{}, web.NewRequestError(errors.Wrap(err, "selecting qr usage"), http.StatusInternalServerError)
	}

	if response.SessionsIssued > 0 {
		response.ScansPerSession = math.Round(float64(response.ScansResolved)/float64(response.SessionsIssued)*100) / 100
	}

	return response, nil
}
