package attendance

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"college/backend/foundation/web"
	"college/backend/internal/auth"
	"college/backend/internal/entity"
	"college/backend/internal/pkg/repository/postgresql"
	"college/backend/internal/repository/postgres"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/pkg/errors"
)

type Repository struct {
	*postgresql.Database
	policy Policy
}

func NewRepository(database *postgresql.Database, policy Policy) *Repository {
	return &Repository{Database: database, policy: policy}
}

// ResolveScan turns a validated QR session plus the presenting student into
// an attendance record. The insert rides on the partial unique index over
// (student_id, subject_id, attend_day): a concurrent or repeated first scan
// conflicts instead of duplicating, and the existing row is returned.
func (r Repository) ResolveScan(ctx context.Context, session entity.QRSession, request ScanRequest) (ScanResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleStudent)
	if err != nil {
		return ScanResponse{}, err
	}

	scannedAt := time.Now()

	status, err := DecideStatus(scannedAt, *session.StartsAt, *session.ExpiresAt, r.policy)
	if errors.Is(err, ErrExpired) {
		return ScanResponse{}, web.NewRequestError(errors.New("this code has expired. ask your teacher for a new code"), http.StatusBadRequest)
	}
	if errors.Is(err, ErrWindowClosed) {
		return ScanResponse{}, web.NewRequestError(errors.New("you scanned too late. attendance for this class is closed"), http.StatusBadRequest)
	}
	if err != nil {
		return ScanResponse{}, web.NewRequestError(err, http.StatusInternalServerError)
	}

	attendDay := scannedAt.Format("2006-01-02")

	var response ScanResponse
	response.StudentID = claims.UserId
	response.SubjectID = *session.SubjectID
	response.TeacherID = session.TeacherID
	response.QRSessionID = &session.BasicEntity.ID
	response.AttendDay = attendDay
	response.Status = status
	response.MarkedAt = &scannedAt
	response.Latitude = request.Latitude
	response.Longitude = request.Longitude
	response.DeviceInfo = request.DeviceInfo
	response.CreatedAt = scannedAt
	response.CreatedBy = claims.UserId

	res, err := r.NewInsert().
		Model(&response).
		On("CONFLICT (student_id, subject_id, attend_day) WHERE deleted_at IS NULL DO NOTHING").
		Exec(ctx)
	if err != nil {
		return ScanResponse{}, web.NewRequestError(errors.Wrap(err, "creating attendance by qr code"), http.StatusInternalServerError)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return ScanResponse{}, web.NewRequestError(errors.Wrap(err, "rows affected"), http.StatusInternalServerError)
	}

	// A re-scan is a no-op success: hand back the record the first scan
	// created.
	existing, err := r.getByKey(ctx, claims.UserId, *session.SubjectID, attendDay)
	if err != nil {
		return ScanResponse{}, err
	}
	existing.AlreadyMarked = rows == 0

	return existing, nil
}

func (r Repository) getByKey(ctx context.Context, studentID, subjectID int, attendDay string) (ScanResponse, error) {
	var detail ScanResponse

	err := r.QueryRowContext(ctx, `
		SELECT id, student_id, subject_id, teacher_id, qr_session_id, attend_day, status, marked_at
		FROM attendance
		WHERE deleted_at IS NULL AND student_id = $1 AND subject_id = $2 AND attend_day = $3
	`, studentID, subjectID, attendDay).Scan(
		&detail.ID,
		&detail.StudentID,
		&detail.SubjectID,
		&detail.TeacherID,
		&detail.QRSessionID,
		&detail.AttendDay,
		&detail.Status,
		&detail.MarkedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return ScanResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusInternalServerError)
	}
	if err != nil {
		return ScanResponse{}, web.NewRequestError(errors.Wrap(err, "selecting attendance"), http.StatusInternalServerError)
	}

	return detail, nil
}

func (r Repository) GetById(ctx context.Context, id int) (entity.Attendance, error) {
	var detail entity.Attendance

	err := r.NewSelect().Model(&detail).Where("id = ?", id).Scan(ctx)

	return detail, err
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `
			WHERE
				a.deleted_at IS NULL
			`

	// Students, parents and teachers only ever see their own slice.
	switch claims.Role {
	case auth.RoleStudent, auth.RoleAlumni:
		whereQuery += fmt.Sprintf(" AND a.student_id = %d", claims.UserId)
	case auth.RoleParent:
		whereQuery += fmt.Sprintf(" AND u.parent_id = %d", claims.UserId)
	case auth.RoleTeacher:
		whereQuery += fmt.Sprintf(" AND (a.teacher_id = %d OR s.teacher_id = %d)", claims.UserId, claims.UserId)
	}

	if filter.Search != nil {
		search := strings.Replace(*filter.Search, " ", "", -1)
		search = strings.Replace(search, "'", "''", -1)

		whereQuery += fmt.Sprintf(` AND
		(u.login ilike '%s' OR u.full_name ilike '%s')`, "%"+search+"%", "%"+search+"%")
	}
	if filter.SubjectID != nil {
		whereQuery += fmt.Sprintf(` AND a.subject_id = %d`, *filter.SubjectID)
	}
	if filter.StudentID != nil {
		whereQuery += fmt.Sprintf(` AND a.student_id = %d`, *filter.StudentID)
	}
	if filter.Status != nil {
		status := strings.ToUpper(strings.Replace(*filter.Status, "'", "''", -1))
		whereQuery += fmt.Sprintf(` AND a.status = '%s'`, status)
	}

	if filter.Date != nil {
		Date, err := time.Parse("2006-01-02", *filter.Date)
		if err != nil {
			return []GetListResponse{}, 0, web.NewRequestError(errors.Wrap(err, "date parse"), http.StatusBadRequest)
		}
		whereQuery += fmt.Sprintf(" AND a.attend_day = '%s'", Date.Format("2006-01-02"))
	}

	orderQuery := "ORDER BY a.created_at desc"

	var limitQuery, offsetQuery string

	if filter.Page != nil && filter.Limit != nil {
		offset := (*filter.Page - 1) * (*filter.Limit)
		filter.Offset = &offset
	}

	if filter.Limit != nil {
		limitQuery += fmt.Sprintf(" LIMIT %d", *filter.Limit)
	}

	if filter.Offset != nil {
		offsetQuery += fmt.Sprintf(" OFFSET %d", *filter.Offset)
	}

	query := fmt.Sprintf(`
		SELECT
			a.id,
			a.student_id,
			u.full_name,
			a.subject_id,
			s.name,
			a.teacher_id,
			t.full_name,
			a.attend_day,
			a.status,
			a.marked_at
		FROM   attendance as a
		LEFT JOIN users u ON a.student_id=u.id
		LEFT JOIN subject s ON a.subject_id=s.id
		LEFT JOIN users t ON a.teacher_id=t.id

		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting attendance"), http.StatusInternalServerError)
	}

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		var attendDayString string

		if err = rows.Scan(
			&detail.ID,
			&detail.StudentID,
			&detail.Student,
			&detail.SubjectID,
			&detail.Subject,
			&detail.TeacherID,
			&detail.Teacher,
			&attendDayString,
			&detail.Status,
			&detail.MarkedAt); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning attendance list"), http.StatusInternalServerError)
		}

		attendDay, err := date.ParseDate(attendDayString)
		if err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "converting attend_day to date.Date"), http.StatusInternalServerError)
		}
		detail.AttendDay = &attendDay

		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(a.id)
		FROM
		    attendance as a
		LEFT JOIN users u ON a.student_id=u.id
		LEFT JOIN subject s ON a.subject_id=s.id
		LEFT JOIN users t ON a.teacher_id=t.id
		%s
	`, whereQuery)

	countRows, err := r.QueryContext(ctx, countQuery)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting attendance count"), http.StatusInternalServerError)
	}

	count := 0

	for countRows.Next() {
		if err = countRows.Scan(&count); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning attendance count"), http.StatusInternalServerError)
		}
	}

	return list, count, nil
}

func (r Repository) GetDetailById(ctx context.Context, id int) (GetDetailByIdResponse, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin, auth.RoleTeacher)
	if err != nil {
		return GetDetailByIdResponse{}, err
	}

	query := `
		SELECT
			a.id,
			a.student_id,
			u.full_name,
			a.subject_id,
			s.name,
			a.teacher_id,
			t.full_name,
			a.qr_session_id,
			a.attend_day,
			a.status,
			a.marked_at,
			a.latitude,
			a.longitude,
			a.device_info
		FROM   attendance as a
		LEFT JOIN users u ON a.student_id=u.id
		LEFT JOIN subject s ON a.subject_id=s.id
		LEFT JOIN users t ON a.teacher_id=t.id
		WHERE  a.deleted_at is NULL and a.id = $1
	`

	var detail GetDetailByIdResponse
	var attendDayString string

	err = r.QueryRowContext(ctx, query, id).Scan(
		&detail.ID,
		&detail.StudentID,
		&detail.Student,
		&detail.SubjectID,
		&detail.Subject,
		&detail.TeacherID,
		&detail.Teacher,
		&detail.QRSessionID,
		&attendDayString,
		&detail.Status,
		&detail.MarkedAt,
		&detail.Latitude,
		&detail.Longitude,
		&detail.DeviceInfo,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDetailByIdResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "selecting attendance detail"), http.StatusInternalServerError)
	}

	attendDay, err := date.ParseDate(attendDayString)
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "converting attend_day to date.Date"), http.StatusInternalServerError)
	}
	detail.AttendDay = &attendDay

	return detail, nil
}

// CreateManual records attendance outside the QR flow: bulk marking or an
// admin/teacher backfill. ABSENT rows leave marked_at empty. Unlike a scan,
// a duplicate here is a caller mistake and is rejected.
func (r Repository) CreateManual(ctx context.Context, request CreateManualRequest) (ScanResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin, auth.RoleTeacher)
	if err != nil {
		return ScanResponse{}, err
	}

	if err := r.ValidateStruct(&request, "StudentID", "SubjectID", "AttendDay", "Status"); err != nil {
		return ScanResponse{}, err
	}

	status := strings.ToUpper(*request.Status)
	if status != entity.StatusPresent && status != entity.StatusLate && status != entity.StatusAbsent {
		return ScanResponse{}, web.NewRequestError(errors.New("incorrect status. status should be PRESENT, LATE or ABSENT"), http.StatusBadRequest)
	}

	if _, err := time.Parse("2006-01-02", *request.AttendDay); err != nil {
		return ScanResponse{}, web.NewRequestError(errors.Wrap(err, "parsing attend_day"), http.StatusBadRequest)
	}

	now := time.Now()

	var response ScanResponse
	response.StudentID = *request.StudentID
	response.SubjectID = *request.SubjectID
	response.TeacherID = &claims.UserId
	response.AttendDay = *request.AttendDay
	response.Status = status
	if status != entity.StatusAbsent {
		response.MarkedAt = &now
	}
	response.CreatedAt = now
	response.CreatedBy = claims.UserId

	res, err := r.NewInsert().
		Model(&response).
		On("CONFLICT (student_id, subject_id, attend_day) WHERE deleted_at IS NULL DO NOTHING").
		Exec(ctx)
	if err != nil {
		return ScanResponse{}, web.NewRequestError(errors.Wrap(err, "creating attendance"), http.StatusInternalServerError)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return ScanResponse{}, web.NewRequestError(errors.Wrap(err, "rows affected"), http.StatusInternalServerError)
	}
	if rows == 0 {
		return ScanResponse{}, web.NewRequestError(errors.Wrap(postgres.ErrAlreadyExists, "attendance for this student, subject and day"), http.StatusBadRequest)
	}

	return r.getByKey(ctx, *request.StudentID, *request.SubjectID, *request.AttendDay)
}

// UpdateColumns lets an admin or teacher correct a record after creation.
func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) error {
	if err := r.ValidateStruct(&request, "ID"); err != nil {
		return err
	}

	claims, err := r.CheckClaims(ctx, auth.RoleAdmin, auth.RoleTeacher)
	if err != nil {
		return err
	}

	q := r.NewUpdate().Table("attendance").Where("deleted_at IS NULL AND id = ?", request.ID)

	if request.Status != nil {
		status := strings.ToUpper(*request.Status)
		if status != entity.StatusPresent && status != entity.StatusLate && status != entity.StatusAbsent {
			return web.NewRequestError(errors.New("incorrect status. status should be PRESENT, LATE or ABSENT"), http.StatusBadRequest)
		}
		q.Set("status = ?", status)
		if status == entity.StatusAbsent {
			q.Set("marked_at = NULL")
		}
	}
	if request.AttendDay != nil {
		if _, err := time.Parse("2006-01-02", *request.AttendDay); err != nil {
			return web.NewRequestError(errors.Wrap(err, "parsing attend_day"), http.StatusBadRequest)
		}
		q.Set("attend_day = ?", *request.AttendDay)
	}
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	res, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating attendance"), http.StatusInternalServerError)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}

	return nil
}

func (r Repository) Delete(ctx context.Context, id int) error {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin); err != nil {
		return err
	}
	return r.DeleteRow(ctx, "attendance", id)
}
