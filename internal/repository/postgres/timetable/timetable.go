package timetable

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"college/backend/foundation/web"
	"college/backend/internal/auth"
	"college/backend/internal/pkg/repository/postgresql"
	"college/backend/internal/repository/postgres"

	"github.com/pkg/errors"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	claims, err := r.CheckClaims(ctx, auth.Roles...)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `
			WHERE
				t.deleted_at IS NULL
			`

	// students see their own group's schedule only
	if claims.Role == auth.RoleStudent {
		whereQuery += fmt.Sprintf(` AND t.group_name = (SELECT group_name FROM users WHERE id = %d)`, claims.UserId)
	}
	if claims.Role == auth.RoleTeacher {
		whereQuery += fmt.Sprintf(` AND s.teacher_id = %d`, claims.UserId)
	}

	if filter.GroupName != nil {
		group := strings.Replace(*filter.GroupName, "'", "''", -1)
		whereQuery += fmt.Sprintf(` AND t.group_name = '%s'`, group)
	}
	if filter.SubjectID != nil {
		whereQuery += fmt.Sprintf(` AND t.subject_id = %d`, *filter.SubjectID)
	}
	if filter.Weekday != nil {
		whereQuery += fmt.Sprintf(` AND t.weekday = %d`, *filter.Weekday)
	}

	orderQuery := "ORDER BY t.weekday, t.start_time"

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
			t.id,
			t.subject_id,
			s.name,
			u.full_name,
			t.group_name,
			t.weekday,
			t.start_time,
			t.end_time,
			t.room
		FROM timetable t
		LEFT JOIN subject s ON s.id = t.subject_id
		LEFT JOIN users u ON u.id = s.teacher_id

		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, web.NewRequestError(postgres.ErrNotFound, http.StatusBadRequest)
	}
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting timetable"), http.StatusInternalServerError)
	}

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.SubjectID,
			&detail.Subject,
			&detail.Teacher,
			&detail.GroupName,
			&detail.Weekday,
			&detail.StartTime,
			&detail.EndTime,
			&detail.Room); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning timetable list"), http.StatusInternalServerError)
		}

		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(t.id)
		FROM timetable t
		LEFT JOIN subject s ON s.id = t.subject_id
			%s
	`, whereQuery)

	countRows, err := r.QueryContext(ctx, countQuery)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting timetable count"), http.StatusInternalServerError)
	}

	count := 0

	for countRows.Next() {
		if err = countRows.Scan(&count); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning timetable count"), http.StatusInternalServerError)
		}
	}

	return list, count, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "SubjectID", "GroupName", "Weekday", "StartTime", "EndTime"); err != nil {
		return CreateResponse{}, err
	}

	if *request.Weekday < 1 || *request.Weekday > 7 {
		return CreateResponse{}, web.NewRequestError(errors.New("weekday must be between 1 and 7"), http.StatusBadRequest)
	}

	var response CreateResponse
	response.SubjectID = request.SubjectID
	response.GroupName = request.GroupName
	response.Weekday = request.Weekday
	response.StartTime = request.StartTime
	response.EndTime = request.EndTime
	response.Room = request.Room
	response.CreatedAt = time.Now()
	response.CreatedBy = claims.UserId

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating timetable entry"), http.StatusInternalServerError)
	}

	return response, nil
}

func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) error {
	if err := r.ValidateStruct(&request, "ID"); err != nil {
		return err
	}

	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	q := r.NewUpdate().Table("timetable").Where("deleted_at IS NULL AND id = ? ", request.ID)

	if request.SubjectID != nil {
		q.Set("subject_id = ?", request.SubjectID)
	}
	if request.GroupName != nil {
		q.Set("group_name = ?", request.GroupName)
	}
	if request.Weekday != nil {
		if *request.Weekday < 1 || *request.Weekday > 7 {
			return web.NewRequestError(errors.New("weekday must be between 1 and 7"), http.StatusBadRequest)
		}
		q.Set("weekday = ?", request.Weekday)
	}
	if request.StartTime != nil {
		q.Set("start_time = ?", request.StartTime)
	}
	if request.EndTime != nil {
		q.Set("end_time = ?", request.EndTime)
	}
	if request.Room != nil {
		q.Set("room = ?", request.Room)
	}
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	res, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating timetable entry"), http.StatusInternalServerError)
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
	return r.DeleteRow(ctx, "timetable", id)
}
