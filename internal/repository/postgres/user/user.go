package user

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
	"college/backend/internal/service"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) GetByLogin(ctx context.Context, login string) (entity.User, error) {
	var detail entity.User

	err := r.NewSelect().Model(&detail).Where("login = ? AND deleted_at IS NULL", login).Scan(ctx)
	if err != nil {
		return entity.User{}, &web.Error{
			Err:    errors.New("user not found"),
			Status: http.StatusUnauthorized,
		}
	}

	return detail, nil
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin, auth.RoleTeacher)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `
			WHERE
				u.deleted_at IS NULL
			`

	if filter.Search != nil {
		search := strings.Replace(*filter.Search, " ", "", -1)
		search = strings.Replace(search, "'", "''", -1)

		whereQuery += fmt.Sprintf(` AND
		(u.login ilike '%s' OR u.full_name ilike '%s')`, "%"+search+"%", "%"+search+"%")
	}
	if filter.Role != nil {
		role := strings.ToUpper(strings.Replace(*filter.Role, "'", "''", -1))
		whereQuery += fmt.Sprintf(` AND u.role = '%s'`, role)
	}
	if filter.DepartmentID != nil {
		whereQuery += fmt.Sprintf(` AND u.department_id = %d`, *filter.DepartmentID)
	}
	if filter.GroupName != nil {
		group := strings.Replace(*filter.GroupName, "'", "''", -1)
		whereQuery += fmt.Sprintf(` AND u.group_name = '%s'`, group)
	}
	orderQuery := "ORDER BY u.created_at desc"

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
			u.id,
			u.login,
			u.full_name,
			u.role,
			u.department_id,
			d.name,
			u.group_name,
			u.phone,
			u.email
		FROM users u
		LEFT JOIN department d ON d.id=u.department_id

		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, web.NewRequestError(postgres.ErrNotFound, http.StatusBadRequest)
	}
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting users"), http.StatusInternalServerError)
	}

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.Login,
			&detail.FullName,
			&detail.Role,
			&detail.DepartmentID,
			&detail.Department,
			&detail.GroupName,
			&detail.Phone,
			&detail.Email); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning user list"), http.StatusInternalServerError)
		}

		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(u.id)
		FROM  users u
			%s
	`, whereQuery)

	countRows, err := r.QueryContext(ctx, countQuery)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting user count"), http.StatusInternalServerError)
	}

	count := 0

	for countRows.Next() {
		if err = countRows.Scan(&count); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning user count"), http.StatusInternalServerError)
		}
	}

	return list, count, nil
}

func (r Repository) GetDetailById(ctx context.Context, id int) (GetDetailByIdResponse, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin, auth.RoleTeacher)
	if err != nil {
		return GetDetailByIdResponse{}, err
	}

	var detail GetDetailByIdResponse

	err = r.QueryRowContext(ctx, `
		SELECT
			u.id,
			u.login,
			u.full_name,
			u.role,
			u.department_id,
			d.name,
			u.group_name,
			u.parent_id,
			u.graduation_year,
			u.phone,
			u.email
		FROM
		    users u
		LEFT JOIN department d ON u.department_id = d.id
		WHERE u.deleted_at IS NULL AND u.id = $1
	`, id).Scan(
		&detail.ID,
		&detail.Login,
		&detail.FullName,
		&detail.Role,
		&detail.DepartmentID,
		&detail.Department,
		&detail.GroupName,
		&detail.ParentID,
		&detail.GraduationYear,
		&detail.Phone,
		&detail.Email,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDetailByIdResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "selecting user detail"), http.StatusInternalServerError)
	}

	return detail, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "Login", "Password", "FullName", "Role"); err != nil {
		return CreateResponse{}, err
	}

	loginUsed := true
	if err := r.QueryRowContext(ctx,
		`SELECT CASE WHEN (SELECT id FROM users WHERE login = $1 AND deleted_at IS NULL) IS NOT NULL THEN true ELSE false END`,
		*request.Login).Scan(&loginUsed); err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "login check"), http.StatusInternalServerError)
	}
	if loginUsed {
		return CreateResponse{}, web.NewRequestError(errors.New("login is used"), http.StatusBadRequest)
	}

	role := strings.ToUpper(*request.Role)
	if !auth.ValidRole(role) {
		return CreateResponse{}, web.NewRequestError(errors.New("incorrect role. role should be ADMIN, TEACHER, STUDENT, PARENT or ALUMNI"), http.StatusBadRequest)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*request.Password), bcrypt.DefaultCost)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "hashing password"), http.StatusInternalServerError)
	}
	hashedPassword := string(hash)

	var response CreateResponse
	response.Login = request.Login
	response.Password = &hashedPassword
	response.Role = &role
	response.FullName = request.FullName
	response.DepartmentID = request.DepartmentID
	response.GroupName = request.GroupName
	response.ParentID = request.ParentID
	response.GraduationYear = request.GraduationYear
	response.Phone = request.Phone
	response.Email = request.Email
	response.CreatedAt = time.Now()
	response.CreatedBy = claims.UserId

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating user"), http.StatusInternalServerError)
	}

	response.Password = nil

	return response, nil
}

// CreateByExcel bulk creates students from an uploaded workbook. Rows that
// fail keep their row number in the response so the admin can fix the sheet
// instead of guessing.
func (r Repository) CreateByExcel(ctx context.Context, request ExcelRequest) (int, []int, error) {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin); err != nil {
		return 0, nil, err
	}

	if request.Excel == nil {
		return 0, nil, web.NewRequestError(errors.New("excel file is required"), http.StatusBadRequest)
	}

	students, err := service.ReadStudentsFromExcel(request.Excel)
	if err != nil {
		return 0, nil, web.NewRequestError(errors.Wrap(err, "reading excel"), http.StatusBadRequest)
	}

	created := 0
	var failedRows []int

	for i, s := range students {
		req := CreateRequest{
			Login:     str(s.Login),
			Password:  str(s.Password),
			FullName:  str(s.FullName),
			Role:      str(auth.RoleStudent),
			GroupName: str(s.GroupName),
			Phone:     str(s.Phone),
			Email:     str(s.Email),
		}
		if s.DepartmentID != 0 {
			req.DepartmentID = &s.DepartmentID
		}

		if _, err := r.Create(ctx, req); err != nil {
			// first sheet row is the header, data starts at row 2
			failedRows = append(failedRows, i+2)
			continue
		}
		created++
	}

	return created, failedRows, nil
}

// ExportStudents writes the current student list to an xlsx file and
// returns its path.
func (r Repository) ExportStudents(ctx context.Context) (string, error) {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin); err != nil {
		return "", err
	}

	rows, err := r.QueryContext(ctx, `
		SELECT
			u.login,
			u.full_name,
			COALESCE(d.name, ''),
			COALESCE(u.group_name, ''),
			COALESCE(u.phone, ''),
			COALESCE(u.email, '')
		FROM users u
		LEFT JOIN department d ON d.id = u.department_id
		WHERE u.deleted_at IS NULL AND u.role = 'STUDENT'
		ORDER BY u.full_name
	`)
	if err != nil {
		return "", web.NewRequestError(errors.Wrap(err, "selecting students for export"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var students []service.StudentRow

	for rows.Next() {
		var s service.StudentRow
		if err = rows.Scan(&s.Login, &s.FullName, &s.Department, &s.GroupName, &s.Phone, &s.Email); err != nil {
			return "", web.NewRequestError(errors.Wrap(err, "scanning student for export"), http.StatusInternalServerError)
		}
		students = append(students, s)
	}

	filename := fmt.Sprintf("students_%s.xlsx", time.Now().Format("2006-01-02"))
	if err := service.WriteStudentsToExcel(students, filename); err != nil {
		return "", web.NewRequestError(errors.Wrap(err, "writing students excel"), http.StatusInternalServerError)
	}

	return filename, nil
}

func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) error {
	if err := r.ValidateStruct(&request, "ID"); err != nil {
		return err
	}

	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	q := r.NewUpdate().Table("users").Where("deleted_at IS NULL AND id = ? ", request.ID)

	if request.Login != nil {
		loginUsed := true
		if err := r.QueryRowContext(ctx,
			`SELECT CASE WHEN (SELECT id FROM users WHERE login = $1 AND deleted_at IS NULL AND id != $2) IS NOT NULL THEN true ELSE false END`,
			*request.Login, request.ID).Scan(&loginUsed); err != nil {
			return web.NewRequestError(errors.Wrap(err, "login check"), http.StatusInternalServerError)
		}
		if loginUsed {
			return web.NewRequestError(errors.New("login is used"), http.StatusBadRequest)
		}
		q.Set("login = ?", request.Login)
	}

	if request.Role != nil {
		role := strings.ToUpper(*request.Role)
		if !auth.ValidRole(role) {
			return web.NewRequestError(errors.New("incorrect role. role should be ADMIN, TEACHER, STUDENT, PARENT or ALUMNI"), http.StatusBadRequest)
		}
		q.Set("role = ?", role)
	}

	if request.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*request.Password), bcrypt.DefaultCost)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "hashing password"), http.StatusInternalServerError)
		}
		q.Set("password = ?", string(hash))
	}

	if request.FullName != nil {
		q.Set("full_name = ?", request.FullName)
	}
	if request.DepartmentID != nil {
		q.Set("department_id = ?", request.DepartmentID)
	}
	if request.GroupName != nil {
		q.Set("group_name = ?", request.GroupName)
	}
	if request.ParentID != nil {
		q.Set("parent_id = ?", request.ParentID)
	}
	if request.GraduationYear != nil {
		q.Set("graduation_year = ?", request.GraduationYear)
	}
	if request.Phone != nil {
		q.Set("phone = ?", request.Phone)
	}
	if request.Email != nil {
		q.Set("email = ?", request.Email)
	}
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	res, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating user"), http.StatusInternalServerError)
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
	return r.DeleteRow(ctx, "users", id)
}

func str(s string) *string {
	return &s
}
