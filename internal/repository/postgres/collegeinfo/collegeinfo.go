package collegeinfo

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"college/backend/foundation/web"
	"college/backend/internal/auth"
	"college/backend/internal/entity"
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

// Get returns the single college profile row.
func (r Repository) Get(ctx context.Context) (entity.CollegeInfo, error) {
	if _, err := r.CheckClaims(ctx, auth.Roles...); err != nil {
		return entity.CollegeInfo{}, err
	}

	var detail entity.CollegeInfo

	err := r.NewSelect().Model(&detail).Where("deleted_at IS NULL").Order("id").Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.CollegeInfo{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return entity.CollegeInfo{}, web.NewRequestError(errors.Wrap(err, "selecting college info"), http.StatusInternalServerError)
	}

	return detail, nil
}

func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) error {
	if err := r.ValidateStruct(&request, "ID"); err != nil {
		return err
	}

	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	q := r.NewUpdate().Table("college_info").Where("deleted_at IS NULL AND id = ? ", request.ID)

	if request.CollegeName != nil {
		q.Set("college_name = ?", request.CollegeName)
	}
	if request.Url != nil {
		q.Set("url = ?", request.Url)
	}
	if request.AcademicYear != nil {
		q.Set("academic_year = ?", request.AcademicYear)
	}
	if request.ContactEmail != nil {
		q.Set("contact_email = ?", request.ContactEmail)
	}
	if request.ContactPhone != nil {
		q.Set("contact_phone = ?", request.ContactPhone)
	}
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	res, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating college info"), http.StatusInternalServerError)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}

	return nil
}
