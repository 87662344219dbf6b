package qrsession

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"net/http"
	"time"

	"college/backend/foundation/web"
	"college/backend/internal/auth"
	"college/backend/internal/entity"
	"college/backend/internal/pkg/repository/postgresql"
	"college/backend/internal/repository/postgres"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
)

const tokenCachePrefix = "qr:token:"

type Repository struct {
	*postgresql.Database
	cache *redis.Client
}

func NewRepository(database *postgresql.Database, cache *redis.Client) *Repository {
	return &Repository{Database: database, cache: cache}
}

// GenerateToken returns a 32 character opaque hex token.
func GenerateToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "reading random bytes")
	}
	return hex.EncodeToString(buf), nil
}

// Create issues a QR session for one class meeting. Any prior active
// session for the same (teacher, subject) pair is deactivated in the same
// transaction, keeping the one-active invariant.
func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleTeacher, auth.RoleAdmin)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "SubjectID"); err != nil {
		return CreateResponse{}, err
	}

	duration := 30 * time.Minute
	if request.DurationMinutes != nil {
		if *request.DurationMinutes <= 0 {
			return CreateResponse{}, web.NewRequestError(errors.New("duration_minutes must be positive"), http.StatusBadRequest)
		}
		duration = time.Duration(*request.DurationMinutes) * time.Minute
	}

	var subject entity.Subject
	err = r.NewSelect().Model(&subject).Where("id = ? AND deleted_at IS NULL", *request.SubjectID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return CreateResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusBadRequest)
	}
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "selecting subject"), http.StatusInternalServerError)
	}

	teacherID := claims.UserId
	if claims.Role == auth.RoleAdmin && subject.TeacherID != nil {
		teacherID = *subject.TeacherID
	}

	token, err := GenerateToken()
	if err != nil {
		return CreateResponse{}, web.NewRequestError(err, http.StatusInternalServerError)
	}

	now := time.Now()
	expiresAt := now.Add(duration)

	var response CreateResponse
	response.TeacherID = teacherID
	response.SubjectID = *request.SubjectID
	response.Token = token
	response.StartsAt = now
	response.ExpiresAt = expiresAt
	response.Active = true
	response.CreatedAt = now
	response.CreatedBy = claims.UserId

	err = r.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewUpdate().
			Table("qr_session").
			Where("deleted_at IS NULL AND active = true AND teacher_id = ? AND subject_id = ?", teacherID, *request.SubjectID).
			Set("active = false").
			Set("updated_at = ?", now).
			Set("updated_by = ?", claims.UserId).
			Exec(ctx); err != nil {
			return errors.Wrap(err, "deactivating prior session")
		}

		if _, err := tx.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID); err != nil {
			return errors.Wrap(err, "creating qr session")
		}

		return nil
	})
	if err != nil {
		return CreateResponse{}, web.NewRequestError(err, http.StatusInternalServerError)
	}

	// Advisory fast path for the scan handler; the database stays
	// authoritative when the cache misses or is down.
	if r.cache != nil {
		r.cache.Set(ctx, tokenCachePrefix+token, response.ID, time.Until(expiresAt))
	}

	return response, nil
}

// GetActiveByToken resolves a presented token to its active session or
// postgres.ErrNotFound. Expiry is not checked here: the scan resolver
// distinguishes an expired session from an unknown token.
func (r Repository) GetActiveByToken(ctx context.Context, token string) (entity.QRSession, error) {
	var detail entity.QRSession

	query := r.NewSelect().Model(&detail).Where("deleted_at IS NULL AND active = true AND token = ?", token)

	if r.cache != nil {
		if id, err := r.cache.Get(ctx, tokenCachePrefix+token).Int(); err == nil {
			query = r.NewSelect().Model(&detail).Where("deleted_at IS NULL AND active = true AND id = ?", id)
		}
	}

	err := query.Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.QRSession{}, postgres.ErrNotFound
	}
	if err != nil {
		return entity.QRSession{}, errors.Wrap(err, "selecting qr session")
	}

	return detail, nil
}

func (r Repository) GetById(ctx context.Context, id int) (entity.QRSession, error) {
	var detail entity.QRSession

	err := r.NewSelect().Model(&detail).Where("id = ? AND deleted_at IS NULL", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.QRSession{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return entity.QRSession{}, web.NewRequestError(errors.Wrap(err, "selecting qr session"), http.StatusInternalServerError)
	}

	return detail, nil
}

// GetSheetById returns what the printable handout needs: the session with
// its subject and teacher names resolved.
func (r Repository) GetSheetById(ctx context.Context, id int) (SheetResponse, error) {
	if _, err := r.CheckClaims(ctx, auth.RoleTeacher, auth.RoleAdmin); err != nil {
		return SheetResponse{}, err
	}

	var detail SheetResponse

	err := r.QueryRowContext(ctx, `
		SELECT
			q.id,
			q.token,
			COALESCE(s.name, ''),
			COALESCE(u.full_name, ''),
			q.starts_at,
			q.expires_at
		FROM qr_session q
		LEFT JOIN subject s ON s.id = q.subject_id
		LEFT JOIN users u ON u.id = q.teacher_id
		WHERE q.deleted_at IS NULL AND q.id = $1
	`, id).Scan(
		&detail.ID,
		&detail.Token,
		&detail.Subject,
		&detail.Teacher,
		&detail.StartsAt,
		&detail.ExpiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return SheetResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return SheetResponse{}, web.NewRequestError(errors.Wrap(err, "selecting qr session sheet"), http.StatusInternalServerError)
	}

	return detail, nil
}

// GetActiveSheets returns the handout rows for every currently active
// session visible to the caller (admins see all, teachers their own).
func (r Repository) GetActiveSheets(ctx context.Context) ([]SheetResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleTeacher, auth.RoleAdmin)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT
			q.id,
			q.token,
			COALESCE(s.name, ''),
			COALESCE(u.full_name, ''),
			q.starts_at,
			q.expires_at
		FROM qr_session q
		LEFT JOIN subject s ON s.id = q.subject_id
		LEFT JOIN users u ON u.id = q.teacher_id
		WHERE q.deleted_at IS NULL AND q.active = true AND q.expires_at > now()
	`
	args := []interface{}{}

	if claims.Role == auth.RoleTeacher {
		query += " AND q.teacher_id = $1"
		args = append(args, claims.UserId)
	}

	query += " ORDER BY q.created_at DESC"

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting active qr sessions"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []SheetResponse

	for rows.Next() {
		var detail SheetResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.Token,
			&detail.Subject,
			&detail.Teacher,
			&detail.StartsAt,
			&detail.ExpiresAt); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning active qr sessions"), http.StatusInternalServerError)
		}
		list = append(list, detail)
	}

	return list, nil
}

// GetList returns the caller's sessions, newest first. Admins see all
// sessions, teachers only their own.
func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleTeacher, auth.RoleAdmin)
	if err != nil {
		return nil, 0, err
	}

	q := r.NewSelect().
		TableExpr("qr_session AS q").
		ColumnExpr("q.id, q.teacher_id, u.full_name, q.subject_id, s.name, q.token, q.starts_at, q.expires_at").
		ColumnExpr("(q.active AND q.expires_at > now()) AS active").
		Join("LEFT JOIN subject s ON s.id = q.subject_id").
		Join("LEFT JOIN users u ON u.id = q.teacher_id").
		Where("q.deleted_at IS NULL")

	if claims.Role == auth.RoleTeacher {
		q = q.Where("q.teacher_id = ?", claims.UserId)
	}
	if filter.SubjectID != nil {
		q = q.Where("q.subject_id = ?", *filter.SubjectID)
	}
	if filter.ActiveOnly != nil && *filter.ActiveOnly {
		q = q.Where("q.active = true AND q.expires_at > now()")
	}

	q = q.OrderExpr("q.created_at DESC")

	if filter.Page != nil && filter.Limit != nil {
		offset := (*filter.Page - 1) * (*filter.Limit)
		filter.Offset = &offset
	}
	if filter.Limit != nil {
		q = q.Limit(*filter.Limit)
	}
	if filter.Offset != nil {
		q = q.Offset(*filter.Offset)
	}

	var list []GetListResponse

	count, err := q.ScanAndCount(ctx, &list)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting qr sessions"), http.StatusInternalServerError)
	}

	return list, count, nil
}

// Deactivate retires a session before its natural expiry.
func (r Repository) Deactivate(ctx context.Context, id int) error {
	claims, err := r.CheckClaims(ctx, auth.RoleTeacher, auth.RoleAdmin)
	if err != nil {
		return err
	}

	q := r.NewUpdate().
		Table("qr_session").
		Where("deleted_at IS NULL AND id = ?", id).
		Set("active = false").
		Set("updated_at = ?", time.Now()).
		Set("updated_by = ?", claims.UserId)

	if claims.Role == auth.RoleTeacher {
		q = q.Where("teacher_id = ?", claims.UserId)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "deactivating qr session"), http.StatusInternalServerError)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}

	return nil
}
