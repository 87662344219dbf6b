package notification

import (
	"context"
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

// GetList returns the caller's own notifications, newest first.
func (r Repository) GetList(ctx context.Context, filter Filter) ([]entity.Notification, int, error) {
	claims, err := r.CheckClaims(ctx, auth.Roles...)
	if err != nil {
		return nil, 0, err
	}

	var list []entity.Notification

	q := r.NewSelect().Model(&list).
		Where("deleted_at IS NULL AND recipient_id = ?", claims.UserId).
		Order("created_at DESC")

	if filter.UnreadOnly != nil && *filter.UnreadOnly {
		q.Where("read = false")
	}
	if filter.Limit != nil {
		q.Limit(*filter.Limit)
	}
	if filter.Offset != nil {
		q.Offset(*filter.Offset)
	}

	count, err := q.ScanAndCount(ctx)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting notifications"), http.StatusInternalServerError)
	}

	return list, count, nil
}

// Create sends a notification to one user, or broadcasts to every user of a
// role when RecipientID is absent and Role is set.
func (r Repository) Create(ctx context.Context, request CreateRequest) (int, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin, auth.RoleTeacher)
	if err != nil {
		return 0, err
	}

	if err := r.ValidateStruct(&request, "Title", "Body"); err != nil {
		return 0, err
	}

	if request.RecipientID == nil && request.Role == nil {
		return 0, web.NewRequestError(errors.New("recipient_id or role is required"), http.StatusBadRequest)
	}

	var recipients []int

	if request.RecipientID != nil {
		recipients = append(recipients, *request.RecipientID)
	} else {
		if !auth.ValidRole(*request.Role) {
			return 0, web.NewRequestError(errors.New("incorrect role. role should be ADMIN, TEACHER, STUDENT, PARENT or ALUMNI"), http.StatusBadRequest)
		}
		rows, err := r.QueryContext(ctx, `SELECT id FROM users WHERE deleted_at IS NULL AND role = $1`, *request.Role)
		if err != nil {
			return 0, web.NewRequestError(errors.Wrap(err, "selecting recipients"), http.StatusInternalServerError)
		}
		defer rows.Close()
		for rows.Next() {
			var id int
			if err = rows.Scan(&id); err != nil {
				return 0, web.NewRequestError(errors.Wrap(err, "scanning recipient"), http.StatusInternalServerError)
			}
			recipients = append(recipients, id)
		}
	}

	unread := false
	now := time.Now()

	var models []entity.Notification
	for _, id := range recipients {
		recipientID := id
		models = append(models, entity.Notification{
			BasicEntity: entity.BasicEntity{
				CreatedAt: &now,
				CreatedBy: &claims.UserId,
			},
			RecipientID: &recipientID,
			Title:       request.Title,
			Body:        request.Body,
			Read:        &unread,
		})
	}

	if len(models) == 0 {
		return 0, nil
	}

	_, err = r.NewInsert().Model(&models).Exec(ctx)
	if err != nil {
		return 0, web.NewRequestError(errors.Wrap(err, "creating notifications"), http.StatusInternalServerError)
	}

	return len(models), nil
}

// MarkRead flags one of the caller's notifications as read.
func (r Repository) MarkRead(ctx context.Context, id int) error {
	claims, err := r.CheckClaims(ctx, auth.Roles...)
	if err != nil {
		return err
	}

	res, err := r.NewUpdate().Table("notification").
		Set("read = true").
		Set("updated_at = ?", time.Now()).
		Set("updated_by = ?", claims.UserId).
		Where("deleted_at IS NULL AND id = ? AND recipient_id = ?", id, claims.UserId).
		Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "marking notification read"), http.StatusInternalServerError)
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
	return r.DeleteRow(ctx, "notification", id)
}
