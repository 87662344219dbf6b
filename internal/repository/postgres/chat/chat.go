package chat

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

// GetHistory returns the conversation between the caller and one peer,
// oldest first.
func (r Repository) GetHistory(ctx context.Context, filter Filter) ([]entity.ChatMessage, int, error) {
	claims, err := r.CheckClaims(ctx, auth.Roles...)
	if err != nil {
		return nil, 0, err
	}

	if filter.PeerID == nil {
		return nil, 0, web.NewRequestError(errors.New("peer_id is required"), http.StatusBadRequest)
	}

	var list []entity.ChatMessage

	q := r.NewSelect().Model(&list).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			claims.UserId, *filter.PeerID, *filter.PeerID, claims.UserId).
		Order("created_at ASC")

	if filter.Limit != nil {
		q.Limit(*filter.Limit)
	}
	if filter.Offset != nil {
		q.Offset(*filter.Offset)
	}

	count, err := q.ScanAndCount(ctx)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting chat history"), http.StatusInternalServerError)
	}

	return list, count, nil
}

func (r Repository) Send(ctx context.Context, request SendRequest) (entity.ChatMessage, error) {
	claims, err := r.CheckClaims(ctx, auth.Roles...)
	if err != nil {
		return entity.ChatMessage{}, err
	}

	if err := r.ValidateStruct(&request, "RecipientID", "Body"); err != nil {
		return entity.ChatMessage{}, err
	}

	recipientExists := false
	if err := r.QueryRowContext(ctx,
		`SELECT CASE WHEN (SELECT id FROM users WHERE id = $1 AND deleted_at IS NULL) IS NOT NULL THEN true ELSE false END`,
		*request.RecipientID).Scan(&recipientExists); err != nil {
		return entity.ChatMessage{}, web.NewRequestError(errors.Wrap(err, "recipient check"), http.StatusInternalServerError)
	}
	if !recipientExists {
		return entity.ChatMessage{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}

	now := time.Now()
	msg := entity.ChatMessage{
		SenderID:    &claims.UserId,
		RecipientID: request.RecipientID,
		Body:        request.Body,
		CreatedAt:   &now,
	}

	_, err = r.NewInsert().Model(&msg).Returning("id").Exec(ctx, &msg.ID)
	if err != nil {
		return entity.ChatMessage{}, web.NewRequestError(errors.Wrap(err, "sending message"), http.StatusInternalServerError)
	}

	return msg, nil
}
