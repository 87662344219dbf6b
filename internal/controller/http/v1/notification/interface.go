package notification

import (
	"context"

	"college/backend/internal/entity"
	"college/backend/internal/repository/postgres/notification"
)

type Notification interface {
	GetList(ctx context.Context, filter notification.Filter) ([]entity.Notification, int, error)
	Create(ctx context.Context, request notification.CreateRequest) (int, error)
	MarkRead(ctx context.Context, id int) error
	Delete(ctx context.Context, id int) error
}
