package subject

import (
	"context"

	"college/backend/internal/repository/postgres/subject"
)

type Subject interface {
	GetList(ctx context.Context, filter subject.Filter) ([]subject.GetListResponse, int, error)
	GetDetailById(ctx context.Context, id int) (subject.GetListResponse, error)
	Create(ctx context.Context, request subject.CreateRequest) (subject.CreateResponse, error)
	UpdateAll(ctx context.Context, request subject.UpdateRequest) error
	UpdateColumns(ctx context.Context, request subject.UpdateRequest) error
	Delete(ctx context.Context, id int) error
}
