package timetable

import (
	"context"

	"college/backend/internal/repository/postgres/timetable"
)

type Timetable interface {
	GetList(ctx context.Context, filter timetable.Filter) ([]timetable.GetListResponse, int, error)
	Create(ctx context.Context, request timetable.CreateRequest) (timetable.CreateResponse, error)
	UpdateColumns(ctx context.Context, request timetable.UpdateRequest) error
	Delete(ctx context.Context, id int) error
}
