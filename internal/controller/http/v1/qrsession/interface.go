package qrsession

import (
	"context"

	"college/backend/internal/repository/postgres/qrsession"
)

type QRSession interface {
	Create(ctx context.Context, request qrsession.CreateRequest) (qrsession.CreateResponse, error)
	GetSheetById(ctx context.Context, id int) (qrsession.SheetResponse, error)
	GetActiveSheets(ctx context.Context) ([]qrsession.SheetResponse, error)
	GetList(ctx context.Context, filter qrsession.Filter) ([]qrsession.GetListResponse, int, error)
	Deactivate(ctx context.Context, id int) error
}
