package attendance

import (
	"context"

	"college/backend/internal/entity"
	"college/backend/internal/repository/postgres/attendance"
)

type Attendance interface {
	ResolveScan(ctx context.Context, session entity.QRSession, request attendance.ScanRequest) (attendance.ScanResponse, error)
	GetList(ctx context.Context, filter attendance.Filter) ([]attendance.GetListResponse, int, error)
	GetDetailById(ctx context.Context, id int) (attendance.GetDetailByIdResponse, error)
	CreateManual(ctx context.Context, request attendance.CreateManualRequest) (attendance.ScanResponse, error)
	UpdateColumns(ctx context.Context, request attendance.UpdateRequest) error
	Delete(ctx context.Context, id int) error
}

type QRSession interface {
	GetActiveByToken(ctx context.Context, token string) (entity.QRSession, error)
}
