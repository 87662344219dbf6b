package collegeinfo

import (
	"context"

	"college/backend/internal/entity"
	"college/backend/internal/repository/postgres/collegeinfo"
)

type CollegeInfo interface {
	Get(ctx context.Context) (entity.CollegeInfo, error)
	UpdateColumns(ctx context.Context, request collegeinfo.UpdateRequest) error
}
