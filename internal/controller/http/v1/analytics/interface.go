package analytics

import (
	"context"

	"college/backend/internal/repository/postgres/analytics"
)

type Analytics interface {
	GetAnalytics(ctx context.Context, filter analytics.Filter) (interface{}, error)
}
