package ports

import (
	"context"
	"time"

	"ad-metrics-service/internal/devices/core/domain"
)

// ReportSourcePort is the third-party ads API.
type ReportSourcePort interface {
	FetchDeviceRows(ctx context.Context, q domain.ReportQuery) ([]domain.RawMetricRow, error)
}

type StoredRowsFilter struct {
	CustomerID string
	From       time.Time
	To         time.Time
}

// StoredRowsReaderPort reads snapshotted rows back out of storage.
type StoredRowsReaderPort interface {
	QueryRows(ctx context.Context, f StoredRowsFilter) ([]domain.RawMetricRow, error)
}

// RowCachePort caches upstream rows per query.
//
//	hit = true,  err = nil  -> rows served from cache
//	hit = false, err = nil  -> miss
//	hit = false, err != nil -> cache unavailable
type RowCachePort interface {
	Get(ctx context.Context, key string) (rows []domain.RawMetricRow, hit bool, err error)
	Set(ctx context.Context, key string, rows []domain.RawMetricRow) error
}
