package ports

import (
	"context"

	"ad-metrics-service/internal/rows/core/domain"
)

type RowRepositoryPort interface {
	// InsertRow:
	//   created = true,  err = nil  -> new record
	//   created = false, err = nil  -> duplicate dedupe key
	//   created = false, err != nil -> DB error
	InsertRow(ctx context.Context, r *domain.StoredRow) (created bool, err error)
}
