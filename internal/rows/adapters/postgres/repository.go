package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"ad-metrics-service/internal/pgdb"
	"ad-metrics-service/internal/rows/core/domain"
	"ad-metrics-service/internal/rows/core/ports"
)

type RowRepository struct {
	db pgdb.Execer
}

func NewRowRepository(db pgdb.Execer) *RowRepository {
	return &RowRepository{db: db}
}

var _ ports.RowRepositoryPort = (*RowRepository)(nil)

const insertRowSQL = `
INSERT INTO device_report_rows (
    customer_id,
    report_date,
    device_label,
    impressions,
    clicks,
    cost_micros,
    location_criteria,
    dedupe_key
) VALUES (
    $1, $2, $3, $4,
    $5, $6, $7, $8
)
ON CONFLICT (dedupe_key) DO NOTHING;
`

func (r *RowRepository) InsertRow(ctx context.Context, row *domain.StoredRow) (bool, error) {
	res, err := r.db.ExecContext(ctx, insertRowSQL,
		row.CustomerID,
		row.ReportDate.Format("2006-01-02"),
		row.DeviceLabel,
		toText(row.Impressions),
		toText(row.Clicks),
		toText(row.CostMicros),
		toText(row.LocationCriteria),
		row.DedupeKey,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return false, fmt.Errorf("insert device row (%s): %w", pqErr.Code.Name(), err)
		}
		return false, fmt.Errorf("insert device row: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	// 0 rows -> ON CONFLICT hit
	return n > 0, nil
}

// toText keeps the value as the caller sent it. nil stays NULL.
func toText(v any) any {
	s, ok := domain.RawText(v)
	if !ok {
		return nil
	}
	return s
}
