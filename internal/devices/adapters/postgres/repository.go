package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"ad-metrics-service/internal/devices/core/domain"
	"ad-metrics-service/internal/devices/core/ports"
	"ad-metrics-service/internal/pgdb"
)

type StoredRowsRepository struct {
	db pgdb.Querier
}

func NewStoredRowsRepository(db pgdb.Querier) *StoredRowsRepository {
	return &StoredRowsRepository{db: db}
}

var _ ports.StoredRowsReaderPort = (*StoredRowsRepository)(nil)

const queryRowsSQL = `
SELECT
    device_label,
    impressions,
    clicks,
    cost_micros,
    location_criteria
FROM device_report_rows
WHERE customer_id = $1
  AND report_date BETWEEN $2 AND $3
ORDER BY report_date, id`

// QueryRows returns rows exactly as stored; numeric columns are text and
// NULLs come back as nil so the aggregator sees what the source sent.
func (r *StoredRowsRepository) QueryRows(ctx context.Context, f ports.StoredRowsFilter) ([]domain.RawMetricRow, error) {
	rows, err := r.db.QueryContext(ctx, queryRowsSQL,
		f.CustomerID,
		f.From.Format(domain.DateLayout),
		f.To.Format(domain.DateLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("query device rows: %w", err)
	}
	defer rows.Close()

	var out []domain.RawMetricRow
	for rows.Next() {
		var device, impressions, clicks, cost, location sql.NullString

		if err := rows.Scan(&device, &impressions, &clicks, &cost, &location); err != nil {
			return nil, fmt.Errorf("scan device row: %w", err)
		}

		out = append(out, domain.RawMetricRow{
			DeviceLabel:      device.String,
			Impressions:      nullable(impressions),
			Clicks:           nullable(clicks),
			CostMicros:       nullable(cost),
			LocationCriteria: nullable(location),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate device rows: %w", err)
	}

	return out, nil
}

func nullable(s sql.NullString) any {
	if !s.Valid {
		return nil
	}
	return s.String
}
