package postgres

import (
	"context"
	"fmt"

	"ad-metrics-service/internal/pgdb"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS device_report_rows (
    id                BIGSERIAL PRIMARY KEY,
    customer_id       TEXT        NOT NULL,
    report_date       DATE        NOT NULL,
    device_label      TEXT        NOT NULL DEFAULT '',
    impressions       TEXT,
    clicks            TEXT,
    cost_micros       TEXT,
    location_criteria TEXT,
    dedupe_key        TEXT        NOT NULL UNIQUE,
    created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE INDEX IF NOT EXISTS device_report_rows_customer_date_idx
    ON device_report_rows (customer_id, report_date)`,
}

// EnsureSchema creates the snapshot table when it is missing.
func EnsureSchema(ctx context.Context, db pgdb.Execer) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
