package domain

import "time"

// StoredRow is a report row snapshotted for later re-aggregation. Numeric
// fields keep the raw value that was posted.
type StoredRow struct {
	CustomerID       string
	ReportDate       time.Time // UTC day
	DeviceLabel      string
	Impressions      any
	Clicks           any
	CostMicros       any
	LocationCriteria any
	DedupeKey        string
}
