package usecase

import (
	"context"

	"ad-metrics-service/internal/devices/core/aggregator"
	"ad-metrics-service/internal/devices/core/domain"
	"ad-metrics-service/internal/logging"
	"ad-metrics-service/internal/telemetry"
)

// SummarizeRowsUseCase aggregates rows the caller already holds.
type SummarizeRowsUseCase struct{}

func NewSummarizeRowsUseCase() *SummarizeRowsUseCase {
	return &SummarizeRowsUseCase{}
}

func (uc *SummarizeRowsUseCase) Execute(ctx context.Context, rows []domain.RawMetricRow) *domain.DeviceReport {
	summary := aggregator.Aggregate(rows)
	telemetry.RecordSummary("inline", summary)

	logging.Ctx(ctx).Debug().
		Int("rows", len(rows)).
		Int("unclassified", summary.Unclassified).
		Msg("summarized inline rows")

	return domain.NewDeviceReport(summary)
}
