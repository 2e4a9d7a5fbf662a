package usecase

import (
	"context"

	"ad-metrics-service/internal/devices/core/aggregator"
	"ad-metrics-service/internal/devices/core/domain"
	"ad-metrics-service/internal/devices/core/ports"
	"ad-metrics-service/internal/telemetry"
)

// GetStoredReportUseCase aggregates rows previously snapshotted to storage.
type GetStoredReportUseCase struct {
	reader ports.StoredRowsReaderPort
}

func NewGetStoredReportUseCase(reader ports.StoredRowsReaderPort) *GetStoredReportUseCase {
	return &GetStoredReportUseCase{reader: reader}
}

func (uc *GetStoredReportUseCase) Execute(ctx context.Context, in ReportQueryInput) (*domain.DeviceReport, error) {
	q, err := in.toQuery()
	if err != nil {
		return nil, err
	}

	rows, err := uc.reader.QueryRows(ctx, ports.StoredRowsFilter{
		CustomerID: q.CustomerID,
		From:       q.From,
		To:         q.To,
	})
	if err != nil {
		return nil, err
	}

	summary := aggregator.Aggregate(rows)
	telemetry.RecordSummary("storage", summary)

	return domain.NewDeviceReport(summary), nil
}
