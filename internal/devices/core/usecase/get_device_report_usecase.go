package usecase

import (
	"context"
	"fmt"

	"ad-metrics-service/internal/devices/core/aggregator"
	"ad-metrics-service/internal/devices/core/domain"
	"ad-metrics-service/internal/devices/core/ports"
	"ad-metrics-service/internal/logging"
	"ad-metrics-service/internal/telemetry"
)

// GetDeviceReportUseCase relays a query to the ads API and aggregates the
// answer. cache may be nil.
type GetDeviceReportUseCase struct {
	source ports.ReportSourcePort
	cache  ports.RowCachePort
}

func NewGetDeviceReportUseCase(source ports.ReportSourcePort, cache ports.RowCachePort) *GetDeviceReportUseCase {
	return &GetDeviceReportUseCase{source: source, cache: cache}
}

func (uc *GetDeviceReportUseCase) Execute(ctx context.Context, in ReportQueryInput) (*domain.DeviceReport, error) {
	q, err := in.toQuery()
	if err != nil {
		return nil, err
	}

	rows, err := uc.rows(ctx, q)
	if err != nil {
		return nil, err
	}

	summary := aggregator.Aggregate(rows)
	telemetry.RecordSummary("ads_api", summary)

	logging.Ctx(ctx).Info().
		Str("customer_id", q.CustomerID).
		Int("rows", len(rows)).
		Int("unclassified", summary.Unclassified).
		Msg("device report built")

	return domain.NewDeviceReport(summary), nil
}

func (uc *GetDeviceReportUseCase) rows(ctx context.Context, q domain.ReportQuery) ([]domain.RawMetricRow, error) {
	key := CacheKey(q)

	if uc.cache != nil {
		rows, hit, err := uc.cache.Get(ctx, key)
		switch {
		case err != nil:
			telemetry.CacheLookups.WithLabelValues("error").Inc()
			logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("row cache lookup failed")
		case hit:
			telemetry.CacheLookups.WithLabelValues("hit").Inc()
			return rows, nil
		default:
			telemetry.CacheLookups.WithLabelValues("miss").Inc()
		}
	}

	rows, err := uc.source.FetchDeviceRows(ctx, q)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("customer_id", q.CustomerID).Msg("ads api query failed")
		return nil, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, key, rows); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("row cache store failed")
		}
	}

	return rows, nil
}

// CacheKey identifies the upstream answer for q.
func CacheKey(q domain.ReportQuery) string {
	return fmt.Sprintf("devices:rows:%s:%s:%s",
		q.CustomerID,
		q.From.Format(domain.DateLayout),
		q.To.Format(domain.DateLayout),
	)
}
