// Package telemetry holds the Prometheus collectors of the service.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"ad-metrics-service/internal/devices/core/domain"
)

var (
	// Aggregation
	RowsAggregated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "device_report_rows_aggregated_total",
			Help: "Report rows folded into a device bucket",
		},
		[]string{"source", "category"},
	)

	RowsUnclassified = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "device_report_rows_unclassified_total",
			Help: "Report rows whose device label matched no bucket",
		},
		[]string{"source"},
	)

	// Ads API
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ads_api_requests_total",
			Help: "Calls to the ads API by result",
		},
		[]string{"result"}, // success, failure, rejected
	)

	UpstreamDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ads_api_request_duration_seconds",
			Help:    "Ads API call latency",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "0 closed, 1 half-open, 2 open",
		},
		[]string{"name"},
	)

	// Row cache
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "device_rows_cache_lookups_total",
			Help: "Row cache lookups by result",
		},
		[]string{"result"}, // hit, miss, error
	)

	// Ingestion
	RowsIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "device_report_rows_ingested_total",
			Help: "Rows written to storage by outcome",
		},
		[]string{"outcome"}, // created, duplicate
	)

	// HTTP
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route and status",
		},
		[]string{"method", "route", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)
)

// RecordSummary exports the row counts of one aggregation.
func RecordSummary(source string, s domain.DeviceSummary) {
	for _, c := range domain.Categories {
		if n := s.RowCounts[c]; n > 0 {
			RowsAggregated.WithLabelValues(source, c.String()).Add(float64(n))
		}
	}
	RowsUnclassified.WithLabelValues(source).Add(float64(s.Unclassified))
}
