// Package rowjson decodes report rows posted over HTTP or piped into the CLI.
package rowjson

import (
	"bytes"
	"errors"

	"github.com/goccy/go-json"
	"github.com/samber/lo"

	"ad-metrics-service/internal/devices/core/domain"
)

var ErrEmpty = errors.New("no rows in input")

// Row is the wire shape of one report row. Every field is loose: the
// aggregator decides what a usable value is.
type Row struct {
	Device           any `json:"device"`
	Impressions      any `json:"impressions"`
	Clicks           any `json:"clicks"`
	CostMicros       any `json:"cost_micros"`
	LocationCriteria any `json:"location_criteria"`
}

// Decode accepts `[...]` or `{"rows": [...]}`. Numbers stay json.Number so
// large counters survive.
func Decode(raw []byte) ([]domain.RawMetricRow, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, ErrEmpty
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	var rows []Row
	if trimmed[0] == '[' {
		if err := dec.Decode(&rows); err != nil {
			return nil, err
		}
	} else {
		var wrapped struct {
			Rows []Row `json:"rows"`
		}
		if err := dec.Decode(&wrapped); err != nil {
			return nil, err
		}
		rows = wrapped.Rows
	}

	return lo.Map(rows, func(r Row, _ int) domain.RawMetricRow {
		return domain.RawMetricRow{
			DeviceLabel:      deviceLabel(r.Device),
			Impressions:      r.Impressions,
			Clicks:           r.Clicks,
			CostMicros:       r.CostMicros,
			LocationCriteria: r.LocationCriteria,
		}
	}), nil
}

// Non-string labels become empty and the row is left unclassified.
func deviceLabel(v any) string {
	s, _ := v.(string)
	return s
}
