// Package aggregator folds raw report rows into per-device totals.
//
// The fold is pure: every call starts from a zero summary, reads its input
// without modifying it, and never fails. Rows it cannot classify are counted
// and otherwise ignored; numeric fields it cannot parse count as zero.
package aggregator

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"ad-metrics-service/internal/devices/core/domain"

	"github.com/spf13/cast"
)

// RequestRatio converts impressions into the estimated ad request count.
const RequestRatio = 0.8

// Checked in order, first hit wins.
var categoryMatchers = []struct {
	category domain.Category
	needles  []string
}{
	{domain.Android, []string{"android"}},
	{domain.IOS, []string{"ios", "iphone", "ipad"}},
	{domain.Desktop, []string{"desktop"}},
	{domain.Tablet, []string{"tablet"}},
}

// Classify maps a vendor device label to a bucket. ok is false for empty
// labels and labels that match no category.
func Classify(label string) (c domain.Category, ok bool) {
	if label == "" {
		return 0, false
	}
	lower := strings.ToLower(label)
	for _, m := range categoryMatchers {
		for _, needle := range m.needles {
			if strings.Contains(lower, needle) {
				return m.category, true
			}
		}
	}
	return 0, false
}

// maxCount is 2^63, the first float that no longer fits an int64.
const maxCount = float64(1 << 63)

// ParseCount reads a non-negative count out of whatever the source sent.
// Strings and JSON numbers share one rule: a decimal integer is taken as is,
// otherwise a finite decimal or exponent form is truncated toward zero.
// Missing, malformed, boolean, negative or out-of-range values are zero.
func ParseCount(v any) int64 {
	switch t := v.(type) {
	case nil, bool:
		return 0
	case string:
		return parseText(t)
	case *string:
		if t == nil {
			return 0
		}
		return parseText(*t)
	case json.Number:
		return parseText(string(t))
	case float64:
		return truncate(t)
	case float32:
		return truncate(float64(t))
	}

	n, err := cast.ToInt64E(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func parseText(s string) int64 {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 {
			return 0
		}
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return truncate(f)
}

// truncate rejects NaN, infinities and anything outside [0, 2^63).
func truncate(f float64) int64 {
	if math.IsNaN(f) || f < 0 || f >= maxCount {
		return 0
	}
	return int64(f)
}

// EstimateRequests applies the request ratio to a single row.
func EstimateRequests(impressions int64) int64 {
	return int64(math.Floor(float64(impressions) * RequestRatio))
}

// Aggregate sums impressions, clicks and the request estimate per category.
// The estimate is floored per row and then summed.
func Aggregate(rows []domain.RawMetricRow) domain.DeviceSummary {
	var s domain.DeviceSummary

	for i := range rows {
		c, ok := Classify(rows[i].DeviceLabel)
		if !ok {
			s.Unclassified++
			continue
		}

		impressions := ParseCount(rows[i].Impressions)
		clicks := ParseCount(rows[i].Clicks)

		b := &s.Buckets[c]
		b.Impressions += impressions
		b.Clicks += clicks
		b.Requests += EstimateRequests(impressions)
		s.RowCounts[c]++
	}

	return s
}
