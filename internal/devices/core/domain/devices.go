package domain

import "time"

// RawMetricRow is one report row as the ads API (or a caller) hands it over.
// Numeric fields keep whatever shape arrived: JSON number, string, nil.
type RawMetricRow struct {
	DeviceLabel      string
	Impressions      any
	Clicks           any
	CostMicros       any // passthrough
	LocationCriteria any // passthrough
}

type Category int

const (
	Android Category = iota
	IOS
	Desktop
	Tablet
)

// Categories lists every bucket in serialization order.
var Categories = [...]Category{Android, IOS, Desktop, Tablet}

func (c Category) String() string {
	switch c {
	case Android:
		return "android"
	case IOS:
		return "ios"
	case Desktop:
		return "desktop"
	case Tablet:
		return "tablet"
	default:
		return "unknown"
	}
}

type DeviceBucket struct {
	Impressions int64
	Clicks      int64
	Requests    int64 // estimate, not observed
}

// DeviceSummary always holds exactly one bucket per category.
type DeviceSummary struct {
	Buckets [len(Categories)]DeviceBucket

	// row bookkeeping for logs and metrics, never serialized
	RowCounts    [len(Categories)]int
	Unclassified int
}

func (s DeviceSummary) Bucket(c Category) DeviceBucket {
	return s.Buckets[c]
}

func (s DeviceSummary) Classified() int {
	n := 0
	for _, c := range s.RowCounts {
		n += c
	}
	return n
}

// DeviceReport is what callers get back. Locations is reserved and stays empty.
type DeviceReport struct {
	Devices   DeviceSummary
	Locations map[string]any
}

func NewDeviceReport(s DeviceSummary) *DeviceReport {
	return &DeviceReport{
		Devices:   s,
		Locations: map[string]any{},
	}
}

type ReportQuery struct {
	CustomerID string
	From       time.Time // inclusive, UTC day
	To         time.Time // inclusive, UTC day
}

// DateLayout is the day format used on the wire and in cache keys.
const DateLayout = "2006-01-02"
