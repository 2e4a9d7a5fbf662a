package aggregator_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"ad-metrics-service/internal/devices/core/aggregator"
	"ad-metrics-service/internal/devices/core/domain"
)

// ------------------------------------------------------------
// CLASSIFY
// ------------------------------------------------------------

func TestClassify(t *testing.T) {
	tests := []struct {
		label  string
		want   domain.Category
		wantOK bool
	}{
		{"android", domain.Android, true},
		{"ANDROID_PHONE", domain.Android, true},
		{"Android Tablet", domain.Android, true}, // android checked before tablet
		{"ios", domain.IOS, true},
		{"iPhone 15", domain.IOS, true},
		{"IPAD", domain.IOS, true},
		{"DESKTOP", domain.Desktop, true},
		{"tablet", domain.Tablet, true},
		{"CONNECTED_TV", 0, false},
		{"mobile", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := aggregator.Classify(tt.label)
			if ok != tt.wantOK {
				t.Fatalf("Classify(%q) ok=%v, want %v", tt.label, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Fatalf("Classify(%q)=%s, want %s", tt.label, got, tt.want)
			}
		})
	}
}

// ------------------------------------------------------------
// PARSE COUNT
// ------------------------------------------------------------

func TestParseCount(t *testing.T) {
	s := "42"
	tests := []struct {
		name string
		in   any
		want int64
	}{
		{"nil", nil, 0},
		{"string", "10", 10},
		{"padded_string", " 7 ", 7},
		{"garbage", "abc", 0},
		{"decimal_string", "10.5", 10},
		{"exponent_string", "1e3", 1000},
		{"negative_string", "-5", 0},
		{"huge_string", "99999999999999999999", 0},
		{"hex_string", "0x1A", 0},
		{"nan_string", "NaN", 0},
		{"inf_string", "+Inf", 0},
		{"empty_string", "", 0},
		{"float64", float64(15), 15},
		{"float64_fraction", 15.9, 15},
		{"float64_negative", -2.5, 0},
		{"float64_huge", 1e30, 0},
		{"float32", float32(4.5), 4},
		{"int", 3, 3},
		{"negative_int", -3, 0},
		{"uint64_overflow", uint64(1<<63 + 1), 0},
		{"bool_true", true, 0},
		{"bool_false", false, 0},
		{"int64", int64(99), 99},
		{"json_number", json.Number("25"), 25},
		{"json_number_float", json.Number("25.0"), 25},
		{"json_number_fraction", json.Number("12.5"), 12},
		{"json_number_exponent", json.Number("1e3"), 1000},
		{"json_number_huge", json.Number("1e30"), 0},
		{"json_number_max_int64", json.Number("9223372036854775807"), 9223372036854775807},
		{"json_number_negative", json.Number("-7"), 0},
		{"string_pointer", &s, 42},
		{"nil_string_pointer", (*string)(nil), 0},
		{"map", map[string]any{"x": 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := aggregator.ParseCount(tt.in); got != tt.want {
				t.Fatalf("ParseCount(%v)=%d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

// ------------------------------------------------------------
// AGGREGATE
// ------------------------------------------------------------

func TestAggregate_NoRows(t *testing.T) {
	s := aggregator.Aggregate(nil)

	for _, c := range domain.Categories {
		if b := s.Bucket(c); b != (domain.DeviceBucket{}) {
			t.Fatalf("expected zero bucket for %s, got %+v", c, b)
		}
	}
	if s.Classified() != 0 || s.Unclassified != 0 {
		t.Fatalf("expected no counted rows, got %+v", s)
	}
}

func TestAggregate_SingleIOSRow(t *testing.T) {
	s := aggregator.Aggregate([]domain.RawMetricRow{
		{DeviceLabel: "ios", Impressions: "10", Clicks: "3"},
	})

	want := domain.DeviceBucket{Impressions: 10, Clicks: 3, Requests: 8}
	if got := s.Bucket(domain.IOS); got != want {
		t.Fatalf("expected ios bucket %+v, got %+v", want, got)
	}
	for _, c := range []domain.Category{domain.Android, domain.Desktop, domain.Tablet} {
		if b := s.Bucket(c); b != (domain.DeviceBucket{}) {
			t.Fatalf("expected zero bucket for %s, got %+v", c, b)
		}
	}
}

func TestAggregate_AndroidRegardlessOfSuffix(t *testing.T) {
	s := aggregator.Aggregate([]domain.RawMetricRow{
		{DeviceLabel: "ANDROID_PHONE", Impressions: 5, Clicks: 1},
		{DeviceLabel: "some-android-build", Impressions: 5, Clicks: 1},
	})

	got := s.Bucket(domain.Android)
	if got.Impressions != 10 || got.Clicks != 2 {
		t.Fatalf("expected android impressions=10 clicks=2, got %+v", got)
	}
}

func TestAggregate_RequestsFlooredPerRow(t *testing.T) {
	s := aggregator.Aggregate([]domain.RawMetricRow{
		{DeviceLabel: "desktop", Impressions: "3"},
		{DeviceLabel: "desktop", Impressions: "3"},
	})

	// floor(2.4) + floor(2.4) = 2, floor(4.8) would be 4
	if got := s.Bucket(domain.Desktop).Requests; got != 2 {
		t.Fatalf("expected requests=2, got %d", got)
	}
	if got := s.Bucket(domain.Desktop).Impressions; got != 6 {
		t.Fatalf("expected impressions=6, got %d", got)
	}
}

func TestAggregate_RequestsRoundNumbers(t *testing.T) {
	s := aggregator.Aggregate([]domain.RawMetricRow{
		{DeviceLabel: "tablet", Impressions: "10"},
		{DeviceLabel: "tablet", Impressions: "15"},
	})

	if got := s.Bucket(domain.Tablet).Requests; got != 20 {
		t.Fatalf("expected requests=20, got %d", got)
	}
}

func TestAggregate_UnparseableImpressions(t *testing.T) {
	s := aggregator.Aggregate([]domain.RawMetricRow{
		{DeviceLabel: "android", Impressions: "not-a-number"},
		{DeviceLabel: "android", Impressions: nil, Clicks: "x"},
	})

	if got := s.Bucket(domain.Android); got != (domain.DeviceBucket{}) {
		t.Fatalf("expected zero android bucket, got %+v", got)
	}
	if s.Classified() != 2 {
		t.Fatalf("expected 2 classified rows, got %d", s.Classified())
	}
}

func TestParseCount_TextAndNumberAgree(t *testing.T) {
	for _, raw := range []string{"0", "12", "12.5", "1e3", "2.5E2", "-4", "1e30", "abc", "9223372036854775807"} {
		if a, b := aggregator.ParseCount(raw), aggregator.ParseCount(json.Number(raw)); a != b {
			t.Errorf("ParseCount(%q)=%d but ParseCount(json.Number(%q))=%d", raw, a, raw, b)
		}
	}
}

func TestAggregate_OutOfRangeCountsAsZero(t *testing.T) {
	s := aggregator.Aggregate([]domain.RawMetricRow{
		{DeviceLabel: "android", Impressions: json.Number("1e30"), Clicks: true},
		{DeviceLabel: "android", Impressions: "5", Clicks: json.Number("-1")},
	})

	want := domain.DeviceBucket{Impressions: 5, Clicks: 0, Requests: 4}
	if got := s.Bucket(domain.Android); got != want {
		t.Fatalf("expected android bucket %+v, got %+v", want, got)
	}
}

func TestAggregate_UnknownLabelExcluded(t *testing.T) {
	s := aggregator.Aggregate([]domain.RawMetricRow{
		{DeviceLabel: "CONNECTED_TV", Impressions: "100", Clicks: "10"},
		{DeviceLabel: "", Impressions: "100", Clicks: "10"},
		{DeviceLabel: "ios", Impressions: "1", Clicks: "0"},
	})

	var total int64
	for _, c := range domain.Categories {
		total += s.Bucket(c).Impressions
	}
	if total != 1 {
		t.Fatalf("expected only the ios row to count, total impressions=%d", total)
	}
	if s.Unclassified != 2 {
		t.Fatalf("expected 2 unclassified rows, got %d", s.Unclassified)
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	rows := []domain.RawMetricRow{
		{DeviceLabel: "iPhone", Impressions: "7", Clicks: "2", CostMicros: "1000"},
		{DeviceLabel: "Desktop", Impressions: 13.0, Clicks: 4.0, LocationCriteria: "2840"},
		{DeviceLabel: "smart-fridge", Impressions: "9"},
	}
	snapshot := make([]domain.RawMetricRow, len(rows))
	copy(snapshot, rows)

	first := aggregator.Aggregate(rows)
	second := aggregator.Aggregate(rows)

	if first != second {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
	if !reflect.DeepEqual(rows, snapshot) {
		t.Fatalf("input rows were modified")
	}
}

func TestEstimateRequests(t *testing.T) {
	tests := map[int64]int64{0: 0, 1: 0, 2: 1, 3: 2, 5: 4, 10: 8, 15: 12, 25: 20, 99: 79}
	for in, want := range tests {
		if got := aggregator.EstimateRequests(in); got != want {
			t.Errorf("EstimateRequests(%d)=%d, want %d", in, got, want)
		}
	}
}
