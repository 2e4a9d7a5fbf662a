package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"

	"ad-metrics-service/internal/devices/core/aggregator"
	"ad-metrics-service/internal/rows/core/domain"
)

// fakeResult implements sql.Result for tests.
type fakeResult struct {
	rowsAffected int64
}

func (f *fakeResult) LastInsertId() (int64, error) {
	return 0, errors.New("not implemented")
}

func (f *fakeResult) RowsAffected() (int64, error) {
	return f.rowsAffected, nil
}

// fakeDB implements pgdb.Execer for tests.
type fakeDB struct {
	ExecFn     func(ctx context.Context, query string, args ...any) (sql.Result, error)
	queries    []string
	lastArgs   []any
	execCalled bool
}

func (f *fakeDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.execCalled = true
	f.queries = append(f.queries, query)
	f.lastArgs = args
	if f.ExecFn != nil {
		return f.ExecFn(ctx, query, args...)
	}
	return &fakeResult{rowsAffected: 1}, nil
}

func testRow() *domain.StoredRow {
	return &domain.StoredRow{
		CustomerID:       "123",
		ReportDate:       time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		DeviceLabel:      "ANDROID_PHONE",
		Impressions:      json.Number("10"),
		Clicks:           nil,
		CostMicros:       1500000,
		LocationCriteria: map[string]any{"id": "2840"},
		DedupeKey:        "123|2025-01-15|ANDROID_PHONE|",
	}
}

// ------------------------------------------------------------
// SUCCESS (created)
// ------------------------------------------------------------

func TestRowRepository_InsertRow_Created(t *testing.T) {
	db := &fakeDB{
		ExecFn: func(ctx context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "INSERT INTO device_report_rows") {
				t.Fatalf("unexpected query: %s", query)
			}
			return &fakeResult{rowsAffected: 1}, nil
		},
	}

	repo := NewRowRepository(db)

	created, err := repo.InsertRow(context.Background(), testRow())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Fatalf("expected created=true, got false")
	}
	if len(db.lastArgs) != 8 {
		t.Fatalf("expected 8 args, got %d", len(db.lastArgs))
	}

	if db.lastArgs[1] != "2025-01-15" {
		t.Errorf("expected report_date arg 2025-01-15, got %v", db.lastArgs[1])
	}
	if db.lastArgs[3] != "10" {
		t.Errorf("expected impressions as text, got %#v", db.lastArgs[3])
	}
	if db.lastArgs[4] != nil {
		t.Errorf("expected NULL clicks, got %#v", db.lastArgs[4])
	}
	if db.lastArgs[5] != "1500000" {
		t.Errorf("expected cost as text, got %#v", db.lastArgs[5])
	}
	if db.lastArgs[6] != `{"id":"2840"}` {
		t.Errorf("expected location as json text, got %#v", db.lastArgs[6])
	}
}

// ------------------------------------------------------------
// DUPLICATE (rowsAffected=0)
// ------------------------------------------------------------

func TestRowRepository_InsertRow_Duplicate(t *testing.T) {
	db := &fakeDB{
		ExecFn: func(ctx context.Context, query string, args ...any) (sql.Result, error) {
			return &fakeResult{rowsAffected: 0}, nil
		},
	}

	created, err := NewRowRepository(db).InsertRow(context.Background(), testRow())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Fatalf("expected created=false for duplicate")
	}
}

// ------------------------------------------------------------
// DB ERROR
// ------------------------------------------------------------

func TestRowRepository_InsertRow_Error(t *testing.T) {
	dbErr := errors.New("db error")
	db := &fakeDB{
		ExecFn: func(ctx context.Context, query string, args ...any) (sql.Result, error) {
			return nil, dbErr
		},
	}

	created, err := NewRowRepository(db).InsertRow(context.Background(), testRow())
	if !errors.Is(err, dbErr) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
	if created {
		t.Fatalf("expected created=false on error")
	}
}

func TestRowRepository_InsertRow_PQErrorNamed(t *testing.T) {
	db := &fakeDB{
		ExecFn: func(ctx context.Context, query string, args ...any) (sql.Result, error) {
			return nil, &pq.Error{Code: "42P01", Message: `relation "device_report_rows" does not exist`}
		},
	}

	_, err := NewRowRepository(db).InsertRow(context.Background(), testRow())
	if err == nil || !strings.Contains(err.Error(), "undefined_table") {
		t.Fatalf("expected pq error code name in message, got %v", err)
	}
}

// ------------------------------------------------------------
// SCHEMA
// ------------------------------------------------------------

func TestEnsureSchema(t *testing.T) {
	db := &fakeDB{}

	if err := EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(db.queries) != len(schemaStatements) {
		t.Fatalf("expected %d statements, got %d", len(schemaStatements), len(db.queries))
	}
	if !strings.Contains(db.queries[0], "CREATE TABLE IF NOT EXISTS device_report_rows") {
		t.Fatalf("unexpected first statement: %s", db.queries[0])
	}
}

func TestEnsureSchema_Error(t *testing.T) {
	db := &fakeDB{
		ExecFn: func(ctx context.Context, query string, args ...any) (sql.Result, error) {
			return nil, errors.New("permission denied")
		},
	}

	if err := EnsureSchema(context.Background(), db); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestToText_StoredCountsAggregateLikeInline(t *testing.T) {
	values := []any{
		nil,
		"10",
		" 7 ",
		"12.5",
		"1e3",
		"abc",
		json.Number("12.5"),
		json.Number("1e3"),
		json.Number("1e30"),
		json.Number("-3"),
		15,
		int64(-2),
		15.9,
		1e30,
		true,
		map[string]any{"x": 1},
		[]any{1, 2},
	}

	for _, v := range values {
		inline := aggregator.ParseCount(v)
		stored := aggregator.ParseCount(toText(v))
		if inline != stored {
			t.Errorf("value %#v: inline=%d stored=%d (text %#v)", v, inline, stored, toText(v))
		}
	}
}
