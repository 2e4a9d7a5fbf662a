package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ad-metrics-service/internal/logging"
	"ad-metrics-service/internal/rows/core/domain"
	"ad-metrics-service/internal/rows/core/ports"
	"ad-metrics-service/internal/telemetry"
)

const dateLayout = "2006-01-02"

var (
	ErrInvalidRow = errors.New("invalid row")
	ErrFutureDate = errors.New("report_date cannot be in the future")
)

type StoreRowUseCase struct {
	repo ports.RowRepositoryPort
	now  func() time.Time
}

func NewStoreRowUseCase(repo ports.RowRepositoryPort) *StoreRowUseCase {
	return &StoreRowUseCase{repo: repo, now: time.Now}
}

type StoreRowInput struct {
	CustomerID       string
	ReportDate       string // YYYY-MM-DD
	Device           string
	Impressions      any
	Clicks           any
	CostMicros       any
	LocationCriteria any
}

func (uc *StoreRowUseCase) Execute(ctx context.Context, in StoreRowInput) (bool, error) {
	day, err := uc.validateInput(in)
	if err != nil {
		return false, err
	}

	row := &domain.StoredRow{
		CustomerID:       in.CustomerID,
		ReportDate:       day,
		DeviceLabel:      in.Device,
		Impressions:      in.Impressions,
		Clicks:           in.Clicks,
		CostMicros:       in.CostMicros,
		LocationCriteria: in.LocationCriteria,
		DedupeKey:        buildDedupeKey(in, day),
	}

	created, err := uc.repo.InsertRow(ctx, row)
	if err != nil {
		return false, err
	}

	if created {
		telemetry.RowsIngested.WithLabelValues("created").Inc()
	} else {
		telemetry.RowsIngested.WithLabelValues("duplicate").Inc()
		logging.Ctx(ctx).Debug().Str("dedupe_key", row.DedupeKey).Msg("duplicate row skipped")
	}

	return created, nil
}

func buildDedupeKey(in StoreRowInput, day time.Time) string {
	// customer + day + device + location
	location, _ := domain.RawText(in.LocationCriteria)
	return fmt.Sprintf("%s|%s|%s|%s",
		in.CustomerID,
		day.Format(dateLayout),
		in.Device,
		location,
	)
}

type BulkStoreRowsInput struct {
	Rows []StoreRowInput
}

type BulkStoreRowsResult struct {
	Created    int
	Duplicates int
}

// BulkStoreRows validates every row before writing any of them.
func (uc *StoreRowUseCase) BulkStoreRows(ctx context.Context, in BulkStoreRowsInput) (BulkStoreRowsResult, error) {
	var res BulkStoreRowsResult

	for i, r := range in.Rows {
		if _, err := uc.validateInput(r); err != nil {
			return res, fmt.Errorf("row %d: %w", i, err)
		}
	}

	for _, r := range in.Rows {
		ok, err := uc.Execute(ctx, r)
		if err != nil {
			return res, err
		}

		if ok {
			res.Created++
		} else {
			res.Duplicates++
		}
	}

	return res, nil
}

func (uc *StoreRowUseCase) validateInput(in StoreRowInput) (time.Time, error) {
	if in.CustomerID == "" || in.ReportDate == "" {
		return time.Time{}, ErrInvalidRow
	}

	day, err := time.Parse(dateLayout, in.ReportDate)
	if err != nil {
		return time.Time{}, ErrInvalidRow
	}

	now := uc.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if day.After(today) {
		return time.Time{}, ErrFutureDate
	}

	return day, nil
}
