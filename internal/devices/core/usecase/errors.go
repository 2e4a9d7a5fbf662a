package usecase

import (
	"errors"
	"time"

	"ad-metrics-service/internal/devices/core/domain"
)

var (
	ErrInvalidReportQuery  = errors.New("invalid report query")
	ErrInvalidDateRange    = errors.New("invalid date range")
	ErrUpstreamUnavailable = errors.New("ads api unavailable")
)

type ReportQueryInput struct {
	CustomerID string
	From       string // YYYY-MM-DD, inclusive
	To         string // YYYY-MM-DD, inclusive
}

func (in ReportQueryInput) toQuery() (domain.ReportQuery, error) {
	if in.CustomerID == "" {
		return domain.ReportQuery{}, ErrInvalidReportQuery
	}

	from, err := time.Parse(domain.DateLayout, in.From)
	if err != nil {
		return domain.ReportQuery{}, ErrInvalidDateRange
	}
	to, err := time.Parse(domain.DateLayout, in.To)
	if err != nil {
		return domain.ReportQuery{}, ErrInvalidDateRange
	}
	if from.After(to) {
		return domain.ReportQuery{}, ErrInvalidDateRange
	}

	return domain.ReportQuery{
		CustomerID: in.CustomerID,
		From:       from,
		To:         to,
	}, nil
}
