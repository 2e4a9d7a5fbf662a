package adsapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"ad-metrics-service/internal/devices/core/domain"
	"ad-metrics-service/internal/logging"
	"ad-metrics-service/internal/telemetry"
)

// consecutive failures before the circuit opens
const tripAfter = 5

type breaker struct {
	name string
	cb   *gobreaker.CircuitBreaker[[]domain.RawMetricRow]
}

func newBreaker(name string, timeout time.Duration) *breaker {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	telemetry.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]domain.RawMetricRow](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= tripAfter
		},
		IsSuccessful: countsAsSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state transition")
			telemetry.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
	})

	return &breaker{name: name, cb: cb}
}

func (b *breaker) execute(fn func() ([]domain.RawMetricRow, error)) ([]domain.RawMetricRow, error) {
	rows, err := b.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			telemetry.UpstreamRequests.WithLabelValues("rejected").Inc()
		} else {
			telemetry.UpstreamRequests.WithLabelValues("failure").Inc()
		}
		return nil, err
	}

	telemetry.UpstreamRequests.WithLabelValues("success").Inc()
	return rows, nil
}

func (b *breaker) state() gobreaker.State {
	return b.cb.State()
}

// Caller mistakes (4xx other than 429) and cancellations say nothing about
// the health of the API.
func countsAsSuccess(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return true
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode >= 400 && se.StatusCode < 500 && se.StatusCode != http.StatusTooManyRequests
	}
	return false
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
