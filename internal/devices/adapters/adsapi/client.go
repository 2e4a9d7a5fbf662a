/*
client.go - ads reporting API client

Relays device-segmented report queries to the third-party advertising-metrics
API. The client does not interpret the rows it gets back: numeric fields are
handed to the aggregator in whatever shape the API used (the API encodes
64-bit counters as JSON strings).
*/

package adsapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"ad-metrics-service/internal/devices/core/domain"
	"ad-metrics-service/internal/devices/core/ports"
	"ad-metrics-service/internal/telemetry"
)

// Doer is satisfied by *http.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	BaseURL        string
	DeveloperToken string
	AccessToken    string
	RatePerSecond  float64
	Burst          int
	BreakerTimeout time.Duration
}

type Client struct {
	baseURL        string
	developerToken string
	accessToken    string
	http           Doer
	limiter        *rate.Limiter
	breaker        *breaker
}

var _ ports.ReportSourcePort = (*Client)(nil)

// New builds a client. A zero RatePerSecond disables throttling.
func New(doer Doer, cfg Config) *Client {
	if doer == nil {
		doer = &http.Client{Timeout: 10 * time.Second}
	}

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		baseURL:        strings.TrimSuffix(cfg.BaseURL, "/"),
		developerToken: cfg.DeveloperToken,
		accessToken:    cfg.AccessToken,
		http:           doer,
		limiter:        rate.NewLimiter(limit, burst),
		breaker:        newBreaker("ads-api", cfg.BreakerTimeout),
	}
}

type searchRequest struct {
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Segments  []string `json:"segments"`
}

type searchResponse struct {
	Rows []searchRow `json:"rows"`
}

type searchRow struct {
	Device           string `json:"device"`
	Impressions      any    `json:"impressions"`
	Clicks           any    `json:"clicks"`
	CostMicros       any    `json:"cost_micros"`
	LocationCriteria any    `json:"location_criteria"`
}

// StatusError is returned for non-2xx answers.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ads api returned status %d: %s", e.StatusCode, e.Body)
}

// FetchDeviceRows runs a device-segmented search for q.
func (c *Client) FetchDeviceRows(ctx context.Context, q domain.ReportQuery) ([]domain.RawMetricRow, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		telemetry.UpstreamRequests.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("ads api rate limit wait: %w", err)
	}

	return c.breaker.execute(func() ([]domain.RawMetricRow, error) {
		start := time.Now()
		defer func() {
			telemetry.UpstreamDuration.Observe(time.Since(start).Seconds())
		}()
		return c.search(ctx, q)
	})
}

func (c *Client) search(ctx context.Context, q domain.ReportQuery) ([]domain.RawMetricRow, error) {
	body, err := json.Marshal(searchRequest{
		StartDate: q.From.Format(domain.DateLayout),
		EndDate:   q.To.Format(domain.DateLayout),
		Segments:  []string{"device"},
	})
	if err != nil {
		return nil, fmt.Errorf("encode search request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/customers/%s/reports:search", c.baseURL, url.PathEscape(q.CustomerID))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}
	if c.developerToken != "" {
		req.Header.Set("developer-token", c.developerToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ads api search request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	rows := make([]domain.RawMetricRow, 0, len(out.Rows))
	for _, r := range out.Rows {
		rows = append(rows, domain.RawMetricRow{
			DeviceLabel:      r.Device,
			Impressions:      r.Impressions,
			Clicks:           r.Clicks,
			CostMicros:       r.CostMicros,
			LocationCriteria: r.LocationCriteria,
		})
	}
	return rows, nil
}
