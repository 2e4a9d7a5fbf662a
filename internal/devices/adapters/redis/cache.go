package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	goredis "github.com/redis/go-redis/v9"

	"ad-metrics-service/internal/devices/core/domain"
	"ad-metrics-service/internal/devices/core/ports"
)

// Client is the subset of go-redis the cache needs.
type Client interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd
}

type RowCache struct {
	client Client
	ttl    time.Duration
}

func NewRowCache(client Client, ttl time.Duration) *RowCache {
	return &RowCache{client: client, ttl: ttl}
}

var _ ports.RowCachePort = (*RowCache)(nil)

type cachedRow struct {
	Device           string `json:"device"`
	Impressions      any    `json:"impressions"`
	Clicks           any    `json:"clicks"`
	CostMicros       any    `json:"cost_micros,omitempty"`
	LocationCriteria any    `json:"location_criteria,omitempty"`
}

func (c *RowCache) Get(ctx context.Context, key string) ([]domain.RawMetricRow, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var cached []cachedRow
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, false, fmt.Errorf("decode cached rows: %w", err)
	}

	rows := make([]domain.RawMetricRow, len(cached))
	for i, r := range cached {
		rows[i] = domain.RawMetricRow{
			DeviceLabel:      r.Device,
			Impressions:      r.Impressions,
			Clicks:           r.Clicks,
			CostMicros:       r.CostMicros,
			LocationCriteria: r.LocationCriteria,
		}
	}
	return rows, true, nil
}

func (c *RowCache) Set(ctx context.Context, key string, rows []domain.RawMetricRow) error {
	cached := make([]cachedRow, len(rows))
	for i, r := range rows {
		cached[i] = cachedRow{
			Device:           r.DeviceLabel,
			Impressions:      r.Impressions,
			Clicks:           r.Clicks,
			CostMicros:       r.CostMicros,
			LocationCriteria: r.LocationCriteria,
		}
	}

	raw, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("encode rows for cache: %w", err)
	}

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
