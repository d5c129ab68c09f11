package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/couchcryptid/buoy-telemetry-service/internal/adapter/store"
	"github.com/couchcryptid/buoy-telemetry-service/internal/domain"
	"github.com/couchcryptid/buoy-telemetry-service/internal/observability"
)

// HistoricalSource fetches the multi-day observation history for one station.
type HistoricalSource interface {
	FetchStationHistory(ctx context.Context, stationID string) (string, error)
}

// historicalBlob holds one cached envelope per station, persisted together
// under a single store key.
type historicalBlob map[string]Envelope[[]domain.DailyHigh]

// HistoricalCache serves per-station daily temperature highs aggregated from
// the station history feed. Unlike the current-readings cache it has no
// degraded mode: an expired entry plus a failed fetch is an error.
type HistoricalCache struct {
	source  HistoricalSource
	store   store.Store
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics
	ttl     time.Duration

	mu    sync.Mutex
	group singleflight.Group
}

func NewHistoricalCache(
	source HistoricalSource,
	s store.Store,
	clock clockwork.Clock,
	logger *slog.Logger,
	metrics *observability.Metrics,
	ttl time.Duration,
) *HistoricalCache {
	return &HistoricalCache{
		source:  source,
		store:   s,
		clock:   clock,
		logger:  logger,
		metrics: metrics,
		ttl:     ttl,
	}
}

// StationHistory returns the daily highs for one station, fetching and
// aggregating the history feed when the cached entry is missing or expired.
// Concurrent callers for the same station share a single fetch.
func (c *HistoricalCache) StationHistory(ctx context.Context, stationID string) ([]domain.DailyHigh, error) {
	v, err, _ := c.group.Do(stationID, func() (any, error) {
		return c.stationHistory(ctx, stationID)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.DailyHigh), nil
}

func (c *HistoricalCache) stationHistory(ctx context.Context, stationID string) ([]domain.DailyHigh, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	blob, _ := loadJSON[historicalBlob](ctx, c.store, historicalBlobKey, c.logger)
	if blob.Payload == nil {
		blob.Payload = historicalBlob{}
	}

	if env, ok := blob.Payload[stationID]; ok && env.Fresh(now, c.ttl) {
		c.metrics.CacheLookups.WithLabelValues("historical", "hit").Inc()
		return env.Payload, nil
	}
	c.metrics.CacheLookups.WithLabelValues("historical", "miss").Inc()

	raw, err := c.source.FetchStationHistory(ctx, stationID)
	if err != nil {
		return nil, fmt.Errorf("fetching history for station %s: %w", stationID, err)
	}

	records, skipped := domain.ParseReport(raw)
	if skipped > 0 {
		c.logger.Warn("skipped malformed history lines", "count", skipped, "station", stationID)
	}
	highs := domain.AggregateDailyHighs(records)

	blob.Payload[stationID] = Envelope[[]domain.DailyHigh]{WrittenAt: now, Payload: highs}
	saveJSON(ctx, c.store, historicalBlobKey, Envelope[historicalBlob]{
		WrittenAt: now,
		Payload:   blob.Payload,
	}, c.logger)

	c.logger.Info("station history refreshed", "station", stationID, "days", len(highs))
	return highs, nil
}
