package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/couchcryptid/buoy-telemetry-service/internal/adapter/store"
	"github.com/couchcryptid/buoy-telemetry-service/internal/domain"
	"github.com/couchcryptid/buoy-telemetry-service/internal/observability"
)

// feedLag is how far behind the clock the hourly feed runs. NDBC publishes
// each hour's file well after the hour starts, so asking for the hour of
// now minus this lag avoids requesting a file that does not exist yet.
const feedLag = 90 * time.Minute

// CurrentSource fetches the hourly observation report for all stations.
type CurrentSource interface {
	FetchCurrentHour(ctx context.Context, hour int) (string, error)
}

// CurrentCache serves the latest observation per known station, refreshing
// from the hourly feed at most once per TTL and falling back to persisted
// data when the feed is unreachable.
type CurrentCache struct {
	source      CurrentSource
	store       store.Store
	registry    domain.Registry
	clock       clockwork.Clock
	logger      *slog.Logger
	metrics     *observability.Metrics
	ttl         time.Duration
	staleCutoff time.Duration

	mu    sync.Mutex
	group singleflight.Group
	ready atomic.Bool
}

// NewCurrentCache wires a current-readings cache. ttl bounds how often the
// feed is hit; staleCutoff bounds how old a cached record may be before it
// is dropped instead of merged with a fresh report.
func NewCurrentCache(
	source CurrentSource,
	s store.Store,
	registry domain.Registry,
	clock clockwork.Clock,
	logger *slog.Logger,
	metrics *observability.Metrics,
	ttl, staleCutoff time.Duration,
) *CurrentCache {
	return &CurrentCache{
		source:      source,
		store:       s,
		registry:    registry,
		clock:       clock,
		logger:      logger,
		metrics:     metrics,
		ttl:         ttl,
		staleCutoff: staleCutoff,
	}
}

// CurrentReadings returns the newest record per known station. Concurrent
// callers share a single refresh via singleflight.
func (c *CurrentCache) CurrentReadings(ctx context.Context) ([]domain.StationSnapshot, error) {
	v, err, _ := c.group.Do("current", func() (any, error) {
		return c.currentReadings(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.StationSnapshot), nil
}

// currentReadings walks the fallback chain in order: a fresh cache entry is
// served as-is, otherwise the feed is fetched and merged with whatever is
// cached, and only if the fetch fails is an expired entry served degraded.
func (c *CurrentCache) currentReadings(ctx context.Context) ([]domain.StationSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	env, ok := loadJSON[[]domain.RawRecord](ctx, c.store, currentReadingsKey, c.logger)

	if ok && env.Fresh(now, c.ttl) {
		c.metrics.CacheLookups.WithLabelValues("current", "hit").Inc()
		c.ready.Store(true)
		return domain.NewestPerStation(env.Payload), nil
	}
	c.metrics.CacheLookups.WithLabelValues("current", "miss").Inc()

	merged, fetchErr := c.refresh(ctx, now, env.Payload)
	if fetchErr == nil {
		saveJSON(ctx, c.store, currentReadingsKey, Envelope[[]domain.RawRecord]{
			WrittenAt: now,
			Payload:   merged,
		}, c.logger)
		c.ready.Store(true)
		return domain.NewestPerStation(merged), nil
	}

	if ok {
		c.metrics.CacheLookups.WithLabelValues("current", "stale").Inc()
		c.logger.Warn("feed unreachable, serving expired cache",
			"age", now.Sub(env.WrittenAt), "error", fetchErr)
		return domain.NewestPerStation(env.Payload), nil
	}

	return nil, fetchErr
}

// refresh fetches the hourly report, keeps only known stations, and merges in
// cached records for stations absent from the report, provided they have a
// timestamp newer than the stale cutoff.
func (c *CurrentCache) refresh(ctx context.Context, now time.Time, cached []domain.RawRecord) ([]domain.RawRecord, error) {
	hour := now.UTC().Add(-feedLag).Hour()

	raw, err := c.source.FetchCurrentHour(ctx, hour)
	if err != nil {
		return nil, fmt.Errorf("fetching hourly report: %w", err)
	}

	records, skipped := domain.ParseReport(raw)
	if skipped > 0 {
		c.logger.Warn("skipped malformed report lines", "count", skipped, "hour", hour)
	}
	fresh := domain.FilterKnownStations(records, c.registry)

	seen := make(map[string]bool, len(fresh))
	for _, r := range fresh {
		seen[r.StationID] = true
	}

	merged := fresh
	for _, r := range cached {
		if seen[r.StationID] {
			continue
		}
		if !r.HasTimestamp() || now.Sub(r.Timestamp) >= c.staleCutoff {
			c.metrics.StaleRecordsDropped.Inc()
			c.logger.Debug("dropping stale cached record", "station", r.StationID)
			continue
		}
		merged = append(merged, r)
	}

	c.logger.Info("current readings refreshed",
		"hour", hour, "fresh", len(fresh), "carried", len(merged)-len(fresh))
	return merged, nil
}

// CheckReadiness reports whether the cache has served at least one good
// result since startup.
func (c *CurrentCache) CheckReadiness() error {
	if !c.ready.Load() {
		return fmt.Errorf("current readings cache not yet populated")
	}
	return nil
}

// Refresh forces a fetch-and-merge cycle regardless of TTL, for use by the
// background scheduler. The rate limit still applies through the TTL check
// because a successful cycle rewrites the envelope timestamp.
func (c *CurrentCache) Refresh(ctx context.Context) error {
	c.metrics.RefreshRunning.Set(1)
	defer c.metrics.RefreshRunning.Set(0)

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	env, _ := loadJSON[[]domain.RawRecord](ctx, c.store, currentReadingsKey, c.logger)

	merged, err := c.refresh(ctx, now, env.Payload)
	if err != nil {
		return err
	}

	saveJSON(ctx, c.store, currentReadingsKey, Envelope[[]domain.RawRecord]{
		WrittenAt: now,
		Payload:   merged,
	}, c.logger)
	c.ready.Store(true)
	return nil
}
