// Package telemetry implements the reconciliation and caching layer between
// the HTTP surface and the upstream NDBC feeds. Each cache persists its state
// through the key-value store so hits survive process restarts.
package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/couchcryptid/buoy-telemetry-service/internal/adapter/store"
)

// Store keys. Both caches share one key-value store.
const (
	currentReadingsKey = "cache:current-readings"
	historicalBlobKey  = "cache:historical-highs"
)

// Envelope wraps a cached payload with the time it was written, so freshness
// can be judged against a TTL at read time.
type Envelope[T any] struct {
	WrittenAt time.Time `json:"written_at"`
	Payload   T         `json:"payload"`
}

// Fresh reports whether the envelope was written within ttl of now.
func (e Envelope[T]) Fresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.WrittenAt) < ttl
}

// loadJSON reads and decodes an envelope from the store. A missing key, a
// store failure, or a corrupt payload are all treated as a cache miss; the
// latter two are logged since they indicate a real problem rather than an
// empty cache.
func loadJSON[T any](ctx context.Context, s store.Store, key string, logger *slog.Logger) (Envelope[T], bool) {
	var env Envelope[T]

	raw, err := s.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logger.Warn("cache read failed", "key", key, "error", err)
		}
		return env, false
	}

	if err := json.Unmarshal(raw, &env); err != nil {
		logger.Warn("cache entry corrupt, discarding", "key", key, "error", err)
		return env, false
	}

	return env, true
}

// saveJSON encodes and writes an envelope. Persistence failures are logged
// but never surfaced to the caller; the in-flight result is still good.
func saveJSON[T any](ctx context.Context, s store.Store, key string, env Envelope[T], logger *slog.Logger) {
	raw, err := json.Marshal(env)
	if err != nil {
		logger.Warn("cache encode failed", "key", key, "error", err)
		return
	}
	if err := s.Set(ctx, key, raw); err != nil {
		logger.Warn("cache write failed", "key", key, "error", err)
	}
}
