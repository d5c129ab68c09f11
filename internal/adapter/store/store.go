// Package store provides the persistent key-value store backing both cache
// layers. The SQLite implementation survives restarts; the in-memory one
// serves tests and ephemeral deployments.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has never been written.
var ErrNotFound = errors.New("key not found")

// Store is a minimal KV interface. Values are opaque JSON blobs; callers own
// serialization and treat unparseable payloads as cache misses.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
