// Package cache provides the analysis result cache port, backed by Redis in
// normal operation and by a no-op store when Redis is unreachable at startup.
package cache

import (
	"context"
	"time"
)

// Status describes the cache backend for the introspection route.
type Status struct {
	ConnectedClients int    `json:"connected_clients"`
	UsedMemory       string `json:"used_memory"`
	TotalKeys        int64  `json:"total_keys"`
}

// Store is the cache port. Implementations must be safe for concurrent use.
type Store interface {
	Available() bool
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Flush(ctx context.Context) error
	Status(ctx context.Context) (*Status, error)
	Close() error
}
