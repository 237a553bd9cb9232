// internal/cache/noop.go
package cache

import (
	"context"
	"time"

	"nlp-service/internal/common/errors"
)

// NoopStore is the fallback Store used when Redis is unreachable at startup.
// Writes are silently skipped so the pipeline never has to special-case a
// missing cache; introspection and flushing report unavailability.
type NoopStore struct{}

func NewNoopStore() *NoopStore {
	return &NoopStore{}
}

func (s *NoopStore) Available() bool {
	return false
}

func (s *NoopStore) Get(ctx context.Context, key string) (string, error) {
	return "", errors.NewCacheUnavailableError("get")
}

func (s *NoopStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (s *NoopStore) Flush(ctx context.Context) error {
	return errors.NewCacheUnavailableError("flush")
}

func (s *NoopStore) Status(ctx context.Context) (*Status, error) {
	return nil, errors.NewCacheUnavailableError("status")
}

func (s *NoopStore) Close() error {
	return nil
}
