package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"nlp-service/internal/common/errors"
)

func TestNoopStore(t *testing.T) {
	store := NewNoopStore()
	ctx := context.Background()

	assert.False(t, store.Available())

	// Writes are skipped without error so callers need no special casing.
	assert.NoError(t, store.Set(ctx, "k", "v", time.Hour))

	_, err := store.Get(ctx, "k")
	assert.True(t, errors.IsCode(err, errors.ErrCodeCacheUnavailable))

	assert.True(t, errors.IsCode(store.Flush(ctx), errors.ErrCodeCacheUnavailable))

	_, err = store.Status(ctx)
	assert.True(t, errors.IsCode(err, errors.ErrCodeCacheUnavailable))

	assert.NoError(t, store.Close())
}
