package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisLock(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=true to run")
	}
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}

	ctx := context.Background()
	c, err := NewRedisCache(url)
	require.NoError(t, err)
	defer c.Close()

	key := "test:lock:" + uuid.NewString()
	defer c.Delete(ctx, key)

	first, second := uuid.NewString(), uuid.NewString()
	ok, err := c.TryLock(ctx, key, first, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.TryLock(ctx, key, second, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "lock is held")

	// Releasing with the wrong token leaves the lock in place
	require.NoError(t, c.Unlock(ctx, key, second))
	exists, err := c.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, c.Unlock(ctx, key, first))
	ok, err = c.TryLock(ctx, key, second, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}
