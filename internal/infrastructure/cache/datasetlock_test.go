package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modsoc/internal/shared/errors"
	"modsoc/internal/shared/logger"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	client.FlushDB(ctx)

	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})

	return client
}

func TestRedisDatasetLock_AcquireRelease(t *testing.T) {
	client := setupTestRedis(t)
	lock := NewRedisDatasetLock(client, time.Minute, logger.NewNop())
	ctx := context.Background()

	release, err := lock.Acquire(ctx, "dataset:3")
	require.NoError(t, err)

	ttl, err := client.TTL(ctx, "modsoc:dataset-lock:dataset:3").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	_, err = lock.Acquire(ctx, "dataset:3")
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))

	// other datasets are independent
	releaseOther, err := lock.Acquire(ctx, "dataset:4")
	require.NoError(t, err)
	require.NoError(t, releaseOther(ctx))

	require.NoError(t, release(ctx))

	release, err = lock.Acquire(ctx, "dataset:3")
	require.NoError(t, err)
	require.NoError(t, release(ctx))
}

func TestRedisDatasetLock_ReleaseDoesNotStealNewHolder(t *testing.T) {
	client := setupTestRedis(t)
	lock := NewRedisDatasetLock(client, time.Minute, logger.NewNop())
	ctx := context.Background()

	staleRelease, err := lock.Acquire(ctx, "all")
	require.NoError(t, err)

	// simulate expiry followed by another holder
	require.NoError(t, client.Del(ctx, "modsoc:dataset-lock:all").Err())
	release, err := lock.Acquire(ctx, "all")
	require.NoError(t, err)

	require.NoError(t, staleRelease(ctx))

	exists, err := client.Exists(ctx, "modsoc:dataset-lock:all").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists)

	require.NoError(t, release(ctx))
}

func TestRedisDatasetLock_GlobalScopeExcludesDatasets(t *testing.T) {
	client := setupTestRedis(t)
	lock := NewRedisDatasetLock(client, time.Minute, logger.NewNop())
	ctx := context.Background()

	releaseAll, err := lock.Acquire(ctx, "all")
	require.NoError(t, err)

	_, err = lock.Acquire(ctx, "dataset:1")
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))

	// the refused dataset key is not left behind
	exists, err := client.Exists(ctx, "modsoc:dataset-lock:dataset:1").Result()
	require.NoError(t, err)
	assert.Zero(t, exists)

	require.NoError(t, releaseAll(ctx))

	releaseOne, err := lock.Acquire(ctx, "dataset:1")
	require.NoError(t, err)

	_, err = lock.Acquire(ctx, "all")
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))

	exists, err = client.Exists(ctx, "modsoc:dataset-lock:all").Result()
	require.NoError(t, err)
	assert.Zero(t, exists)

	require.NoError(t, releaseOne(ctx))

	releaseAll, err = lock.Acquire(ctx, "all")
	require.NoError(t, err)
	require.NoError(t, releaseAll(ctx))
}

func TestNoopDatasetLock(t *testing.T) {
	var lock NoopDatasetLock
	release, err := lock.Acquire(context.Background(), "all")
	require.NoError(t, err)
	assert.NoError(t, release(context.Background()))

	_, err = lock.Acquire(context.Background(), "all")
	assert.NoError(t, err)
}
