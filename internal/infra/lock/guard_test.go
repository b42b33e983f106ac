package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupGuard(t *testing.T) (*miniredis.Miniredis, *RedisGuard) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return mr, NewRedisGuard(client, SweepLockKey, 30*time.Second)
}

func TestRedisGuard_ExclusiveUntilRelease(t *testing.T) {
	mr, guard := setupGuard(t)
	ctx := context.Background()

	acquired, release, err := guard.TryAcquire(ctx)
	require.NoError(t, err)
	require.True(t, acquired)
	assert.True(t, mr.Exists(SweepLockKey))

	again, secondRelease, err := guard.TryAcquire(ctx)
	require.NoError(t, err)
	assert.False(t, again)
	assert.Nil(t, secondRelease)

	require.NoError(t, release(ctx))
	assert.False(t, mr.Exists(SweepLockKey))

	acquired, _, err = guard.TryAcquire(ctx)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestRedisGuard_ExpiresAfterTTL(t *testing.T) {
	mr, guard := setupGuard(t)
	ctx := context.Background()

	acquired, _, err := guard.TryAcquire(ctx)
	require.NoError(t, err)
	require.True(t, acquired)

	mr.FastForward(31 * time.Second)

	acquired, _, err = guard.TryAcquire(ctx)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestRedisGuard_StaleReleaseKeepsForeignLock(t *testing.T) {
	mr, guard := setupGuard(t)
	ctx := context.Background()

	_, staleRelease, err := guard.TryAcquire(ctx)
	require.NoError(t, err)

	mr.FastForward(31 * time.Second)

	acquired, _, err := guard.TryAcquire(ctx)
	require.NoError(t, err)
	require.True(t, acquired)

	require.NoError(t, staleRelease(ctx))
	assert.True(t, mr.Exists(SweepLockKey), "чужая блокировка не снимается")
}

func TestRedisGuard_BackendDown(t *testing.T) {
	mr, guard := setupGuard(t)
	mr.Close()

	_, _, err := guard.TryAcquire(context.Background())
	assert.ErrorIs(t, err, ErrLockBackend)
}

func TestNoopGuard(t *testing.T) {
	acquired, release, err := NoopGuard{}.TryAcquire(context.Background())
	require.NoError(t, err)
	assert.True(t, acquired)
	assert.NoError(t, release(context.Background()))
}
