package migration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCheckpoint(t *testing.T) {
	ctx := context.Background()
	cp := NewMemoryCheckpoint()

	p, err := cp.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Progress{}, p)

	require.NoError(t, cp.Save(ctx, Progress{Page: 2, Migrated: 17}))

	p, err = cp.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Progress{Page: 2, Migrated: 17}, p)
}

// Necesita un Redis real; se omite si REDIS_ADDR no está definido
func TestRedisCheckpoint(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())

	cp := NewRedisCheckpoint(client, "catalog:test:"+t.Name())
	require.NoError(t, cp.Reset(ctx))

	p, err := cp.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Progress{}, p)

	want := Progress{Page: 3, Migrated: 25, Done: true}
	require.NoError(t, cp.Save(ctx, want))

	p, err = cp.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, p)

	ttl, err := client.TTL(ctx, "catalog:test:"+t.Name()).Result()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(-1), ttl, "checkpoint must not expire")

	require.NoError(t, cp.Reset(ctx))
	p, err = cp.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Progress{}, p)
}
