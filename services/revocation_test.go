package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRevocationStoreExpires(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRevocationStore()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Revoke(ctx, "tok-a", time.Minute))
	revoked, err := store.IsRevoked(ctx, "tok-a")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, _ = store.IsRevoked(ctx, "tok-b")
	assert.False(t, revoked)

	now = now.Add(2 * time.Minute)
	revoked, _ = store.IsRevoked(ctx, "tok-a")
	assert.False(t, revoked, "entry outlived its ttl")

	require.NoError(t, store.Revoke(ctx, "tok-c", time.Minute))
	assert.Equal(t, 1, store.Len(), "expired entries pruned on write")

	require.NoError(t, store.Revoke(ctx, "tok-d", 0))
	revoked, _ = store.IsRevoked(ctx, "tok-d")
	assert.False(t, revoked)
}

func TestMemoryRevocationStoreConcurrentUse(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRevocationStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tok := fmt.Sprintf("tok-%d", i)
			assert.NoError(t, store.Revoke(ctx, tok, time.Hour))
			revoked, err := store.IsRevoked(ctx, tok)
			assert.NoError(t, err)
			assert.True(t, revoked)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, store.Len())
}

func TestRedisRevocationStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	store := NewRedisRevocationStore(client)

	require.NoError(t, store.Revoke(ctx, "secret-token", 30*time.Minute))
	revoked, err := store.IsRevoked(ctx, "secret-token")
	require.NoError(t, err)
	assert.True(t, revoked)

	key := "revoked:" + tokenKey("secret-token")
	assert.True(t, mr.Exists(key))
	assert.Equal(t, 30*time.Minute, mr.TTL(key))
	for _, k := range mr.Keys() {
		assert.NotContains(t, k, "secret-token")
	}

	mr.FastForward(31 * time.Minute)
	revoked, err = store.IsRevoked(ctx, "secret-token")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisRevocationStoreReportsErrors(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: 0})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	_, err := NewRedisRevocationStore(client).IsRevoked(context.Background(), "x")
	assert.Error(t, err)
}
