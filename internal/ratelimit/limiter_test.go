package ratelimit

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiterFixedWindow(t *testing.T) {
	store := NewMemoryStore()
	current := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	l := New(store, 3, 60*time.Second)

	assert.True(t, l.Allow("1.2.3.4"))
	assert.True(t, l.Allow("1.2.3.4"))
	assert.True(t, l.Allow("1.2.3.4"))
	assert.False(t, l.Allow("1.2.3.4"))

	// pencere dolunca sayaç sıfırlanır
	current = current.Add(61 * time.Second)
	assert.True(t, l.Allow("1.2.3.4"))
}

func TestMemoryLimiterKeysAreIndependent(t *testing.T) {
	store := NewMemoryStore()
	l := New(store, 1, time.Minute)

	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"))
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	l := New(NewRedisStore(client), 2, time.Minute)

	assert.True(t, l.Allow("5.6.7.8"))
	assert.True(t, l.Allow("5.6.7.8"))
	assert.False(t, l.Allow("5.6.7.8"))

	mr.FastForward(61 * time.Second)
	assert.True(t, l.Allow("5.6.7.8"))
}

func TestLimiterFailsOpenOnStoreError(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	l := New(NewRedisStore(client), 1, time.Minute)

	require.True(t, l.Allow("x"))
	mr.Close()
	// store ulaşılmazken limiter istekleri engellemez
	assert.True(t, l.Allow("x"))
}
