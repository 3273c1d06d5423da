package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/opstracker/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInMemoryIdempotencyStore_MarkProcessed(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryIdempotencyStore(0)
	defer store.Close()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	first, err := store.MarkProcessed(ctx, "msg_1", time.Hour)
	require.NoError(t, err)
	assert.True(t, first)

	dup, err := store.MarkProcessed(ctx, "msg_1", time.Hour)
	require.NoError(t, err)
	assert.False(t, dup)

	now = now.Add(2 * time.Hour)
	expired, err := store.MarkProcessed(ctx, "msg_1", time.Hour)
	require.NoError(t, err)
	assert.True(t, expired)

	require.NoError(t, store.Forget(ctx, "msg_1"))
	again, err := store.MarkProcessed(ctx, "msg_1", time.Hour)
	require.NoError(t, err)
	assert.True(t, again)
}

func TestInMemoryIdempotencyStore_SingleWinner(t *testing.T) {
	store := NewInMemoryIdempotencyStore(0)
	defer store.Close()

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := store.MarkProcessed(context.Background(), "evt", time.Minute); ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins.Load())
}

func TestInMemoryIdempotencyStore_Sweep(t *testing.T) {
	store := NewInMemoryIdempotencyStore(0)
	defer store.Close()

	_, _ = store.MarkProcessed(context.Background(), "a", time.Millisecond)
	_, _ = store.MarkProcessed(context.Background(), "b", time.Hour)
	store.now = func() time.Time { return time.Now().Add(time.Minute) }
	store.sweep()
	assert.Equal(t, 1, store.Size())
}

func TestNewIdempotencyStore(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled redis uses memory", func(t *testing.T) {
		s, err := NewIdempotencyStore(ctx, config.RedisConfig{}, false, zap.NewNop())
		require.NoError(t, err)
		defer s.Close()
		assert.IsType(t, &InMemoryIdempotencyStore{}, s)
	})

	unreachable := config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}

	t.Run("unreachable redis falls back when allowed", func(t *testing.T) {
		s, err := NewIdempotencyStore(ctx, unreachable, true, zap.NewNop())
		require.NoError(t, err)
		defer s.Close()
		assert.IsType(t, &InMemoryIdempotencyStore{}, s)
	})

	t.Run("unreachable redis fails when fallback disallowed", func(t *testing.T) {
		_, err := NewIdempotencyStore(ctx, unreachable, false, zap.NewNop())
		assert.Error(t, err)
	})
}
