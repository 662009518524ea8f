package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetOrLoad_DeduplicatesConcurrentMisses(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			assert.NoError(t, err)
			assert.Equal(t, "value", v)
		}()
	}

	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestStore_Expiry(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Second)
	now := time.Date(2026, 3, 7, 18, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "k", 1)
	_, ok := store.Get(context.Background(), "k")
	require.True(t, ok)

	now = now.Add(2 * time.Second)
	_, ok = store.Get(context.Background(), "k")
	assert.False(t, ok, "entry should expire after ttl")
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()
	store.Set(ctx, "leaderboard:t1", 1)
	store.Set(ctx, "leaderboard:t2", 2)
	store.Set(ctx, "columns:teams", 3)

	store.DeletePrefix(ctx, "leaderboard:")

	_, ok := store.Get(ctx, "leaderboard:t1")
	assert.False(t, ok)
	_, ok = store.Get(ctx, "columns:teams")
	assert.True(t, ok)
}

func TestStore_LoaderErrorIsNotCached(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	boom := errors.New("boom")
	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return nil, boom
	}

	_, err := store.GetOrLoad(context.Background(), "k", loader)
	require.ErrorIs(t, err, boom)
	_, err = store.GetOrLoad(context.Background(), "k", loader)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}

func TestLoad_TypedAndNilStore(t *testing.T) {
	t.Parallel()

	var disabled *Store
	calls := 0
	loader := func(context.Context) ([]string, error) {
		calls++
		return []string{"a"}, nil
	}

	for i := 0; i < 2; i++ {
		got, err := Load(context.Background(), disabled, "k", loader)
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, got)
	}
	assert.Equal(t, 2, calls, "nil store must not cache")

	store := NewStore(time.Minute)
	store.Set(context.Background(), "wrong", 42)
	_, err := Load(context.Background(), store, "wrong", loader)
	assert.Error(t, err)
}
