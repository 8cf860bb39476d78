package enrich

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderedKeepsInputOrder(t *testing.T) {
	items := []int{5, 1, 4, 2, 3}
	got, err := Ordered(context.Background(), items, 3, func(ctx context.Context, n int) (string, error) {
		time.Sleep(time.Duration(n) * time.Millisecond)
		return fmt.Sprintf("#%d", n), nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"#5", "#1", "#4", "#2", "#3"}, got)
}

func TestOrderedRespectsLimit(t *testing.T) {
	var running, peak int32
	items := make([]int, 20)
	_, err := Ordered(context.Background(), items, 2, func(ctx context.Context, _ int) (int, error) {
		n := atomic.AddInt32(&running, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		atomic.AddInt32(&running, -1)
		return 0, nil
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestOrderedFailsWhole(t *testing.T) {
	boom := errors.New("boom")
	got, err := Ordered(context.Background(), []int{1, 2, 3}, 0, func(ctx context.Context, n int) (int, error) {
		if n == 2 {
			return 0, boom
		}
		return n, nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, got)
}

func TestOrderedEmpty(t *testing.T) {
	got, err := Ordered(context.Background(), nil, 4, func(ctx context.Context, n int) (int, error) {
		return n, nil
	})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPair(t *testing.T) {
	a, b, err := Pair(context.Background(),
		func(ctx context.Context) (string, error) { return "author", nil },
		func(ctx context.Context) (string, error) { return "committer", nil },
	)
	require.NoError(t, err)
	assert.Equal(t, "author", a)
	assert.Equal(t, "committer", b)

	boom := errors.New("boom")
	a, b, err = Pair(context.Background(),
		func(ctx context.Context) (string, error) { return "author", nil },
		func(ctx context.Context) (string, error) { return "", boom },
	)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, a)
	assert.Empty(t, b)
}

func TestAvatarCache(t *testing.T) {
	cache := NewAvatarCache(8)
	require.NotNil(t, cache)

	var calls int32
	fetch := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "https://example.com/a.png", nil
	}
	for range 3 {
		v, err := cache.Resolve(context.Background(), "github:user:alice", fetch)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/a.png", v)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, 1, cache.Len())

	empty := func(ctx context.Context) (string, error) { return "", nil }
	_, err := cache.Resolve(context.Background(), "gitcode:user:ghost", empty)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())

	boom := errors.New("boom")
	_, err = cache.Resolve(context.Background(), "gitee:org:x", func(ctx context.Context) (string, error) { return "", boom })
	assert.ErrorIs(t, err, boom)
}

func TestNilAvatarCache(t *testing.T) {
	var cache *AvatarCache
	assert.Nil(t, NewAvatarCache(0))

	var calls int
	for range 2 {
		v, err := cache.Resolve(context.Background(), "k", func(ctx context.Context) (string, error) {
			calls++
			return "v", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "v", v)
	}
	assert.Equal(t, 2, calls)
	assert.Equal(t, 0, cache.Len())
}
