package loadercache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/utils/cache"
)

func TestLoaderCacheGet(t *testing.T) {
	loads := 0
	c := New[string, int](
		WithLoader[string, int](func(_ context.Context, key string) (*int, error) {
			loads++
			v := len(key)
			return &v, nil
		}),
	)

	ctx := context.Background()
	got, err := c.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, 3, *got)

	// second read is served from the cache
	_, err = c.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, 1, loads)

	_, err = c.Get(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, 2, loads)
}

func TestLoaderCacheLoaderError(t *testing.T) {
	wantErr := errors.New("source unavailable")
	loads := 0
	c := New[string, int](
		WithLoader[string, int](func(context.Context, string) (*int, error) {
			loads++
			return nil, wantErr
		}),
	)

	ctx := context.Background()
	_, err := c.Get(ctx, "x")
	assert.ErrorIs(t, err, wantErr)

	// errors are not cached
	_, err = c.Get(ctx, "x")
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 2, loads)
}

func TestLoaderCacheWithoutLoader(t *testing.T) {
	c := New[string, int]()
	_, err := c.Get(context.Background(), "x")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestLoaderCacheInvalidate(t *testing.T) {
	loads := 0
	c := New[string, int](
		WithExpiration[string, int](time.Hour),
		WithLoader[string, int](func(context.Context, string) (*int, error) {
			loads++
			v := loads
			return &v, nil
		}),
	)

	ctx := context.Background()
	first, err := c.Get(ctx, "x")
	require.NoError(t, err)

	c.Invalidate(ctx, "x")
	second, err := c.Get(ctx, "x")
	require.NoError(t, err)
	assert.NotEqual(t, *first, *second)
}
