package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bookstore/pkg/cache"
)

func TestRememberWithoutRedisAlwaysComputes(t *testing.T) {
	cache.Use(nil)
	ctx := context.Background()

	calls := 0
	fn := func(context.Context) (int, error) {
		calls++
		return 42, nil
	}

	for i := 0; i < 3; i++ {
		v, err := cache.Remember(ctx, "analytics:revenue", time.Minute, fn)
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	}
	assert.Equal(t, 3, calls)
}

func TestRememberPropagatesErrors(t *testing.T) {
	cache.Use(nil)
	boom := errors.New("store down")

	_, err := cache.Remember(context.Background(), "k", time.Minute, func(context.Context) (string, error) {
		return "", boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestHelpersAreNoopsWithoutRedis(t *testing.T) {
	cache.Use(nil)
	ctx := context.Background()

	var dest string
	assert.False(t, cache.Get(ctx, "k", &dest))
	assert.NoError(t, cache.Set(ctx, "k", "v", time.Minute))
	assert.NoError(t, cache.Forget(ctx, "k"))
	assert.NoError(t, cache.ForgetMatching(ctx, "analytics:*"))
}
