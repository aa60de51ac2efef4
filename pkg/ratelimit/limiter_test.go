package ratelimit

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiterBurstThenBlock(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(2, time.Second)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		d, err := l.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, d.Allowed, "request %d", i)
	}

	d, err := l.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Greater(t, d.RetryAfter, time.Duration(0))

	// other keys have their own bucket
	d, err = l.Allow(ctx, "5.6.7.8")
	require.NoError(t, err)
	assert.True(t, d.Allowed)

	now = now.Add(time.Second)
	d, err = l.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestMemoryLimiterEvictsIdleBuckets(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(5, time.Minute)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		_, err := l.Allow(ctx, fmt.Sprintf("10.0.0.%d", i))
		require.NoError(t, err)
	}
	assert.Equal(t, 100, l.Len())

	now = now.Add(2 * time.Minute)
	_, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, 100, l.Len(), "buckets younger than the idle window stay")

	now = now.Add(5 * time.Minute)
	_, err = l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, 1, l.Len())

	// an evicted key starts over with a full bucket
	for i := 0; i < 5; i++ {
		d, err := l.Allow(ctx, "10.0.0.2")
		require.NoError(t, err)
		assert.True(t, d.Allowed)
	}
}
