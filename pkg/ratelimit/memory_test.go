package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter_BurstThenDeny(t *testing.T) {
	l := NewMemoryLimiter(Config{Requests: 3, Window: time.Minute})
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		ok, err := l.Allow(context.Background(), "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, ok, "request %d", i)
	}

	ok, err := l.Allow(context.Background(), "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, ok)

	// other clients have their own bucket
	ok, err = l.Allow(context.Background(), "5.6.7.8")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryLimiter_Refills(t *testing.T) {
	l := NewMemoryLimiter(Config{Requests: 2, Window: time.Minute})
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		ok, _ := l.Allow(context.Background(), "k")
		require.True(t, ok)
	}
	ok, _ := l.Allow(context.Background(), "k")
	require.False(t, ok)

	now = now.Add(30 * time.Second)
	ok, _ = l.Allow(context.Background(), "k")
	assert.True(t, ok)
}

func TestMemoryLimiter_SweepsIdleBuckets(t *testing.T) {
	l := NewMemoryLimiter(Config{Requests: 1, Window: time.Minute})
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	_, _ = l.Allow(context.Background(), "a")
	now = now.Add(2 * time.Minute)
	_, _ = l.Allow(context.Background(), "b")

	assert.Len(t, l.buckets, 1)
	assert.Contains(t, l.buckets, "b")
}

func TestConfigNormalized(t *testing.T) {
	c := Config{}.normalized()

	assert.Equal(t, 20, c.Requests)
	assert.Equal(t, time.Minute, c.Window)
}
