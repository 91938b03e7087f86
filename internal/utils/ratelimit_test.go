package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	now := time.Date(2025, 9, 6, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(5, 5)
	rl.now = func() time.Time { return now }

	for i := 0; i < 5; i++ {
		ok, wait := rl.Allow("10.0.0.1")
		assert.True(t, ok, "request %d", i+1)
		assert.Zero(t, wait)
	}

	ok, wait := rl.Allow("10.0.0.1")
	assert.False(t, ok)
	assert.InDelta(t, float64(12*time.Second), float64(wait), float64(time.Millisecond))

	// Other clients have their own bucket
	ok, _ = rl.Allow("10.0.0.2")
	assert.True(t, ok)

	// A token refills every twelve seconds
	now = now.Add(12 * time.Second)
	ok, _ = rl.Allow("10.0.0.1")
	assert.True(t, ok)
	ok, _ = rl.Allow("10.0.0.1")
	assert.False(t, ok)
}

func TestRateLimiter_Cleanup(t *testing.T) {
	now := time.Date(2025, 9, 6, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(5, 5)
	rl.now = func() time.Time { return now }

	rl.Allow("a")
	now = now.Add(10 * time.Minute)
	rl.Allow("b")
	assert.Equal(t, 2, rl.Len())

	rl.Cleanup(5 * time.Minute)
	assert.Equal(t, 1, rl.Len())
}

func TestNewRateLimiter_Defaults(t *testing.T) {
	rl := NewRateLimiter(0, 0)
	assert.Equal(t, 1, rl.burst)
}
