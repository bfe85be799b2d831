package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedWindow_EnforcesLimit(t *testing.T) {
	fw := newFixedWindowLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		allowed, _, _ := fw.allow("rl:user:7")
		assert.True(t, allowed, "request %d should pass", i+1)
	}
	allowed, remaining, retryAfter := fw.allow("rl:user:7")
	assert.False(t, allowed)
	assert.Zero(t, remaining)
	assert.Greater(t, retryAfter, time.Duration(0))
}

func TestFixedWindow_KeysAreIndependent(t *testing.T) {
	fw := newFixedWindowLimiter(1, time.Minute)

	allowed, _, _ := fw.allow("rl:user:1")
	assert.True(t, allowed)
	allowed, _, _ = fw.allow("rl:user:1")
	assert.False(t, allowed)

	// A different actor still has a full budget.
	allowed, _, _ = fw.allow("rl:user:2")
	assert.True(t, allowed)
}

func TestFixedWindow_ResetsAfterWindow(t *testing.T) {
	fw := newFixedWindowLimiter(1, time.Minute)
	current := time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC)
	fw.now = func() time.Time { return current }

	allowed, _, _ := fw.allow("rl:user:9")
	assert.True(t, allowed)
	allowed, _, _ = fw.allow("rl:user:9")
	assert.False(t, allowed)

	current = current.Add(61 * time.Second)
	allowed, remaining, _ := fw.allow("rl:user:9")
	assert.True(t, allowed)
	assert.Zero(t, remaining)
}

func TestFixedWindow_RemainingCountsDown(t *testing.T) {
	fw := newFixedWindowLimiter(5, time.Minute)

	_, remaining, _ := fw.allow("k")
	assert.Equal(t, 4, remaining)
	_, remaining, _ = fw.allow("k")
	assert.Equal(t, 3, remaining)
}
