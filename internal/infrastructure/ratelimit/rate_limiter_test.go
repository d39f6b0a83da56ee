package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestTokenBucketRefills(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tb := NewTokenBucket(Policy{Burst: 2, Every: 10 * time.Second}, start)

	ok, _ := tb.Allow(start)
	assert.True(t, ok)
	ok, _ = tb.Allow(start)
	assert.True(t, ok)

	ok, wait := tb.Allow(start.Add(4 * time.Second))
	assert.False(t, ok)
	assert.Equal(t, 6*time.Second, wait)

	ok, _ = tb.Allow(start.Add(10 * time.Second))
	assert.True(t, ok)
}

func TestRateLimiterSeparatesClientsAndActions(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2)
	rl.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		ok, _ := rl.Allow("1.1.1.1", ActionAuth)
		assert.True(t, ok)
	}
	ok, _ := rl.Allow("1.1.1.1", ActionAuth)
	assert.False(t, ok)

	ok, _ = rl.Allow("2.2.2.2", ActionAuth)
	assert.True(t, ok)
	ok, _ = rl.Allow("1.1.1.1", ActionGeneral)
	assert.True(t, ok)

	now = now.Add(2 * time.Hour)
	rl.Cleanup()
	assert.Empty(t, rl.buckets)
}

func TestRateLimiterRunStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewRateLimiter(5).Run(ctx, time.Millisecond)
		close(done)
	}()

	time.Sleep(5 * time.Millisecond)
	cancel()
	<-done
}
