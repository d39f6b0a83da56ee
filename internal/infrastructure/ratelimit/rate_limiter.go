package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Actions with their own buckets.
const (
	ActionAuth    = "auth"
	ActionUpload  = "upload"
	ActionGeneral = "general"
)

// Policy sizes a bucket: Burst tokens, refilled one at a time every Every.
type Policy struct {
	Burst int
	Every time.Duration
}

// TokenBucket represents a token bucket for rate limiting
type TokenBucket struct {
	tokens     int
	maxTokens  int
	refillTime time.Duration
	lastRefill time.Time
	lastUsed   time.Time
	mutex      sync.Mutex
}

func NewTokenBucket(p Policy, now time.Time) *TokenBucket {
	return &TokenBucket{
		tokens:     p.Burst,
		maxTokens:  p.Burst,
		refillTime: p.Every,
		lastRefill: now,
		lastUsed:   now,
	}
}

// Allow consumes a token if one is available. Otherwise it reports how long
// until the next refill.
func (tb *TokenBucket) Allow(now time.Time) (bool, time.Duration) {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()

	tb.lastUsed = now
	if tb.refillTime > 0 {
		refills := int(now.Sub(tb.lastRefill) / tb.refillTime)
		if refills > 0 {
			tb.tokens += refills
			if tb.tokens > tb.maxTokens {
				tb.tokens = tb.maxTokens
			}
			tb.lastRefill = tb.lastRefill.Add(time.Duration(refills) * tb.refillTime)
		}
	}

	if tb.tokens > 0 {
		tb.tokens--
		return true, 0
	}
	return false, tb.lastRefill.Add(tb.refillTime).Sub(now)
}

func (tb *TokenBucket) idleSince() time.Time {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()
	return tb.lastUsed
}

// RateLimiter keeps one bucket per client and action.
type RateLimiter struct {
	buckets  map[string]*TokenBucket
	policies map[string]Policy
	fallback Policy
	mutex    sync.RWMutex
	now      func() time.Time
}

// NewRateLimiter allows authPerMinute auth attempts per client per minute.
func NewRateLimiter(authPerMinute int) *RateLimiter {
	if authPerMinute <= 0 {
		authPerMinute = 5
	}
	return &RateLimiter{
		buckets: make(map[string]*TokenBucket),
		policies: map[string]Policy{
			ActionAuth:   {Burst: authPerMinute, Every: time.Minute / time.Duration(authPerMinute)},
			ActionUpload: {Burst: 10, Every: 6 * time.Second},
		},
		fallback: Policy{Burst: 60, Every: time.Second},
		now:      time.Now,
	}
}

func (rl *RateLimiter) policy(action string) Policy {
	if p, ok := rl.policies[action]; ok {
		return p
	}
	return rl.fallback
}

// Allow checks whether client may perform action now.
func (rl *RateLimiter) Allow(client, action string) (bool, time.Duration) {
	key := client + ":" + action
	now := rl.now()

	rl.mutex.RLock()
	bucket, exists := rl.buckets[key]
	rl.mutex.RUnlock()

	if !exists {
		rl.mutex.Lock()
		if bucket, exists = rl.buckets[key]; !exists {
			bucket = NewTokenBucket(rl.policy(action), now)
			rl.buckets[key] = bucket
		}
		rl.mutex.Unlock()
	}

	return bucket.Allow(now)
}

// Cleanup drops buckets idle for longer than an hour.
func (rl *RateLimiter) Cleanup() {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	for key, bucket := range rl.buckets {
		if now.Sub(bucket.idleSince()) > time.Hour {
			delete(rl.buckets, key)
		}
	}
}

// Run cleans up periodically until ctx is done.
func (rl *RateLimiter) Run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.Cleanup()
		}
	}
}
