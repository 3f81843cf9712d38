package http

import (
	"sync"
	"time"
)

type bucket struct {
	tokens   float64
	refilled time.Time
	lastSeen time.Time
}

// RateLimiter is a token bucket limiter keyed by client address. Buckets idle for
// longer than the TTL are pruned in the background until Close is called.
type RateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	burst     float64
	perSecond float64
	ttl       time.Duration
	now       func() time.Time
	stop      chan struct{}
	closeOnce sync.Once
}

// NewRateLimiter constructs a limiter allowing burst requests refilled at perSecond.
func NewRateLimiter(burst int, perSecond float64, ttl time.Duration) *RateLimiter {
	rl := &RateLimiter{
		buckets:   make(map[string]*bucket),
		burst:     float64(burst),
		perSecond: perSecond,
		ttl:       ttl,
		now:       time.Now,
		stop:      make(chan struct{}),
	}

	if ttl > 0 {
		go rl.pruneLoop()
	}

	return rl
}

// Allow consumes a token for the key if one is available.
func (rl *RateLimiter) Allow(key string) bool {
	if key == "" {
		key = "unknown"
	}

	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{tokens: rl.burst, refilled: now}
		rl.buckets[key] = b
	}
	b.lastSeen = now

	if elapsed := now.Sub(b.refilled).Seconds(); elapsed > 0 {
		b.tokens = min(rl.burst, b.tokens+elapsed*rl.perSecond)
		b.refilled = now
	}

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// Close stops the background pruning.
func (rl *RateLimiter) Close() {
	rl.closeOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) pruneLoop() {
	ticker := time.NewTicker(rl.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.pruneStale()
		}
	}
}

func (rl *RateLimiter) pruneStale() {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, b := range rl.buckets {
		if now.Sub(b.lastSeen) > rl.ttl {
			delete(rl.buckets, key)
		}
	}
}

func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.buckets)
}
