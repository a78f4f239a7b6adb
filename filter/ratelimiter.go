package filter

import (
	"container/list"
	"sync"
	"time"

	"github.com/reactorlabs/pumpfun-sniper/types"
)

// RateLimiter is a sliding-window admission counter keyed by developer
// public key. Hand-rolled instead of golang.org/x/time/rate: the
// admission contract requires the stored sequence to contain only
// timestamps within the last window plus the just-recorded one, which a
// token-bucket limiter cannot reproduce exactly.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[types.PublicKey]*list.List // ordered timestamps, oldest first
}

// NewRateLimiter returns an empty limiter.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{windows: make(map[types.PublicKey]*list.List)}
}

// IsAllowed records now against dev's window and reports whether the
// resulting window (after trimming anything older than window and
// appending now) has length <= limit. The timestamp is recorded
// regardless of the outcome.
func (r *RateLimiter) IsAllowed(dev types.PublicKey, limit int, window time.Duration) bool {
	return r.isAllowedAt(dev, limit, window, time.Now())
}

// isAllowedAt is IsAllowed parameterized on "now" for deterministic tests.
func (r *RateLimiter) isAllowedAt(dev types.PublicKey, limit int, window time.Duration, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	timestamps, ok := r.windows[dev]
	if !ok {
		timestamps = list.New()
		r.windows[dev] = timestamps
	}

	cutoff := now.Add(-window)
	for front := timestamps.Front(); front != nil; {
		next := front.Next()
		if front.Value.(time.Time).Before(cutoff) {
			timestamps.Remove(front)
		}
		front = next
	}

	timestamps.PushBack(now)
	return timestamps.Len() <= limit
}
