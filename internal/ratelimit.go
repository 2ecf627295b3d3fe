package internal

import (
	"sync"
	"time"
)

// RateLimiter counts operations per (user, operation) in fixed windows.
// Mirrors the platform's rate_limits rows but lives in memory: the counters
// only need to survive a window, not a restart.
type RateLimiter struct {
	mu     sync.Mutex
	window time.Duration
	max    int
	now    func() time.Time
	counts map[string]*windowCount
}

type windowCount struct {
	start time.Time
	count int
}

func NewRateLimiter(window time.Duration, max int) *RateLimiter {
	return &RateLimiter{
		window: window,
		max:    max,
		now:    time.Now,
		counts: make(map[string]*windowCount),
	}
}

// Allow reports whether the operation may proceed, counting it if so.
func (r *RateLimiter) Allow(userID, operation string) bool {
	key := userID + ":" + operation
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	wc, ok := r.counts[key]
	if !ok || now.Sub(wc.start) >= r.window {
		r.counts[key] = &windowCount{start: now, count: 1}
		return true
	}
	if wc.count >= r.max {
		return false
	}
	wc.count++
	return true
}
