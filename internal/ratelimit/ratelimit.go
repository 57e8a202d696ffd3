package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a fixed-window in-process counter keyed by identifier.
// State lives in this process only; a multi-process deployment needs a
// shared store instead.
type Limiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	counts map[string]*windowCount
	now    func() time.Time
}

type windowCount struct {
	start time.Time
	n     int
}

// NewLimiter allows `limit` events per `window` per key.
func NewLimiter(limit int, window time.Duration) *Limiter {
	return &Limiter{
		limit:  limit,
		window: window,
		counts: make(map[string]*windowCount),
		now:    time.Now,
	}
}

// Allow reports whether another event is permitted for the key and
// counts it if so.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	wc, ok := l.counts[key]
	if !ok || now.Sub(wc.start) >= l.window {
		l.counts[key] = &windowCount{start: now, n: 1}
		return true
	}
	if wc.n >= l.limit {
		return false
	}
	wc.n++
	return true
}
