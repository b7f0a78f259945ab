package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

// Error is returned when a client's admission is denied.
type Error struct {
	Bucket string
	Client string
}

func (e *Error) Error() string {
	return fmt.Sprintf("rate limit exceeded for %s:%s, please slow down", e.Bucket, e.Client)
}

// Limiter is an exact sliding-window admission controller. Each
// (bucket, client) key holds a time-ordered history of past admissions;
// memory cost is O(admissions in window) per active key. State is
// in-memory only and does not survive a restart.
type Limiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	history map[string][]time.Time
}

func NewLimiter(limit int, window time.Duration) *Limiter {
	return &Limiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		history: make(map[string][]time.Time),
	}
}

// Allow trims admissions older than the window from the key's history,
// then either rejects (history untouched) or records the admission.
func (l *Limiter) Allow(bucket, client string) error {
	key := bucket + ":" + client
	now := l.now()
	windowStart := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	history := l.history[key]
	start := 0
	for start < len(history) && history[start].Before(windowStart) {
		start++
	}
	history = history[start:]

	if len(history) >= l.limit {
		l.history[key] = history
		return &Error{Bucket: bucket, Client: client}
	}

	l.history[key] = append(history, now)
	return nil
}
