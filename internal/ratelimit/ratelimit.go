package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter defines the interface for rate limiting
type Limiter interface {
	Allow(key string) bool
}

// InMemoryLimiter keeps one token bucket per key in memory
type InMemoryLimiter struct {
	keys map[string]*rate.Limiter
	mu   sync.Mutex
	r    rate.Limit // rate of adding tokens
	b    int        // bucket size
}

// NewInMemoryLimiter creates a new rate limiter
// Example: NewInMemoryLimiter(10, time.Minute, 5) -> 10 writes per minute with bursts of 5
func NewInMemoryLimiter(requests int, per time.Duration, burst int) *InMemoryLimiter {
	if burst < 1 {
		burst = 1
	}
	return &InMemoryLimiter{
		keys: make(map[string]*rate.Limiter),
		r:    rate.Every(per / time.Duration(requests)),
		b:    burst,
	}
}

// Allow checks if key may perform one more action now
func (l *InMemoryLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.keys[key]
	if !exists {
		limiter = rate.NewLimiter(l.r, l.b)
		l.keys[key] = limiter
	}

	return limiter.Allow()
}
