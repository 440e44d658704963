package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter enforces a hard sliding window per key (client IP in practice):
// at most `limit` events in any `window`. Timestamps are kept per key and
// pruned as they age out, so the request after the limit inside the window
// is always rejected no matter how the earlier ones were spaced.
type Limiter struct {
	mu     sync.Mutex
	events map[string][]time.Time
	window time.Duration
	limit  int
}

func New(window time.Duration, limit int) *Limiter {
	return &Limiter{
		events: make(map[string][]time.Time),
		window: window,
		limit:  limit,
	}
}

func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	kept := l.events[key][:0]
	for _, ts := range l.events[key] {
		if now.Sub(ts) < l.window {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= l.limit {
		l.events[key] = kept
		return false
	}
	l.events[key] = append(kept, now)
	return true
}

// RetryAfter reports how long until the key's oldest in-window event ages
// out, i.e. the earliest moment a rejected caller could succeed.
func (l *Limiter) RetryAfter(key string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	events := l.events[key]
	if len(events) < l.limit {
		return 0
	}
	remaining := l.window - time.Since(events[0])
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (l *Limiter) Cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for key, events := range l.events {
		if len(events) == 0 || now.Sub(events[len(events)-1]) > l.window {
			delete(l.events, key)
		}
	}
}

func (l *Limiter) StartCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			l.Cleanup()
		}
	}()
}

// Bucket hands out one token bucket per key. Unlike Limiter it refills
// smoothly, which suits throttles where sustained floods are the concern
// rather than an exact per-window count (login attempts, not suggestions).
type Bucket struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	every    time.Duration
	burst    int
}

type visitor struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// NewBucket returns a limiter that refills one token per `every` with a
// bucket of `burst`.
func NewBucket(every time.Duration, burst int) *Bucket {
	return &Bucket{
		visitors: make(map[string]*visitor),
		every:    every,
		burst:    burst,
	}
}

func (b *Bucket) Allow(key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	v, ok := b.visitors[key]
	if !ok {
		v = &visitor{lim: rate.NewLimiter(rate.Every(b.every), b.burst)}
		b.visitors[key] = v
	}
	v.lastSeen = time.Now()
	return v.lim.Allow()
}

func (b *Bucket) Cleanup(olderThan time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	for key, v := range b.visitors {
		if now.Sub(v.lastSeen) > olderThan {
			delete(b.visitors, key)
		}
	}
}

func (b *Bucket) StartCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			b.Cleanup(interval)
		}
	}()
}

// ClientIP extracts the caller's address, preferring proxy headers set by the
// hosting platform's load balancer.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.Index(fwd, ","); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
