// Package ratelimit throttles requests per client and endpoint with token
// buckets.
package ratelimit

import (
	"sync"
	"time"
)

type bucket struct {
	capacity   float64
	refillRate float64 // tokens per second
	tokens     float64
	last       time.Time
}

func (b *bucket) refill(now time.Time) {
	elapsed := now.Sub(b.last).Seconds()
	if elapsed > 0 {
		b.tokens = min(b.capacity, b.tokens+elapsed*b.refillRate)
	}
	b.last = now
}

// take consumes a token if one is available and reports the state after.
func (b *bucket) take(now time.Time) (bool, int, time.Duration) {
	b.refill(now)
	allowed := b.tokens >= 1
	if allowed {
		b.tokens--
	}
	var untilNext time.Duration
	if b.tokens < 1 && b.refillRate > 0 {
		untilNext = time.Duration((1 - b.tokens) / b.refillRate * float64(time.Second))
	}
	return allowed, int(b.tokens), untilNext
}

// Info describes the limit applied to one request.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter tracks one bucket per client, method and path.
type Limiter struct {
	mu      sync.Mutex
	cfg     *Config
	buckets map[string]*bucket
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

// NewLimiter creates a limiter. A nil config disables limiting.
func NewLimiter(cfg *Config, opts ...Option) *Limiter {
	if cfg == nil {
		cfg = &Config{}
	}
	l := &Limiter{
		cfg:     cfg,
		buckets: make(map[string]*bucket),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	if cfg.Enabled && cfg.CleanupInterval > 0 {
		go l.cleanupLoop(cfg.CleanupInterval)
	}
	return l
}

// Allow records a request and reports whether it may proceed.
func (l *Limiter) Allow(clientID, path, method string) Info {
	if !l.cfg.Enabled || l.cfg.Allowlist[clientID] {
		return Info{Allowed: true}
	}

	ec := Match(path, method, l.cfg.Endpoints)
	if ec == nil {
		ec = &EndpointConfig{Limit: l.cfg.DefaultLimit, Window: l.cfg.DefaultWindow}
	}
	if ec.Limit <= 0 || ec.Window <= 0 {
		return Info{Allowed: true}
	}

	key := clientID + " " + method + " " + ec.Path
	if ec.Path == "" {
		key = clientID + " " + method + " " + path
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		burst := ec.Burst
		if burst <= 0 {
			burst = ec.Limit
		}
		b = &bucket{
			capacity:   float64(burst),
			refillRate: float64(ec.Limit) / ec.Window.Seconds(),
			tokens:     float64(burst),
			last:       now,
		}
		l.buckets[key] = b
	}

	allowed, remaining, untilNext := b.take(now)
	info := Info{Allowed: allowed, Limit: ec.Limit, Remaining: remaining}
	if !allowed {
		info.RetryAfter = untilNext
	}
	return info
}

func (l *Limiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.Sweep()
		case <-l.stop:
			return
		}
	}
}

// Sweep drops buckets idle for longer than the configured TTL.
func (l *Limiter) Sweep() {
	ttl := l.cfg.IdleTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	cutoff := l.now().Add(-ttl)
	for key, b := range l.buckets {
		if b.last.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Len returns the number of tracked buckets.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}
