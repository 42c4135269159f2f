// Package ratelimit implements an in-memory fixed-window request limiter
// keyed by client address.
package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"
)

const (
	// DefaultLimit is the number of requests allowed per window.
	DefaultLimit = 100
	// DefaultWindow is the length of a counting window.
	DefaultWindow = 15 * time.Minute
)

// Options configures a Limiter.
type Options struct {
	// Limit is the maximum number of requests a key may make per window.
	Limit int
	// Window is the duration after which a key's counter resets.
	Window time.Duration
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Result describes the outcome of a single Allow call.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
	// RetryAfter is the time left in the window, measured on the limiter's clock.
	RetryAfter time.Duration
}

// RetryAfterSeconds returns RetryAfter rounded up to whole seconds.
func (r Result) RetryAfterSeconds() int {
	if r.RetryAfter <= 0 {
		return 0
	}

	return int(math.Ceil(r.RetryAfter.Seconds()))
}

// window is the counter state of one key.
type window struct {
	count   int
	resetAt time.Time
}

// Limiter counts requests per key. Counters are created lazily on the first
// request of a key and start over once their window elapses. It is safe for
// concurrent use.
type Limiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	windows map[string]*window
}

// New returns a Limiter, applying defaults for zero option values.
func New(opts Options) *Limiter {
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.Window <= 0 {
		opts.Window = DefaultWindow
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Limiter{
		limit:   opts.Limit,
		window:  opts.Window,
		now:     opts.Now,
		windows: make(map[string]*window),
	}
}

// Limit returns the per-window request ceiling.
func (l *Limiter) Limit() int { return l.limit }

// Allow records one request for key and reports whether it fits in the
// current window. Rejected requests still count.
func (l *Limiter) Allow(key string) Result {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.windows[key]
	if w == nil || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(l.window)}
		l.windows[key] = w
	}
	w.count++

	return Result{
		Allowed:    w.count <= l.limit,
		Limit:      l.limit,
		Remaining:  max(l.limit-w.count, 0),
		ResetAt:    w.resetAt,
		RetryAfter: w.resetAt.Sub(now),
	}
}

// Reset forgets the counter of key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, key)
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.windows)
}

// Sweep drops every counter whose window has elapsed and returns how many
// were removed.
func (l *Limiter) Sweep() int {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, w := range l.windows {
		if !now.Before(w.resetAt) {
			delete(l.windows, key)
			removed++
		}
	}

	return removed
}

// Run sweeps expired counters every interval until ctx is done. A zero
// interval uses the limiter's window.
func (l *Limiter) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = l.window
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			l.Sweep()
		}
	}
}
