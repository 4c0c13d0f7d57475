// Package refresh debounces recompute triggers.
//
// Dashboard aggregates are cheap to rebuild but writes arrive in bursts
// (imports, quick manual entry), so invalidating on every single write is
// wasteful. The Debouncer coalesces triggers per key: the callback fires
// after a quiet period, and a max-delay bound guarantees a steady stream
// of triggers still flushes. All timer state lives here; the budget engine
// itself stays pure.
package refresh

import (
	"sync"
	"time"
)

// Debouncer coalesces Trigger calls per key and invokes fn with that key
// once the burst settles.
type Debouncer struct {
	quiet    time.Duration
	maxDelay time.Duration
	fn       func(key string)

	mu      sync.Mutex
	pending map[string]*pendingKey
	stopped bool
}

type pendingKey struct {
	timer *time.Timer
	first time.Time
}

// NewDebouncer creates a Debouncer that calls fn after quiet has elapsed
// without a new trigger for the key, or after maxDelay since the first
// trigger of the burst, whichever comes first.
func NewDebouncer(quiet, maxDelay time.Duration, fn func(key string)) *Debouncer {
	return &Debouncer{
		quiet:    quiet,
		maxDelay: maxDelay,
		fn:       fn,
		pending:  make(map[string]*pendingKey),
	}
}

// Trigger schedules a callback for key, extending any pending one up to
// the max-delay bound. Safe for concurrent use.
func (d *Debouncer) Trigger(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	now := time.Now()
	if p, ok := d.pending[key]; ok {
		delay := d.quiet
		if remaining := d.maxDelay - now.Sub(p.first); remaining < delay {
			delay = remaining
		}
		if delay < 0 {
			delay = 0
		}
		p.timer.Reset(delay)
		return
	}

	p := &pendingKey{first: now}
	p.timer = time.AfterFunc(d.quiet, func() { d.fire(key) })
	d.pending[key] = p
}

// fire runs the callback outside the lock and clears the pending entry.
func (d *Debouncer) fire(key string) {
	d.mu.Lock()
	_, ok := d.pending[key]
	delete(d.pending, key)
	stopped := d.stopped
	d.mu.Unlock()

	if ok && !stopped {
		d.fn(key)
	}
}

// Stop cancels all pending callbacks. Triggers after Stop are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	for key, p := range d.pending {
		p.timer.Stop()
		delete(d.pending, key)
	}
}
