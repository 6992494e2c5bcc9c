// Package debounce coalesces rapid query input so only the last value of a
// quiet period is searched.
package debounce

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultWindow is the quiet period between the last keystroke and a search.
const DefaultWindow = 120 * time.Millisecond

// Debouncer keeps a single pending value and a single timer.
// Each Add replaces the pending value and restarts the timer; the value is
// emitted on Output once the window passes without another Add.
type Debouncer struct {
	window  time.Duration
	mu      sync.Mutex
	pending string
	armed   bool
	seq     uint64
	timer   *time.Timer
	output  chan string
	stopped bool
}

// New creates a debouncer. A non-positive window uses DefaultWindow.
func New(window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Debouncer{
		window: window,
		output: make(chan string, 1),
	}
}

// Window returns the quiet period.
func (d *Debouncer) Window() time.Duration {
	return d.window
}

// Add records v as the latest value and restarts the timer.
func (d *Debouncer) Add(v string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.pending = v
	d.armed = true
	d.scheduleFlush()
}

// scheduleFlush replaces any running timer. Must be called with mu held.
func (d *Debouncer) scheduleFlush() {
	if d.timer != nil {
		d.timer.Stop()
	}

	d.seq++
	seq := d.seq
	d.timer = time.AfterFunc(d.window, func() {
		d.flush(seq)
	})
}

// flush emits the pending value if no newer Add or Cancel happened.
func (d *Debouncer) flush(seq uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	// A timer that fired while a newer Add held the lock is stale.
	if d.stopped || !d.armed || seq != d.seq {
		return
	}

	v := d.pending
	d.armed = false
	d.pending = ""

	select {
	case d.output <- v:
	default:
		slog.Warn("debouncer output full, dropping query",
			slog.Int("query_length", len(v)),
		)
	}
}

// Output returns the channel of debounced values.
func (d *Debouncer) Output() <-chan string {
	return d.output
}

// Pending reports whether a value is waiting for its window to pass.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.armed
}

// Cancel drops the pending value without emitting it.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	d.armed = false
	d.pending = ""
}

// Stop stops the debouncer and closes the output channel.
// Safe to call multiple times.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.stopped = true
	d.armed = false
	if d.timer != nil {
		d.timer.Stop()
	}
	close(d.output)
}
