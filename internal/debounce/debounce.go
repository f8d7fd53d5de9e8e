// Package debounce provides a single-slot debounced task: scheduling a
// new task replaces any pending one, so a burst of events collapses
// into one execution after a quiet period.
package debounce

import (
	"sync"
	"time"
)

// Debouncer holds at most one pending task. Schedule replaces the
// pending task, Flush runs it immediately, Cancel drops it.
type Debouncer struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending func()
}

// New creates an idle Debouncer
func New() *Debouncer {
	return &Debouncer{}
}

// Schedule arranges for fn to run after delay. Any previously pending
// task is cancelled first.
func (d *Debouncer) Schedule(delay time.Duration, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = fn
	d.timer = time.AfterFunc(delay, func() {
		d.mu.Lock()
		fn := d.pending
		d.pending = nil
		d.timer = nil
		d.mu.Unlock()
		if fn != nil {
			fn()
		}
	})
}

// Flush runs the pending task now, if any, and clears the slot
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	fn := d.pending
	d.pending = nil
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Cancel drops the pending task without running it
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
}

// Pending reports whether a task is waiting to run
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}
