package debounce

import (
	"sync"
	"time"
)

// Debouncer coalesces a burst of triggers into one callback after the
// input settles. Safe for concurrent use: the config watcher triggers it
// from the fsnotify goroutine while the UI loop cancels or flushes it.
type Debouncer struct {
	mu       sync.Mutex
	delay    time.Duration
	timer    *time.Timer
	gen      uint64
	callback func()
}

func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules callback after the delay, replacing any pending one.
// The latest callback wins when triggers overlap.
func (d *Debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.callback = callback
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

// fire runs the pending callback unless a newer trigger, cancel, or flush
// superseded the timer while it was in flight.
func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	cb := d.callback
	d.timer = nil
	d.callback = nil
	d.mu.Unlock()
	if cb != nil {
		cb()
	}
}

// Cancel drops any pending callback.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.drop()
}

// Flush runs the pending callback immediately instead of waiting out the
// delay. A no-op when nothing is pending.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	cb := d.callback
	d.drop()
	d.mu.Unlock()
	if cb != nil {
		cb()
	}
}

// drop clears the timer and callback. Callers hold the lock.
func (d *Debouncer) drop() {
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.callback = nil
}

// SetDelay changes the delay for future triggers.
func (d *Debouncer) SetDelay(delay time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.delay = delay
}

// Pending reports whether a callback is waiting out the delay.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
