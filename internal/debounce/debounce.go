// Package debounce delays an action until input activity pauses.
package debounce

import (
	"sync"
	"time"
)

// Debouncer schedules a callback on the trailing edge of a burst of
// calls: each Do cancels any pending callback and schedules the new one
// after the configured delay, so only the last call in a window fires.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

// New creates a Debouncer with the given delay.
func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Do cancels any pending callback and schedules fn after the delay.
// fn runs on its own goroutine; its return value, if any, is not
// propagated.
func (d *Debouncer) Do(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending callback without scheduling a new one.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
