package drafts

import (
	"sync"
	"time"
)

// DefaultDebounceWindow matches the quiescence the admin forms wait for
// before persisting a draft.
const DefaultDebounceWindow = 2 * time.Second

// Debouncer delays flushing a snapshot until its input has gone quiet for a
// full window. It belongs to the caller; the draft Store stays a pure storage
// primitive and never debounces internally.
type Debouncer struct {
	window time.Duration
	flush  func(map[string]any)

	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]any
	armed   bool
}

// NewDebouncer builds a debouncer that invokes flush with the most recent
// snapshot once no Trigger call has arrived for window. A non-positive window
// falls back to DefaultDebounceWindow.
func NewDebouncer(window time.Duration, flush func(map[string]any)) *Debouncer {
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	return &Debouncer{window: window, flush: flush}
}

// Trigger records the latest snapshot and restarts the quiet-period timer.
func (d *Debouncer) Trigger(data map[string]any) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = data
	d.armed = true

	if d.timer == nil {
		d.timer = time.AfterFunc(d.window, d.fire)
		return
	}
	d.timer.Reset(d.window)
}

// Flush fires the pending snapshot immediately, if any. Used on submit so
// the final keystrokes are not lost to the window.
func (d *Debouncer) Flush() {
	d.fire()
}

// Stop cancels any pending flush without firing it.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.armed = false
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
	}
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if !d.armed {
		d.mu.Unlock()
		return
	}
	data := d.pending
	d.armed = false
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()

	d.flush(data)
}
