// Package watch calls back when watched files change on disk.
// Bursts of events for one path are collapsed into a single callback.
package watch

import (
	"sync"
	"time"
)

// DefaultDelay is how long a path must stay quiet before its callback runs.
const DefaultDelay = 500 * time.Millisecond

type debouncer struct {
	mu       sync.Mutex
	delay    time.Duration
	timers   map[string]*time.Timer
	onChange func(string)
	stopped  bool
}

func newDebouncer(delay time.Duration, onChange func(string)) *debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &debouncer{
		delay:    delay,
		timers:   make(map[string]*time.Timer),
		onChange: onChange,
	}
}

// trigger (re)starts the quiet period for path.
func (d *debouncer) trigger(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	if timer, exists := d.timers[path]; exists {
		timer.Stop()
	}
	var timer *time.Timer
	timer = time.AfterFunc(d.delay, func() { d.fire(path, timer) })
	d.timers[path] = timer
}

// fire runs the callback for path unless timer has since been replaced or
// the debouncer stopped.
func (d *debouncer) fire(path string, timer *time.Timer) {
	d.mu.Lock()
	if d.stopped || d.timers[path] != timer {
		d.mu.Unlock()
		return
	}
	delete(d.timers, path)
	d.mu.Unlock()
	d.onChange(path)
}

// stop cancels every pending callback. Later triggers are ignored.
func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	for path, timer := range d.timers {
		timer.Stop()
		delete(d.timers, path)
	}
}
