// SPDX-License-Identifier: GPL-3.0-or-later

package panel

import (
	"sync"
	"time"
)

// debouncer calls fn once the triggers stop for delay. Every trigger restarts the wait.
type debouncer struct {
	fn func()

	mux    sync.Mutex
	delay  time.Duration
	timer  *time.Timer
	closed bool
}

func newDebouncer(delay time.Duration, fn func()) *debouncer {
	return &debouncer{delay: delay, fn: fn}
}

func (d *debouncer) trigger() {
	d.mux.Lock()
	defer d.mux.Unlock()

	if d.closed {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fn)
}

func (d *debouncer) setDelay(delay time.Duration) {
	d.mux.Lock()
	defer d.mux.Unlock()
	d.delay = delay
}

// stop drops the pending call. Later triggers are ignored.
func (d *debouncer) stop() {
	d.mux.Lock()
	defer d.mux.Unlock()

	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
