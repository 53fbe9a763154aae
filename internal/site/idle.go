package site

import (
	"sync"
	"time"
)

// Activity kinds that restart the idle countdown.
const (
	ActivityMouseMove  = "mousemove"
	ActivityKeyDown    = "keydown"
	ActivityScroll     = "scroll"
	ActivityTouchStart = "touchstart"
)

// IdleDetector restarts a countdown on every activity and runs its hooks
// when the countdown expires. No hook is registered by default.
type IdleDetector struct {
	mu      sync.Mutex
	clock   Clock
	timeout time.Duration
	timer   Timer
	hooks   []func()
	last    time.Time
	gen     int
}

// NewIdleDetector returns a stopped detector.
func NewIdleDetector(clock Clock, timeout time.Duration) *IdleDetector {
	return &IdleDetector{clock: clock, timeout: timeout}
}

// OnIdle registers a hook run on expiry.
func (d *IdleDetector) OnIdle(hook func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hooks = append(d.hooks, hook)
}

// Touch records activity and restarts the countdown.
func (d *IdleDetector) Touch() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.last = d.clock.Now()
	d.gen++
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.timeout, func() { d.expire(gen) })
}

// LastActivity returns the time of the last Touch.
func (d *IdleDetector) LastActivity() time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last
}

// Stop cancels the pending countdown.
func (d *IdleDetector) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

func (d *IdleDetector) expire(gen int) {
	d.mu.Lock()
	if gen != d.gen {
		// superseded by a later Touch or Stop
		d.mu.Unlock()
		return
	}
	hooks := append([]func(){}, d.hooks...)
	d.timer = nil
	d.mu.Unlock()

	for _, hook := range hooks {
		hook()
	}
}
