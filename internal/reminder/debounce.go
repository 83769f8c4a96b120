package reminder

import (
	"sync"
	"time"
)

// SettingsDebounceDelay is how long a settings change is allowed to
// settle before the reminder job is rescheduled. Dragging an interval
// control fires many changes in quick succession; only the last one
// should reach the scheduler.
const SettingsDebounceDelay = 500 * time.Millisecond

// Debouncer coalesces bursts of triggers into a single deferred call.
// A new trigger while the delay is pending resets the timer; Stop
// cancels a pending call outright.
type Debouncer struct {
	delay time.Duration
	fn    func()

	mu    sync.Mutex
	timer *time.Timer
}

func NewDebouncer(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{
		delay: delay,
		fn:    fn,
	}
}

// Trigger schedules fn to run after the delay, cancelling any pending
// run first.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fn)
}

// Stop cancels a pending run, if any. It does not wait for a run that
// has already started.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
