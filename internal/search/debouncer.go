package search

import "time"

// Timer is a cancellable pending callback
type Timer interface {
	// Stop prevents the callback from running. It reports false when the
	// callback already ran or was stopped.
	Stop() bool
}

// Scheduler starts timers. The zero-cost default wraps time.AfterFunc; tests
// substitute a manual clock.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemScheduler struct{}

func (systemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemScheduler runs callbacks on real timers
var SystemScheduler Scheduler = systemScheduler{}

// Debouncer collapses bursts of input into one fire per pause. It is owned
// by a single event loop: Schedule, Cancel and Accept must be called from it.
// The fire callback runs on the timer goroutine and should only post the
// sequence number back to the loop.
type Debouncer struct {
	scheduler Scheduler
	delay     time.Duration
	timer     Timer
	seq       uint64
}

// NewDebouncer creates a debouncer with the given pause length
func NewDebouncer(scheduler Scheduler, delay time.Duration) *Debouncer {
	if scheduler == nil {
		scheduler = SystemScheduler
	}
	return &Debouncer{scheduler: scheduler, delay: delay}
}

// Schedule cancels any pending timer and starts a new one
func (d *Debouncer) Schedule(fire func(seq uint64)) uint64 {
	d.Cancel()
	d.seq++
	seq := d.seq
	d.timer = d.scheduler.AfterFunc(d.delay, func() { fire(seq) })
	return seq
}

// Cancel stops the pending timer, if any
func (d *Debouncer) Cancel() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Pending reports whether a timer is scheduled and not yet accepted
func (d *Debouncer) Pending() bool {
	return d.timer != nil
}

// Accept consumes a fire for seq. A fire that raced with Cancel or a newer
// Schedule is rejected.
func (d *Debouncer) Accept(seq uint64) bool {
	if d.timer == nil || seq != d.seq {
		return false
	}
	d.timer = nil
	return true
}
