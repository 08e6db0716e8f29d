package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is the debounce window of search and filter input.
const DefaultDelay = 200 * time.Millisecond

// Stopper cancels an armed timer. Stop reports whether the timer was still
// pending.
type Stopper interface {
	Stop() bool
}

// Scheduler arms timers. Implementations decide on which goroutine f runs.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Stopper
}

// RealScheduler uses time.AfterFunc; f runs on its own goroutine.
type RealScheduler struct{}

func (RealScheduler) AfterFunc(d time.Duration, f func()) Stopper { return time.AfterFunc(d, f) }

// ImmediateScheduler runs f synchronously, ignoring the delay.
type ImmediateScheduler struct{}

func (ImmediateScheduler) AfterFunc(_ time.Duration, f func()) Stopper {
	f()
	return noop{}
}

type noop struct{}

func (noop) Stop() bool { return false }

// Debouncer runs only the last function triggered within its delay.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	sched Scheduler
	stop  Stopper
	fn    func()
	gen   uint64
}

// New returns a debouncer; a nil scheduler means RealScheduler.
func New(delay time.Duration, s Scheduler) *Debouncer {
	if s == nil {
		s = RealScheduler{}
	}
	return &Debouncer{delay: delay, sched: s}
}

func (d *Debouncer) Delay() time.Duration { return d.delay }

// Trigger arms f, cancelling whatever was pending.
func (d *Debouncer) Trigger(f func()) {
	d.mu.Lock()
	d.cancelLocked()
	d.gen++
	g := d.gen
	d.fn = f
	d.mu.Unlock()

	s := d.sched.AfterFunc(d.delay, func() { d.fire(g) })

	d.mu.Lock()
	if d.gen == g && d.fn != nil {
		d.stop = s
	}
	d.mu.Unlock()
}

func (d *Debouncer) fire(g uint64) {
	d.mu.Lock()
	if g != d.gen || d.fn == nil {
		d.mu.Unlock()
		return
	}
	f := d.fn
	d.fn, d.stop = nil, nil
	d.mu.Unlock()
	f()
}

func (d *Debouncer) cancelLocked() {
	if d.stop != nil {
		d.stop.Stop()
		d.stop = nil
	}
	d.fn = nil
}

// Cancel drops the pending function, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	d.cancelLocked()
	d.gen++
	d.mu.Unlock()
}

// Pending reports whether a function is armed.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fn != nil
}

// Flush runs the pending function now and reports whether there was one.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	f := d.fn
	d.cancelLocked()
	d.gen++
	d.mu.Unlock()
	if f == nil {
		return false
	}
	f()
	return true
}
