package debounce

import (
	"sync"
	"time"
)

// ManualScheduler queues timers until Advance is called. Tests use it to
// step through debounced work deterministically.
type ManualScheduler struct {
	mu      sync.Mutex
	pending []*manualTimer
}

type manualTimer struct {
	s       *ManualScheduler
	f       func()
	d       time.Duration
	stopped bool
}

func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	was := !t.stopped
	t.stopped = true
	return was
}

func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) Stopper {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{s: s, f: f, d: d}
	s.pending = append(s.pending, t)
	return t
}

// Pending returns the number of armed, unstopped timers.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.pending {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Advance fires every armed timer in arming order and returns how many ran.
func (s *ManualScheduler) Advance() int {
	s.mu.Lock()
	due := s.pending
	s.pending = nil
	var run []func()
	for _, t := range due {
		if !t.stopped {
			t.stopped = true
			run = append(run, t.f)
		}
	}
	s.mu.Unlock()
	for _, f := range run {
		f()
	}
	return len(run)
}
