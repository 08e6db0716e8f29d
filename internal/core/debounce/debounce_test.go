package debounce

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestOnlyLastTriggerRuns(t *testing.T) {
	s := &ManualScheduler{}
	d := New(DefaultDelay, s)
	var got []string
	d.Trigger(func() { got = append(got, "a") })
	d.Trigger(func() { got = append(got, "b") })
	d.Trigger(func() { got = append(got, "c") })
	if s.Pending() != 1 {
		t.Fatalf("want 1 armed timer got %d", s.Pending())
	}
	s.Advance()
	if len(got) != 1 || got[0] != "c" {
		t.Fatalf("want [c] got %v", got)
	}
	if d.Pending() {
		t.Fatal("nothing should be pending after firing")
	}
}

func TestCancelAndFlush(t *testing.T) {
	s := &ManualScheduler{}
	d := New(time.Second, s)
	ran := 0
	d.Trigger(func() { ran++ })
	d.Cancel()
	s.Advance()
	if ran != 0 {
		t.Fatal("cancelled function ran")
	}
	d.Trigger(func() { ran++ })
	if !d.Flush() || ran != 1 {
		t.Fatalf("flush should run the pending function, ran=%d", ran)
	}
	s.Advance()
	if ran != 1 {
		t.Fatal("flushed function ran twice")
	}
	if d.Flush() {
		t.Fatal("nothing left to flush")
	}
}

func TestImmediateScheduler(t *testing.T) {
	d := New(0, ImmediateScheduler{})
	ran := false
	d.Trigger(func() { ran = true })
	if !ran || d.Pending() {
		t.Fatalf("immediate scheduler should run synchronously, ran=%v pending=%v", ran, d.Pending())
	}
}

func TestRealScheduler(t *testing.T) {
	d := New(5*time.Millisecond, nil)
	var n atomic.Int32
	done := make(chan struct{})
	d.Trigger(func() { n.Add(1) })
	d.Trigger(func() { n.Add(10); close(done) })
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced function never ran")
	}
	time.Sleep(20 * time.Millisecond)
	if n.Load() != 10 {
		t.Fatalf("want only the last trigger, got %d", n.Load())
	}
}

func TestTeaSchedulerRunsOnFire(t *testing.T) {
	s := NewTeaScheduler()
	d := New(time.Millisecond, s)
	var got []int
	d.Trigger(func() { got = append(got, 1) })
	d.Trigger(func() { got = append(got, 2) })
	if cmd := s.Drain(); cmd == nil {
		t.Fatal("want tick commands")
	}
	if s.Drain() != nil {
		t.Fatal("drain should clear the queue")
	}
	if s.Fire(FireMsg{ID: 1, sched: s}) {
		t.Fatal("stopped timer must not fire")
	}
	if !s.Fire(FireMsg{ID: 2, sched: s}) || len(got) != 1 || got[0] != 2 {
		t.Fatalf("want [2] got %v", got)
	}
	if s.Fire(FireMsg{ID: 2, sched: NewTeaScheduler()}) {
		t.Fatal("foreign messages are ignored")
	}
}

func TestTeaTickDeliversFireMsg(t *testing.T) {
	s := NewTeaScheduler()
	s.AfterFunc(time.Millisecond, func() {})
	msg := s.Drain()()
	fm, ok := msg.(FireMsg)
	if !ok || fm.ID != 1 {
		t.Fatalf("want FireMsg{ID:1} got %#v", msg)
	}
	if !s.Fire(fm) {
		t.Fatal("tick message should fire its task")
	}
}
