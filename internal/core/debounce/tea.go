package debounce

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FireMsg is delivered to the bubbletea update loop when a timer armed on
// a TeaScheduler expires.
type FireMsg struct {
	ID    int
	sched *TeaScheduler
}

// TeaScheduler arms timers as tea.Tick commands so that debounced work runs
// on the program's update loop instead of a timer goroutine. The model must
// return Drain() from Update and hand FireMsg values back to Fire.
type TeaScheduler struct {
	mu    sync.Mutex
	seq   int
	tasks map[int]func()
	cmds  []tea.Cmd
}

func NewTeaScheduler() *TeaScheduler {
	return &TeaScheduler{tasks: make(map[int]func())}
}

type teaTimer struct {
	s  *TeaScheduler
	id int
}

func (t teaTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	_, ok := t.s.tasks[t.id]
	delete(t.s.tasks, t.id)
	return ok
}

func (s *TeaScheduler) AfterFunc(d time.Duration, f func()) Stopper {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	id := s.seq
	s.tasks[id] = f
	s.cmds = append(s.cmds, tea.Tick(d, func(time.Time) tea.Msg {
		return FireMsg{ID: id, sched: s}
	}))
	return teaTimer{s: s, id: id}
}

// Drain returns the tick commands armed since the last call, or nil.
func (s *TeaScheduler) Drain() tea.Cmd {
	s.mu.Lock()
	cmds := s.cmds
	s.cmds = nil
	s.mu.Unlock()
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

// Fire runs the task of msg unless it was stopped, reporting whether it ran.
// Messages from other schedulers are ignored.
func (s *TeaScheduler) Fire(msg FireMsg) bool {
	if msg.sched != s {
		return false
	}
	s.mu.Lock()
	f, ok := s.tasks[msg.ID]
	delete(s.tasks, msg.ID)
	s.mu.Unlock()
	if ok {
		f()
	}
	return ok
}
