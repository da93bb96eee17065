package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"atelier/internal/carousel"
)

// timerFiredMsg is delivered when a carousel timer is due.
type timerFiredMsg struct {
	id uint64
}

// teaScheduler runs carousel timers through the bubbletea event loop so
// callbacks execute inside Update. Cancelled timers are forgotten; their tick
// still arrives but finds nothing to run.
type teaScheduler struct {
	nextID  uint64
	pending map[uint64]func()
	enqueue func(tea.Cmd)
}

func newTeaScheduler(enqueue func(tea.Cmd)) *teaScheduler {
	return &teaScheduler{
		pending: make(map[uint64]func()),
		enqueue: enqueue,
	}
}

type teaTimer struct {
	s  *teaScheduler
	id uint64
}

func (t teaTimer) Stop() bool {
	_, ok := t.s.pending[t.id]
	delete(t.s.pending, t.id)
	return ok
}

// AfterFunc implements carousel.Scheduler.
func (s *teaScheduler) AfterFunc(d time.Duration, f func()) carousel.Timer {
	s.nextID++
	id := s.nextID
	s.pending[id] = f
	s.enqueue(tea.Tick(d, func(time.Time) tea.Msg {
		return timerFiredMsg{id: id}
	}))
	return teaTimer{s: s, id: id}
}

// Fire runs the callback for id if it is still pending.
func (s *teaScheduler) Fire(id uint64) bool {
	f, ok := s.pending[id]
	if !ok {
		return false
	}
	delete(s.pending, id)
	f()
	return true
}

// Pending returns the number of live timers.
func (s *teaScheduler) Pending() int { return len(s.pending) }
