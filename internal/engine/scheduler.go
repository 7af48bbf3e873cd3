package engine

import (
	"sync"
	"time"
)

// Scheduler coalesces bursts of rebuild triggers into a single run: a
// new trigger cancels the pending one and re-arms the timer, so rapid
// file events (a test run rewriting several reports) cost one rebuild.
type Scheduler struct {
	delay time.Duration
	fn    func()

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
}

// NewScheduler returns a scheduler that invokes fn once per burst of
// triggers, delay after the last trigger in the burst.
func NewScheduler(delay time.Duration, fn func()) *Scheduler {
	return &Scheduler{delay: delay, fn: fn}
}

// Trigger schedules a run, replacing any pending one.
func (s *Scheduler) Trigger() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.fn)
}

// Close cancels any pending run and ignores further triggers.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
