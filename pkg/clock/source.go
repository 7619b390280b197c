package clock

import (
	"sync"
	"time"
)

// Source emits the current time on every interval boundary (once per second
// for the race board). Each tick is scheduled as a one-shot timer aligned to
// the boundary, so ticks do not drift and a Manual clock can drive it.
type Source struct {
	clock    Clock
	interval time.Duration

	mu    sync.Mutex
	gen   uint64
	timer Timer
	fn    func(time.Time)
}

// NewSource returns a stopped Source. A non-positive interval means one second.
func NewSource(c Clock, interval time.Duration) *Source {
	if interval <= 0 {
		interval = time.Second
	}
	return &Source{clock: c, interval: interval}
}

// Start begins ticking, calling fn with Now() on each boundary. Calling Start
// on a running Source replaces fn and restarts the schedule.
func (s *Source) Start(fn func(now time.Time)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	s.fn = fn
	s.scheduleLocked(s.gen)
}

// Stop halts ticking. A tick already in flight will not call fn. Safe to call
// more than once.
func (s *Source) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Source) stopLocked() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Source) scheduleLocked(gen uint64) {
	now := s.clock.Now()
	next := now.Truncate(s.interval).Add(s.interval)
	s.timer = s.clock.AfterFunc(next.Sub(now), func() { s.tick(gen) })
}

func (s *Source) tick(gen uint64) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	fn := s.fn
	s.mu.Unlock()

	fn(s.clock.Now())

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen == s.gen {
		s.scheduleLocked(gen)
	}
}
