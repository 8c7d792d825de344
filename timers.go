package polaris

import "time"

// Scheduler runs one-shot callbacks after a delay measured in tick time,
// not wall time. Callbacks run on the goroutine that calls Advance.
type Scheduler struct {
	now    time.Duration
	timers []timer
	nextID uint32
}

type timer struct {
	id  uint32
	due time.Duration
	fn  func()
}

// TimerHandle cancels a scheduled callback.
type TimerHandle struct {
	id uint32
	s  *Scheduler
}

// Cancel stops the callback if it has not fired yet. It reports whether a
// pending callback was removed.
func (h TimerHandle) Cancel() bool {
	if h.s == nil {
		return false
	}
	for i, t := range h.s.timers {
		if t.id == h.id {
			h.s.timers = append(h.s.timers[:i], h.s.timers[i+1:]...)
			return true
		}
	}
	return false
}

// After schedules fn to run once d of tick time has passed.
func (s *Scheduler) After(d time.Duration, fn func()) TimerHandle {
	if d < 0 {
		d = 0
	}
	s.nextID++
	s.timers = append(s.timers, timer{id: s.nextID, due: s.now + d, fn: fn})
	return TimerHandle{id: s.nextID, s: s}
}

// Advance moves the clock forward by dt and fires every due callback in due
// order. While a callback runs, Now reports its due time, so callbacks
// scheduled from inside it are measured from when it was due rather than
// from the end of the tick.
func (s *Scheduler) Advance(dt time.Duration) {
	target := s.now + ClampDelta(dt)
	for {
		i := s.earliestDue(target)
		if i < 0 {
			break
		}
		t := s.timers[i]
		s.timers = append(s.timers[:i], s.timers[i+1:]...)
		if t.due > s.now {
			s.now = t.due
		}
		t.fn()
	}
	s.now = target
}

func (s *Scheduler) earliestDue(limit time.Duration) int {
	best := -1
	for i, t := range s.timers {
		if t.due > limit {
			continue
		}
		if best < 0 || t.due < s.timers[best].due {
			best = i
		}
	}
	return best
}

// Now returns the total tick time advanced so far.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Pending returns the number of callbacks that have not fired.
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// Clear cancels every pending callback.
func (s *Scheduler) Clear() {
	s.timers = nil
}
