package clock

import (
	"sync"
	"time"
)

// Manual is a virtual clock. Time only moves when Advance or AdvanceTo is
// called, and due tasks run synchronously on the caller's goroutine in
// deadline order (ties in scheduling order).
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers []*manualTimer
}

type manualTimer struct {
	clock   *Manual
	when    time.Time
	seq     uint64
	fn      func()
	stopped bool
	fired   bool
}

// NewManual creates a virtual clock reading start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the virtual time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// AfterFunc registers f to run once the virtual time reaches now+d.
func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()

	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTimer{
		clock: m,
		when:  m.now.Add(d),
		seq:   m.seq,
		fn:    f,
	}
	m.timers = append(m.timers, t)
	return t
}

// Advance moves the clock forward by d, firing every task that becomes due.
func (m *Manual) Advance(d time.Duration) {
	m.AdvanceTo(m.Now().Add(d))
}

// AdvanceTo moves the clock to target, firing due tasks in order. Tasks
// scheduled by a firing task are picked up if they fall due before target.
// The clock never moves backwards.
func (m *Manual) AdvanceTo(target time.Time) {
	for {
		m.mu.Lock()
		next := m.nextDueLocked(target)
		if next == nil {
			if target.After(m.now) {
				m.now = target
			}
			m.mu.Unlock()
			return
		}
		m.removeLocked(next)
		next.fired = true
		if next.when.After(m.now) {
			m.now = next.when
		}
		fn := next.fn
		m.mu.Unlock()

		fn()
	}
}

// Pending returns the number of scheduled tasks that have not fired or been
// stopped.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

func (m *Manual) nextDueLocked(target time.Time) *manualTimer {
	var next *manualTimer
	for _, t := range m.timers {
		if t.when.After(target) {
			continue
		}
		if next == nil || t.when.Before(next.when) || (t.when.Equal(next.when) && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

func (m *Manual) removeLocked(t *manualTimer) {
	for i, candidate := range m.timers {
		if candidate == t {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return
		}
	}
}

// Stop cancels the task if it has not fired yet.
func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	t.clock.removeLocked(t)
	return true
}
