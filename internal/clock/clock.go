// Package clock provides the timer facility used by the interaction engine.
//
// Clock abstracts both reading the current time and scheduling single-shot
// cancellable tasks, so detectors can run against real timers in the app
// and against a virtual clock in tests and scenario replay.
package clock

import "time"

// Clock reads the current time and schedules cancellable single-shot tasks.
type Clock interface {
	Now() time.Time
	// AfterFunc runs f once after d elapses. A non-positive d fires on the
	// next tick of the clock.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is the handle returned by AfterFunc.
type Timer interface {
	// Stop cancels the task. It reports whether the call prevented the task
	// from running; stopping a fired or stopped timer is a no-op.
	Stop() bool
}

// System is the wall clock. Tasks run on their own goroutine.
type System struct{}

// Now returns the current local time, which carries a monotonic reading.
func (System) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules f with time.AfterFunc.
func (System) AfterFunc(d time.Duration, f func()) Timer {
	if d < 0 {
		d = 0
	}
	return time.AfterFunc(d, f)
}
