package gesture

import "time"

// Session is the state of one touch sequence on one surface. A fresh
// Session is built on every press-start and discarded on press-end or reset.
type Session struct {
	// Start and StartAt are captured at press-down and never change.
	Start   Point
	StartAt time.Time

	// Current is the last observed point.
	Current Point

	// Tracked and TrackedAt are the velocity sample, updated only while the
	// session is locked horizontal.
	Tracked   Point
	TrackedAt time.Time

	// Axis moves from AxisUndecided to one of the locked values at most once.
	Axis Axis

	Active bool
}

func newSession(p Point, at time.Time) Session {
	return Session{
		Start:     p,
		StartAt:   at,
		Current:   p,
		Tracked:   p,
		TrackedAt: at,
		Axis:      AxisUndecided,
		Active:    true,
	}
}

// State is the resolved, externally visible swipe state.
type State struct {
	Offset    float64   `json:"offset"`
	Direction Direction `json:"direction"`
	IsOpen    bool      `json:"isOpen"`
}
