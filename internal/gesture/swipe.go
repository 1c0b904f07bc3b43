package gesture

import (
	"math"
	"sync"
	"time"

	"finboard/internal/clock"
)

// Result is what a Swipe reports after handling one event.
type Result struct {
	State State

	// SuppressScroll is set while the session is locked horizontal; the
	// caller must prevent the platform's default scrolling for that event.
	SuppressScroll bool

	// Axis is the axis of the session the event belonged to. For PressEnd it
	// is the axis the session ended with.
	Axis Axis
}

type swipeModel struct {
	session   Session
	offset    float64
	direction Direction
}

// swipeTransition is a pure state transition for one event kind. The bool
// result asks the caller to suppress default scrolling.
type swipeTransition func(cfg SwipeConfig, m swipeModel, ev Event) (swipeModel, bool)

var swipeTransitions = map[EventKind]swipeTransition{
	PressStart: swipePressStart,
	PressMove:  swipePressMove,
	PressEnd:   swipePressEnd,
}

func swipePressStart(_ SwipeConfig, m swipeModel, ev Event) (swipeModel, bool) {
	p, ok := ev.Point()
	if !ok {
		return m, false
	}
	m.session = newSession(p, ev.At)
	return m, false
}

func swipePressMove(cfg SwipeConfig, m swipeModel, ev Event) (swipeModel, bool) {
	p, ok := ev.Point()
	if !ok || !m.session.Active || m.session.Axis == AxisVertical {
		return m, false
	}
	m.session.Current = p

	deltaX := p.X - m.session.Start.X
	deltaY := math.Abs(p.Y - m.session.Start.Y)

	if m.session.Axis == AxisUndecided {
		if deltaY > axisLockDistance {
			// Scroll wins for the rest of the session.
			m.session.Axis = AxisVertical
			m.offset = 0
			m.direction = DirectionNone
			return m, false
		}
		if math.Abs(deltaX) > axisLockDistance {
			m.session.Axis = AxisHorizontal
		}
	}

	if m.session.Axis != AxisHorizontal {
		return m, false
	}

	m.session.Tracked = p
	m.session.TrackedAt = ev.At
	m.offset = deltaX * cfg.DampingFactor
	if d := directionOf(deltaX); d != DirectionNone {
		m.direction = d
	}
	return m, true
}

func swipePressEnd(cfg SwipeConfig, m swipeModel, ev Event) (swipeModel, bool) {
	if !m.session.Active {
		return m, false
	}

	deltaX := m.session.Tracked.X - m.session.Start.X
	elapsed := float64(ev.At.Sub(m.session.StartAt)) / float64(time.Millisecond)

	var velocity float64
	if elapsed > 0 {
		velocity = math.Abs(deltaX) / elapsed
	}

	threshold := cfg.DistanceThreshold
	if velocity > cfg.FastVelocityThreshold {
		threshold = cfg.DistanceThreshold * cfg.FastThresholdMultiplier
	}

	if m.session.Axis != AxisHorizontal || math.Abs(deltaX) <= threshold {
		return swipeModel{}, false
	}

	if deltaX > 0 {
		return swipeModel{offset: cfg.LeftSnapDistance, direction: DirectionRight}, false
	}
	return swipeModel{offset: -cfg.RightSnapDistance, direction: DirectionLeft}, false
}

// Swipe is the horizontal swipe-to-reveal detector for one surface.
type Swipe struct {
	mu    sync.Mutex
	cfg   SwipeConfig
	clock clock.Clock
	model swipeModel
}

// NewSwipe creates a swipe detector. The config is normalized; a nil clock
// uses the system clock.
func NewSwipe(cfg SwipeConfig, c clock.Clock) *Swipe {
	if c == nil {
		c = clock.System{}
	}
	return &Swipe{
		cfg:   cfg.Normalize(),
		clock: c,
	}
}

// Handle routes an event through the transition table. A disabled detector
// or an unknown kind leaves the state untouched.
func (s *Swipe) Handle(ev Event) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	transition, ok := swipeTransitions[ev.Kind]
	if !s.cfg.Enabled || !ok {
		return Result{State: s.stateLocked(), Axis: s.model.session.Axis}
	}
	if ev.At.IsZero() {
		ev.At = s.clock.Now()
	}

	axis := s.model.session.Axis
	next, suppress := transition(s.cfg, s.model, ev)
	s.model = next
	if ev.Kind != PressEnd {
		axis = next.session.Axis
	}

	return Result{
		State:          s.stateLocked(),
		SuppressScroll: suppress,
		Axis:           axis,
	}
}

// PressStart begins a session at p.
func (s *Swipe) PressStart(p Point, at time.Time) Result {
	return s.Handle(Event{Kind: PressStart, Touches: []Point{p}, At: at})
}

// PressMove feeds a move to p.
func (s *Swipe) PressMove(p Point, at time.Time) Result {
	return s.Handle(Event{Kind: PressMove, Touches: []Point{p}, At: at})
}

// PressEnd releases the session and resolves the offset.
func (s *Swipe) PressEnd(at time.Time) Result {
	return s.Handle(Event{Kind: PressEnd, At: at})
}

// Reset springs the surface back to neutral and discards any session. It is
// safe to call at any time, including from other rows or timers.
func (s *Swipe) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model = swipeModel{}
}

// Preview shows offset without a gesture, for affordance hints. It is a
// no-op while disabled.
func (s *Swipe) Preview(offset float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cfg.Enabled {
		return
	}
	s.model.offset = offset
	s.model.direction = directionOf(offset)
}

// State returns the current resolved state.
func (s *Swipe) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// Session returns a copy of the current session.
func (s *Swipe) Session() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.session
}

// SetEnabled turns the detector on or off. Disabling mid-session makes the
// remaining callbacks of that session no-ops; it does not reset the offset.
func (s *Swipe) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Enabled = enabled
}

// Enabled reports whether the detector reacts to events.
func (s *Swipe) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Enabled
}

// Config returns the normalized configuration.
func (s *Swipe) Config() SwipeConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

func (s *Swipe) stateLocked() State {
	// IsOpen compares against the nominal threshold, so a flick can report
	// open below the travel a slow drag would need.
	return State{
		Offset:    s.model.offset,
		Direction: s.model.direction,
		IsOpen:    math.Abs(s.model.offset) > s.cfg.DistanceThreshold,
	}
}
