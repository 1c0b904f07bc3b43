package gesture

import (
	"sync"

	"finboard/internal/clock"
)

// LongPress fires a callback once a press is held for the configured delay
// without moving or releasing.
type LongPress struct {
	mu     sync.Mutex
	cfg    LongPressConfig
	clock  clock.Clock
	onFire func(Event)

	timer clock.Timer
	// seq invalidates timer callbacks that lost a race with cancellation.
	seq uint64
}

// NewLongPress creates a long-press detector. onFire may be nil, in which
// case presses never arm a timer.
func NewLongPress(cfg LongPressConfig, c clock.Clock, onFire func(Event)) *LongPress {
	if c == nil {
		c = clock.System{}
	}
	return &LongPress{
		cfg:    cfg.Normalize(),
		clock:  c,
		onFire: onFire,
	}
}

// Handle routes an event to PressStart, PressMove or PressEnd.
func (l *LongPress) Handle(ev Event) {
	switch ev.Kind {
	case PressStart:
		l.PressStart(ev)
	case PressMove:
		l.PressMove(ev)
	case PressEnd:
		l.PressEnd()
	}
}

// PressStart cancels any pending timer, then arms a new one unless the
// detector is disabled, has no callback, or the event carries no point.
func (l *LongPress) PressStart(ev Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.cancelLocked()
	if !l.cfg.Enabled || l.onFire == nil {
		return
	}
	if _, ok := ev.Point(); !ok {
		return
	}

	captured := ev.clone()
	seq := l.seq
	l.timer = l.clock.AfterFunc(l.cfg.Delay, func() {
		l.fire(seq, captured)
	})
}

// PressMove cancels the pending timer. Movement of any size counts; a move
// without a point is ignored.
func (l *LongPress) PressMove(ev Event) {
	if _, ok := ev.Point(); !ok {
		return
	}
	l.Cancel()
}

// PressEnd cancels the pending timer.
func (l *LongPress) PressEnd() {
	l.Cancel()
}

// Cancel stops the pending timer, if any. It works while disabled.
func (l *LongPress) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cancelLocked()
}

// Pending reports whether a timer is armed.
func (l *LongPress) Pending() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.timer != nil
}

// SetEnabled turns the detector on or off. A pending timer stays
// cancellable through PressMove, PressEnd and Cancel.
func (l *LongPress) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cfg.Enabled = enabled
}

// Enabled reports whether presses arm the timer.
func (l *LongPress) Enabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cfg.Enabled
}

func (l *LongPress) fire(seq uint64, ev Event) {
	l.mu.Lock()
	if seq != l.seq || l.timer == nil {
		l.mu.Unlock()
		return
	}
	if !l.cfg.Enabled {
		// Disabled while armed: drop the timer without firing.
		l.timer = nil
		l.seq++
		l.mu.Unlock()
		return
	}
	l.timer = nil
	l.seq++
	onFire := l.onFire
	l.mu.Unlock()

	onFire(ev)
}

func (l *LongPress) cancelLocked() {
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	l.seq++
}
