package interaction

import (
	"math"
	"sync"
	"time"

	"finboard/internal/clock"
	"finboard/internal/core"
	"finboard/internal/gesture"
)

// Row owns the detectors of one transaction row and fuses their output.
type Row struct {
	mu  sync.Mutex
	txn core.Transaction

	swipe     *gesture.Swipe
	longPress *gesture.LongPress
	clock     clock.Clock

	hintDelay    time.Duration
	hintDistance float64
	hintTimer    clock.Timer
	hintSeq      uint64

	// Press bookkeeping kept outside the detectors so a tap is still
	// recognised while they are disabled.
	pressing    bool
	moved       bool
	longPressed bool
	origin      gesture.Point
	travel      float64

	// onLongPress runs without the row lock held.
	onLongPress func(r *Row)
}

func newRow(txn core.Transaction, cfg Config, c clock.Clock, onLongPress func(r *Row)) *Row {
	r := &Row{
		txn:          txn,
		clock:        c,
		hintDelay:    cfg.HintDelay,
		hintDistance: cfg.HintDistance,
		onLongPress:  onLongPress,
	}

	swipeCfg := cfg.Swipe
	lpCfg := cfg.LongPress
	if !cfg.detectorsEnabled() {
		swipeCfg.Enabled = false
		lpCfg.Enabled = false
	}
	r.swipe = gesture.NewSwipe(swipeCfg, c)
	r.longPress = gesture.NewLongPress(lpCfg, c, r.longPressFired)
	return r
}

// ID returns the transaction identifier.
func (r *Row) ID() string {
	return r.txn.ID
}

// Transaction returns the row's transaction.
func (r *Row) Transaction() core.Transaction {
	return r.txn
}

// State returns the swipe state.
func (r *Row) State() gesture.State {
	return r.swipe.State()
}

// DetectorsEnabled reports whether swipe and long press are active.
func (r *Row) DetectorsEnabled() bool {
	return r.swipe.Enabled()
}

// Hinting reports whether a hint preview is waiting to be reset.
func (r *Row) Hinting() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hintTimer != nil
}

// handle fans ev out to both detectors and classifies the session on
// press-end.
func (r *Row) handle(ev gesture.Event) Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, hasPoint := ev.Point()
	switch ev.Kind {
	case gesture.PressStart:
		if hasPoint {
			r.pressing = true
			r.moved = false
			r.longPressed = false
			r.origin = p
			r.travel = 0
		}
	case gesture.PressMove:
		if hasPoint && r.pressing {
			r.moved = true
			r.travel = math.Max(r.travel, math.Max(math.Abs(p.X-r.origin.X), math.Abs(p.Y-r.origin.Y)))
		}
	}

	// Both detectors see every event; move cancellation makes the order
	// irrelevant.
	res := r.swipe.Handle(ev)
	r.longPress.Handle(ev)

	out := Outcome{
		RowID:          r.txn.ID,
		State:          res.State,
		SuppressScroll: res.SuppressScroll,
	}
	if ev.Kind == gesture.PressEnd && r.pressing {
		r.pressing = false
		out.Gesture = r.classifyLocked(res.Axis)
	}
	return out
}

func (r *Row) classifyLocked(axis gesture.Axis) Gesture {
	if r.longPressed {
		return GestureLongPress
	}
	if r.swipe.Enabled() {
		switch axis {
		case gesture.AxisHorizontal:
			return GestureSwipe
		case gesture.AxisVertical:
			return GestureScroll
		}
		return GestureTap
	}
	if r.travel > tapSlop {
		return GestureScroll
	}
	return GestureTap
}

// longPressFired is the long-press callback. It marks the session, springs
// the row back and then notifies the list.
func (r *Row) longPressFired(gesture.Event) {
	r.mu.Lock()
	if !r.pressing || r.moved {
		// Lost a race with a move or release.
		r.mu.Unlock()
		return
	}
	r.longPressed = true
	r.swipe.Reset()
	notify := r.onLongPress
	r.mu.Unlock()

	if notify != nil {
		notify(r)
	}
}

// setDetectorsEnabled gates both detectors as a unit. Disabling also cancels
// a pending long press and springs the row back.
func (r *Row) setDetectorsEnabled(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.swipe.SetEnabled(enabled)
	r.longPress.SetEnabled(enabled)
	if !enabled {
		r.longPress.Cancel()
		r.swipe.Reset()
	}
}

// reset springs the row back to neutral.
func (r *Row) reset() {
	r.swipe.Reset()
}

// playHint previews the left-swipe affordance and schedules a reset after
// the hint delay. It reports false when the detectors are disabled.
func (r *Row) playHint() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.swipe.Enabled() {
		return false
	}
	r.swipe.Preview(-r.hintDistance)

	if r.hintTimer != nil {
		r.hintTimer.Stop()
	}
	r.hintSeq++
	seq := r.hintSeq
	r.hintTimer = r.clock.AfterFunc(r.hintDelay, func() {
		r.endHint(seq)
	})
	return true
}

func (r *Row) endHint(seq uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if seq != r.hintSeq || r.hintTimer == nil {
		return
	}
	r.hintTimer = nil
	r.swipe.Reset()
}
