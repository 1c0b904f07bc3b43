package gesture

import (
	"testing"
	"time"

	"finboard/internal/clock"
)

type firedRecorder struct {
	events []Event
}

func (r *firedRecorder) fire(ev Event) {
	r.events = append(r.events, ev)
}

func press(x, y float64, ms int, target string) Event {
	return Event{Kind: PressStart, Touches: []Point{{X: x, Y: y}}, At: at(ms), Target: target}
}

func move(x, y float64, ms int) Event {
	return Event{Kind: PressMove, Touches: []Point{{X: x, Y: y}}, At: at(ms)}
}

func TestLongPress_FiresOnceAfterDelay(t *testing.T) {
	c := clock.NewManual(epoch)
	rec := &firedRecorder{}
	lp := NewLongPress(DefaultLongPressConfig(), c, rec.fire)

	lp.PressStart(press(10, 20, 0, "txn-1"))
	if !lp.Pending() {
		t.Fatal("press-start should arm the timer")
	}

	c.Advance(499 * time.Millisecond)
	if len(rec.events) != 0 {
		t.Fatal("fired before the delay elapsed")
	}

	c.Advance(2 * time.Millisecond)
	if len(rec.events) != 1 {
		t.Fatalf("fired %d times, want 1", len(rec.events))
	}
	if rec.events[0].Target != "txn-1" {
		t.Errorf("target = %q, want txn-1", rec.events[0].Target)
	}
	if lp.Pending() {
		t.Error("timer still pending after firing")
	}

	c.Advance(5 * time.Second)
	lp.PressEnd()
	if len(rec.events) != 1 {
		t.Errorf("fired %d times, want exactly 1", len(rec.events))
	}
}

func TestLongPress_AnyMoveCancels(t *testing.T) {
	tests := []struct {
		name string
		to   Point
	}{
		{"one pixel", Point{X: 11, Y: 20}},
		{"sub pixel", Point{X: 10.2, Y: 20}},
		{"same point", Point{X: 10, Y: 20}},
		{"large drag", Point{X: 300, Y: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := clock.NewManual(epoch)
			rec := &firedRecorder{}
			lp := NewLongPress(DefaultLongPressConfig(), c, rec.fire)

			lp.PressStart(press(10, 20, 0, "row"))
			c.Advance(200 * time.Millisecond)
			lp.PressMove(move(tt.to.X, tt.to.Y, 200))
			c.Advance(time.Second)

			if len(rec.events) != 0 {
				t.Errorf("fired %d times after a move, want 0", len(rec.events))
			}
			if lp.Pending() {
				t.Error("timer still pending after a move")
			}
		})
	}
}

func TestLongPress_ReleaseCancels(t *testing.T) {
	c := clock.NewManual(epoch)
	rec := &firedRecorder{}
	lp := NewLongPress(DefaultLongPressConfig(), c, rec.fire)

	lp.PressStart(press(10, 20, 0, "row"))
	c.Advance(499 * time.Millisecond)
	lp.PressEnd()
	c.Advance(time.Second)

	if len(rec.events) != 0 {
		t.Errorf("fired %d times after release, want 0", len(rec.events))
	}
}

func TestLongPress_CancelIsIdempotent(t *testing.T) {
	c := clock.NewManual(epoch)
	rec := &firedRecorder{}
	lp := NewLongPress(DefaultLongPressConfig(), c, rec.fire)

	lp.Cancel()
	lp.PressEnd()
	lp.PressStart(press(0, 0, 0, "row"))
	lp.PressMove(move(1, 0, 10))
	lp.Cancel()
	lp.PressEnd()
	c.Advance(time.Second)

	if len(rec.events) != 0 || lp.Pending() {
		t.Errorf("events=%d pending=%v, want none", len(rec.events), lp.Pending())
	}
	if c.Pending() != 0 {
		t.Errorf("clock still holds %d timers", c.Pending())
	}
}

func TestLongPress_RepeatedPressKeepsOneTimer(t *testing.T) {
	c := clock.NewManual(epoch)
	rec := &firedRecorder{}
	lp := NewLongPress(DefaultLongPressConfig(), c, rec.fire)

	for i := 0; i < 5; i++ {
		lp.PressStart(press(0, 0, i*100, "row"))
		c.Advance(100 * time.Millisecond)
	}
	if c.Pending() != 1 {
		t.Fatalf("clock holds %d timers, want 1", c.Pending())
	}

	// Last press was at 400ms, so it fires at 900ms.
	c.Advance(399 * time.Millisecond)
	if len(rec.events) != 0 {
		t.Fatal("fired before the last press's delay elapsed")
	}
	c.Advance(time.Millisecond)
	if len(rec.events) != 1 {
		t.Fatalf("fired %d times, want 1", len(rec.events))
	}
}

func TestLongPress_DisabledOrNoCallback(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		c := clock.NewManual(epoch)
		rec := &firedRecorder{}
		cfg := DefaultLongPressConfig()
		cfg.Enabled = false
		lp := NewLongPress(cfg, c, rec.fire)

		lp.PressStart(press(0, 0, 0, "row"))
		c.Advance(time.Second)
		if len(rec.events) != 0 || lp.Pending() {
			t.Errorf("disabled detector fired or armed")
		}
	})

	t.Run("no callback", func(t *testing.T) {
		c := clock.NewManual(epoch)
		lp := NewLongPress(DefaultLongPressConfig(), c, nil)

		lp.PressStart(press(0, 0, 0, "row"))
		if lp.Pending() || c.Pending() != 0 {
			t.Error("detector without callback armed a timer")
		}
	})

	t.Run("missing point", func(t *testing.T) {
		c := clock.NewManual(epoch)
		rec := &firedRecorder{}
		lp := NewLongPress(DefaultLongPressConfig(), c, rec.fire)

		lp.PressStart(Event{Kind: PressStart, At: at(0)})
		if lp.Pending() {
			t.Error("press-start without a point armed a timer")
		}
	})
}

func TestLongPress_DisabledMidSession(t *testing.T) {
	c := clock.NewManual(epoch)
	rec := &firedRecorder{}
	lp := NewLongPress(DefaultLongPressConfig(), c, rec.fire)

	lp.PressStart(press(0, 0, 0, "row"))
	lp.SetEnabled(false)
	if !lp.Pending() {
		t.Fatal("disabling should not silently drop the handle")
	}

	lp.PressEnd()
	if lp.Pending() || c.Pending() != 0 {
		t.Error("press-end did not release the timer while disabled")
	}
	c.Advance(time.Second)
	if len(rec.events) != 0 {
		t.Errorf("fired %d times, want 0", len(rec.events))
	}
}

func TestLongPress_DisabledWhileArmedDoesNotFire(t *testing.T) {
	c := clock.NewManual(epoch)
	rec := &firedRecorder{}
	lp := NewLongPress(DefaultLongPressConfig(), c, rec.fire)

	lp.PressStart(press(0, 0, 0, "row"))
	lp.SetEnabled(false)
	c.Advance(time.Second)

	if len(rec.events) != 0 {
		t.Errorf("fired %d times, want 0", len(rec.events))
	}
	if lp.Pending() {
		t.Error("expired timer still reported pending")
	}
}

func TestLongPress_MoveWithoutPointDoesNotCancel(t *testing.T) {
	c := clock.NewManual(epoch)
	rec := &firedRecorder{}
	lp := NewLongPress(DefaultLongPressConfig(), c, rec.fire)

	lp.PressStart(press(0, 0, 0, "row"))
	lp.Handle(Event{Kind: PressMove, At: at(100)})
	c.Advance(500 * time.Millisecond)

	if len(rec.events) != 1 {
		t.Errorf("fired %d times, want 1", len(rec.events))
	}
}

func TestLongPress_NegativeDelayFiresOnNextTick(t *testing.T) {
	c := clock.NewManual(epoch)
	rec := &firedRecorder{}
	lp := NewLongPress(LongPressConfig{Delay: -time.Second, Enabled: true}, c, rec.fire)

	lp.PressStart(press(0, 0, 0, "row"))
	c.Advance(0)

	if len(rec.events) != 1 {
		t.Errorf("fired %d times, want 1", len(rec.events))
	}
}

func TestLongPress_CapturedEventIsIndependent(t *testing.T) {
	c := clock.NewManual(epoch)
	rec := &firedRecorder{}
	lp := NewLongPress(DefaultLongPressConfig(), c, rec.fire)

	ev := press(10, 20, 0, "row")
	lp.PressStart(ev)
	ev.Touches[0] = Point{X: 999, Y: 999}
	c.Advance(time.Second)

	if len(rec.events) != 1 {
		t.Fatalf("fired %d times, want 1", len(rec.events))
	}
	if got, _ := rec.events[0].Point(); got != (Point{X: 10, Y: 20}) {
		t.Errorf("captured point = %+v, want {10 20}", got)
	}
}

func TestLongPress_SharedStreamWithSwipe(t *testing.T) {
	c := clock.NewManual(epoch)
	rec := &firedRecorder{}
	lp := NewLongPress(DefaultLongPressConfig(), c, rec.fire)
	sw := NewSwipe(testSwipeConfig(), c)

	stream := []Event{
		press(100, 50, 0, "row"),
		move(60, 50, 100),
		move(0, 50, 200),
		{Kind: PressEnd, At: at(250)},
	}
	for i, ev := range stream {
		c.AdvanceTo(ev.At)
		// Alternate the fan-out order; cancellation is order independent.
		if i%2 == 0 {
			sw.Handle(ev)
			lp.Handle(ev)
		} else {
			lp.Handle(ev)
			sw.Handle(ev)
		}
	}
	c.Advance(time.Second)

	if len(rec.events) != 0 {
		t.Errorf("long press fired during a swipe")
	}
	if got := sw.State(); got.Offset != -160 {
		t.Errorf("swipe offset = %v, want -160", got.Offset)
	}
}
