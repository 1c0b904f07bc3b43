package clock

import (
	"sync/atomic"
	"testing"
	"time"
)

var epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func TestManual_AdvanceFiresDueTasksInOrder(t *testing.T) {
	m := NewManual(epoch)
	var order []string

	m.AfterFunc(300*time.Millisecond, func() { order = append(order, "c") })
	m.AfterFunc(100*time.Millisecond, func() { order = append(order, "a") })
	m.AfterFunc(100*time.Millisecond, func() { order = append(order, "b") })

	m.Advance(99 * time.Millisecond)
	if len(order) != 0 {
		t.Fatalf("fired too early: %v", order)
	}

	m.Advance(201 * time.Millisecond)
	want := []string{"a", "b", "c"}
	if len(order) != len(want) {
		t.Fatalf("fired %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("fired %v, want %v", order, want)
		}
	}
	if got := m.Now().Sub(epoch); got != 300*time.Millisecond {
		t.Errorf("Now() advanced by %v, want 300ms", got)
	}
}

func TestManual_TaskSeesItsDeadline(t *testing.T) {
	m := NewManual(epoch)
	var seen time.Time
	m.AfterFunc(500*time.Millisecond, func() { seen = m.Now() })

	m.Advance(2 * time.Second)

	if !seen.Equal(epoch.Add(500 * time.Millisecond)) {
		t.Errorf("task saw %v, want deadline %v", seen, epoch.Add(500*time.Millisecond))
	}
	if !m.Now().Equal(epoch.Add(2 * time.Second)) {
		t.Errorf("Now() = %v, want %v", m.Now(), epoch.Add(2*time.Second))
	}
}

func TestManual_StopIsIdempotent(t *testing.T) {
	m := NewManual(epoch)
	fired := false
	timer := m.AfterFunc(time.Second, func() { fired = true })

	if !timer.Stop() {
		t.Fatal("first Stop should report it prevented the task")
	}
	if timer.Stop() {
		t.Fatal("second Stop should be a no-op")
	}

	m.Advance(2 * time.Second)
	if fired {
		t.Fatal("stopped task fired")
	}
	if m.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", m.Pending())
	}
}

func TestManual_StopAfterFire(t *testing.T) {
	m := NewManual(epoch)
	timer := m.AfterFunc(time.Millisecond, func() {})
	m.Advance(time.Millisecond)

	if timer.Stop() {
		t.Error("Stop after fire should return false")
	}
}

func TestManual_NonPositiveDelayFiresOnNextTick(t *testing.T) {
	m := NewManual(epoch)
	fired := 0
	m.AfterFunc(-5*time.Second, func() { fired++ })

	if fired != 0 {
		t.Fatal("task must not run inside AfterFunc")
	}
	m.Advance(0)
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}
}

func TestManual_ChainedTasks(t *testing.T) {
	m := NewManual(epoch)
	var hits int
	m.AfterFunc(100*time.Millisecond, func() {
		hits++
		m.AfterFunc(100*time.Millisecond, func() { hits++ })
	})

	m.Advance(150 * time.Millisecond)
	if hits != 1 {
		t.Fatalf("hits = %d, want 1", hits)
	}
	m.Advance(50 * time.Millisecond)
	if hits != 2 {
		t.Fatalf("hits = %d, want 2", hits)
	}
}

func TestSystem_AfterFuncAndStop(t *testing.T) {
	var c System
	var fired atomic.Int32
	done := make(chan struct{})

	c.AfterFunc(time.Millisecond, func() {
		fired.Add(1)
		close(done)
	})
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("system timer did not fire")
	}

	timer := c.AfterFunc(time.Hour, func() { fired.Add(1) })
	if !timer.Stop() {
		t.Error("Stop on pending system timer should return true")
	}
	if fired.Load() != 1 {
		t.Errorf("fired = %d, want 1", fired.Load())
	}
}
