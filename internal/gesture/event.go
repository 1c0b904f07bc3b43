package gesture

import (
	"encoding/json"
	"time"
)

// Point is a pointer position in surface pixels.
type Point struct {
	X float64
	Y float64
}

// EventKind identifies the callback slot an event is delivered to.
type EventKind uint8

const (
	// PressStart is finger-down / button-down.
	PressStart EventKind = iota + 1
	// PressMove is movement while pressed.
	PressMove
	// PressEnd is finger-up / button-up.
	PressEnd
)

// String returns a string representation of the kind.
func (k EventKind) String() string {
	switch k {
	case PressStart:
		return "press_start"
	case PressMove:
		return "press_move"
	case PressEnd:
		return "press_end"
	default:
		return "unknown"
	}
}

// Event is one raw pointer sample.
type Event struct {
	Kind EventKind

	// Touches holds the active contact points. Empty means the platform
	// delivered no position.
	Touches []Point

	// At is when the event occurred. Zero means "now" on the detector's clock.
	At time.Time

	// Target identifies what was pressed, reported back by the long-press
	// callback even if the pointer has since moved away.
	Target string
}

// Point returns the first touch point.
func (e Event) Point() (Point, bool) {
	if len(e.Touches) == 0 {
		return Point{}, false
	}
	return e.Touches[0], true
}

func (e Event) clone() Event {
	if e.Touches != nil {
		e.Touches = append([]Point(nil), e.Touches...)
	}
	return e
}

// Direction is the side the row is dragged towards.
type Direction uint8

const (
	DirectionNone Direction = iota
	DirectionLeft
	DirectionRight
)

// String returns "left", "right" or "" for none.
func (d Direction) String() string {
	switch d {
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return ""
	}
}

// MarshalJSON encodes DirectionNone as null.
func (d Direction) MarshalJSON() ([]byte, error) {
	if d == DirectionNone {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts "left", "right", null or "".
func (d *Direction) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = DirectionNone
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*d = ParseDirection(s)
	return nil
}

// ParseDirection maps "left"/"right" to a Direction; anything else is none.
func ParseDirection(s string) Direction {
	switch s {
	case "left":
		return DirectionLeft
	case "right":
		return DirectionRight
	default:
		return DirectionNone
	}
}

func directionOf(dx float64) Direction {
	switch {
	case dx > 0:
		return DirectionRight
	case dx < 0:
		return DirectionLeft
	default:
		return DirectionNone
	}
}

// Axis is the direction a session locked onto.
type Axis uint8

const (
	AxisUndecided Axis = iota
	AxisHorizontal
	AxisVertical
)

// String returns a string representation of the axis.
func (a Axis) String() string {
	switch a {
	case AxisHorizontal:
		return "horizontal"
	case AxisVertical:
		return "vertical"
	default:
		return "undecided"
	}
}
