package interaction

import (
	"fmt"
	"strings"
	"time"

	"finboard/internal/gesture"
)

const (
	DefaultHintDelay    = 2 * time.Second
	DefaultHintDistance = 40

	defaultLeftSnapDistance  = 80
	defaultRightSnapDistance = 160

	// tapSlop bounds the travel of a press that still counts as a tap while
	// the swipe detector is off.
	tapSlop = 10
)

// Platform describes the input capabilities of the host surface.
type Platform int

const (
	PlatformTouch Platform = iota
	PlatformPointer
)

func (p Platform) String() string {
	switch p {
	case PlatformTouch:
		return "touch"
	case PlatformPointer:
		return "pointer"
	default:
		return fmt.Sprintf("platform(%d)", int(p))
	}
}

// ParsePlatform accepts "touch" (the default for an empty string) or
// "pointer".
func ParsePlatform(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "touch":
		return PlatformTouch, nil
	case "pointer":
		return PlatformPointer, nil
	default:
		return PlatformTouch, fmt.Errorf("unknown platform %q", s)
	}
}

// Gesture is the classification of a completed press session.
type Gesture int

const (
	GestureNone Gesture = iota
	GestureTap
	GestureSwipe
	GestureScroll
	GestureLongPress
)

var gestureNames = map[Gesture]string{
	GestureNone:      "none",
	GestureTap:       "tap",
	GestureSwipe:     "swipe",
	GestureScroll:    "scroll",
	GestureLongPress: "long_press",
}

func (g Gesture) String() string {
	if name, ok := gestureNames[g]; ok {
		return name
	}
	return fmt.Sprintf("gesture(%d)", int(g))
}

// ParseGesture is the inverse of Gesture.String.
func ParseGesture(s string) (Gesture, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for g, name := range gestureNames {
		if name == s {
			return g, nil
		}
	}
	return GestureNone, fmt.Errorf("unknown gesture %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (g Gesture) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// Config is the per-list interaction configuration.
type Config struct {
	Platform     Platform
	Swipe        gesture.SwipeConfig
	LongPress    gesture.LongPressConfig
	HintDelay    time.Duration
	HintDistance float64
}

// DefaultConfig returns touch defaults with an 80px right-swipe action area
// and a 160px left-swipe action area.
func DefaultConfig() Config {
	swipe := gesture.DefaultSwipeConfig()
	swipe.LeftSnapDistance = defaultLeftSnapDistance
	swipe.RightSnapDistance = defaultRightSnapDistance
	return Config{
		Platform:     PlatformTouch,
		Swipe:        swipe,
		LongPress:    gesture.DefaultLongPressConfig(),
		HintDelay:    DefaultHintDelay,
		HintDistance: DefaultHintDistance,
	}
}

// detectorsEnabled reports whether touch detectors may run on this platform.
func (c Config) detectorsEnabled() bool {
	return c.Platform == PlatformTouch
}
