package gesture

import (
	"math"
	"time"
)

// Defaults for the swipe and long-press detectors.
const (
	DefaultDistanceThreshold       = 80.0
	DefaultDampingFactor           = 0.6
	DefaultFastVelocityThreshold   = 0.5 // px/ms
	DefaultFastThresholdMultiplier = 0.6
	DefaultLongPressDelay          = 500 * time.Millisecond

	// axisLockDistance is the travel that decides the axis of a session.
	axisLockDistance = 10.0
)

// SwipeConfig configures a Swipe detector. LeftSnapDistance and
// RightSnapDistance have no default: they must match the width of the
// action area revealed on each side.
type SwipeConfig struct {
	// DistanceThreshold is the travel needed to commit a slow swipe, and the
	// offset beyond which State reports IsOpen.
	DistanceThreshold float64

	// LeftSnapDistance is the resting offset after a committed right drag,
	// revealing the actions on the left edge.
	LeftSnapDistance float64

	// RightSnapDistance is the resting offset (negated) after a committed
	// left drag, revealing the actions on the right edge.
	RightSnapDistance float64

	// DampingFactor scales finger travel into row offset.
	DampingFactor float64

	// FastVelocityThreshold is the release velocity, in px/ms, above which a
	// swipe counts as a flick.
	FastVelocityThreshold float64

	// FastThresholdMultiplier scales DistanceThreshold for flicks.
	FastThresholdMultiplier float64

	Enabled bool
}

// DefaultSwipeConfig returns the default swipe configuration with both snap
// distances set to zero.
func DefaultSwipeConfig() SwipeConfig {
	return SwipeConfig{
		DistanceThreshold:       DefaultDistanceThreshold,
		DampingFactor:           DefaultDampingFactor,
		FastVelocityThreshold:   DefaultFastVelocityThreshold,
		FastThresholdMultiplier: DefaultFastThresholdMultiplier,
		Enabled:                 true,
	}
}

// Normalize clamps negative or NaN values to zero.
func (c SwipeConfig) Normalize() SwipeConfig {
	c.DistanceThreshold = nonNegative(c.DistanceThreshold)
	c.LeftSnapDistance = nonNegative(c.LeftSnapDistance)
	c.RightSnapDistance = nonNegative(c.RightSnapDistance)
	c.DampingFactor = nonNegative(c.DampingFactor)
	c.FastVelocityThreshold = nonNegative(c.FastVelocityThreshold)
	c.FastThresholdMultiplier = nonNegative(c.FastThresholdMultiplier)
	return c
}

// LongPressConfig configures a LongPress detector.
type LongPressConfig struct {
	Delay   time.Duration
	Enabled bool
}

// DefaultLongPressConfig returns a 500ms enabled long press.
func DefaultLongPressConfig() LongPressConfig {
	return LongPressConfig{
		Delay:   DefaultLongPressDelay,
		Enabled: true,
	}
}

// Normalize clamps a negative delay to zero.
func (c LongPressConfig) Normalize() LongPressConfig {
	if c.Delay < 0 {
		c.Delay = 0
	}
	return c
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
