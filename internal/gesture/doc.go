// Package gesture implements the touch-interaction engine for a single list
// row: a Swipe detector that turns horizontal drags into a damped offset
// which snaps open or springs back on release, and a LongPress detector that
// fires once when a press is held without movement.
//
// # Events
//
// Both detectors consume the same stream of Event values:
//
//	ev := gesture.Event{
//	    Kind:    gesture.PressStart,
//	    Touches: []gesture.Point{{X: 100, Y: 50}},
//	    At:      time.Now(),
//	    Target:  "txn-42",
//	}
//
// Only the first touch is read. An event without touches is treated as
// missing data and ignored by the callbacks that need a point.
//
// # Swipe
//
// The first 10px of travel decides the axis of the session. Vertical travel
// hands the session to the scroll container for good. Horizontal travel
// drives the offset (deltaX times the damping factor). On release the drag
// commits if it covered more than the distance threshold, or more than a
// reduced threshold when the release velocity was fast.
//
// State reports IsOpen against the nominal distance threshold, not the
// velocity-adjusted one used at release.
//
// # Long press
//
// LongPress arms a single timer on press-start and fires its callback with
// the original event once the delay elapses. Any move or release cancels it.
//
// # Thread Safety
//
// Detectors are driven from a single event loop, but timer callbacks from
// clock.System run on their own goroutine, so every detector guards its state
// with a mutex.
package gesture
