package lightbox

import "math"

// Swipe thresholds in CSS pixels.
const (
	SwipeMinDistance = 50.0
	SwipeMaxVertical = 40.0
)

// Swipe turns a touch start/end pair into a navigation action.
// Touches that start on the video or its controls never navigate.
type Swipe struct {
	x, y       float64
	active     bool
	onControls bool
}

// Begin records the start of a touch.
func (s *Swipe) Begin(x, y float64, onControls bool) {
	s.active = true
	s.onControls = onControls
	s.x, s.y = x, y
}

// End finishes the touch at (x, y). A mostly horizontal move longer than
// SwipeMinDistance goes to the next item when moving left and to the
// previous item when moving right.
func (s *Swipe) End(x, y float64) Action {
	if !s.active {
		return ActionNone
	}
	s.active = false
	if s.onControls {
		s.onControls = false
		return ActionNone
	}

	dx, dy := x-s.x, y-s.y
	if math.Abs(dx) <= SwipeMinDistance || math.Abs(dy) >= SwipeMaxVertical {
		return ActionNone
	}
	if dx < 0 {
		return ActionNext
	}
	return ActionPrev
}
