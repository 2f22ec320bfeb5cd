// Package lightbox models the full-screen viewer opened from the gallery grid.
//
// The viewer is a small state machine: a [State] is either closed or open on
// one item index, and the transitions Open, Next, Prev and Close are pure
// value methods. Input is mapped to an [Action] by [KeyAction] and [Swipe],
// and [Render] derives the [View] to display from a state. [Viewer] ties a
// state to its preload cache and video controls and re-renders after every
// transition.
package lightbox

import "fmt"

// State is the viewer state over a fixed number of items.
// The zero value is closed over an empty gallery.
type State struct {
	open  bool
	index int
	count int
}

// Closed returns a closed viewer for count items.
func Closed(count int) State {
	return State{count: max(0, count)}
}

// IsOpen reports whether an item is shown.
func (s State) IsOpen() bool { return s.open }

// Index returns the shown item, or -1 when closed.
func (s State) Index() int {
	if !s.open {
		return -1
	}
	return s.index
}

// Count returns the number of items.
func (s State) Count() int { return s.count }

// Open shows item i, wrapping out-of-range indices. An empty gallery stays closed.
func (s State) Open(i int) State {
	if s.count == 0 {
		return s
	}
	return State{open: true, index: wrap(i, s.count), count: s.count}
}

// Next advances to the following item, wrapping at the end.
func (s State) Next() State {
	if !s.open {
		return s
	}
	return s.Open(s.index + 1)
}

// Prev moves to the previous item, wrapping at the start.
func (s State) Prev() State {
	if !s.open {
		return s
	}
	return s.Open(s.index - 1)
}

// Close hides the viewer.
func (s State) Close() State {
	return State{count: s.count}
}

func (s State) String() string {
	if !s.open {
		return "Closed"
	}
	return fmt.Sprintf("Open(%d)", s.index)
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

// Action is a viewer transition requested by input.
type Action int

const (
	ActionNone Action = iota
	ActionClose
	ActionNext
	ActionPrev
)

func (a Action) String() string {
	switch a {
	case ActionClose:
		return "close"
	case ActionNext:
		return "next"
	case ActionPrev:
		return "prev"
	default:
		return "none"
	}
}

// Apply runs a on s. Actions only act on an open viewer.
func Apply(s State, a Action) State {
	if !s.open {
		return s
	}
	switch a {
	case ActionClose:
		return s.Close()
	case ActionNext:
		return s.Next()
	case ActionPrev:
		return s.Prev()
	}
	return s
}

// KeyAction maps a key name to an action. Browser names (Escape, ArrowLeft,
// ArrowRight) and terminal names (esc, left, right, h, l) are accepted.
func KeyAction(key string) Action {
	switch key {
	case "Escape", "esc":
		return ActionClose
	case "ArrowRight", "right", "l":
		return ActionNext
	case "ArrowLeft", "left", "h":
		return ActionPrev
	}
	return ActionNone
}
