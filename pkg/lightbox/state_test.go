package lightbox

import (
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestStateTransitions(t *testing.T) {
	s := Closed(3)
	if s.IsOpen() || s.Index() != -1 {
		t.Fatalf("Closed(3) = %v", s)
	}

	tests := []struct {
		name string
		step func(State) State
		want string
	}{
		{"open first", func(s State) State { return s.Open(0) }, "Open(0)"},
		{"next", State.Next, "Open(1)"},
		{"next", State.Next, "Open(2)"},
		{"next wraps", State.Next, "Open(0)"},
		{"prev wraps", State.Prev, "Open(2)"},
		{"prev", State.Prev, "Open(1)"},
		{"close", State.Close, "Closed"},
		{"next while closed", State.Next, "Closed"},
		{"prev while closed", State.Prev, "Closed"},
		{"open out of range", func(s State) State { return s.Open(7) }, "Open(1)"},
		{"open negative", func(s State) State { return s.Open(-1) }, "Open(2)"},
	}
	for _, tt := range tests {
		s = tt.step(s)
		if got := s.String(); got != tt.want {
			t.Fatalf("%s: state = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestStateEmptyGallery(t *testing.T) {
	s := Closed(0).Open(0)
	if s.IsOpen() {
		t.Error("empty gallery should never open")
	}
	if Closed(-4).Count() != 0 {
		t.Error("negative count should clamp to 0")
	}
}

func TestApply(t *testing.T) {
	open := Closed(4).Open(1)
	tests := []struct {
		state  State
		action Action
		want   int
	}{
		{open, ActionNext, 2},
		{open, ActionPrev, 0},
		{open, ActionClose, -1},
		{open, ActionNone, 1},
		{Closed(4), ActionNext, -1},
		{Closed(4), ActionClose, -1},
	}
	for _, tt := range tests {
		if got := Apply(tt.state, tt.action).Index(); got != tt.want {
			t.Errorf("Apply(%v, %v) index = %d, want %d", tt.state, tt.action, got, tt.want)
		}
	}
}

func TestKeyAction(t *testing.T) {
	tests := map[string]Action{
		"Escape":     ActionClose,
		"esc":        ActionClose,
		"ArrowRight": ActionNext,
		"right":      ActionNext,
		"ArrowLeft":  ActionPrev,
		"left":       ActionPrev,
		"Enter":      ActionNone,
		"":           ActionNone,
	}
	for key, want := range tests {
		if got := KeyAction(key); got != want {
			t.Errorf("KeyAction(%q) = %v, want %v", key, got, want)
		}
	}
}

func TestSwipe(t *testing.T) {
	tests := []struct {
		name       string
		dx, dy     float64
		onControls bool
		want       Action
	}{
		{"left swipe goes next", -80, 5, false, ActionNext},
		{"right swipe goes prev", 80, -5, false, ActionPrev},
		{"too short", 50, 0, false, ActionNone},
		{"too vertical", -120, 40, false, ActionNone},
		{"on controls", -200, 0, true, ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Swipe
			s.Begin(200, 300, tt.onControls)
			if got := s.End(200+tt.dx, 300+tt.dy); got != tt.want {
				t.Errorf("End() = %v, want %v", got, tt.want)
			}
		})
	}

	var s Swipe
	if got := s.End(0, 0); got != ActionNone {
		t.Errorf("End() without Begin = %v, want none", got)
	}
}
