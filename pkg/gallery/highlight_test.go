package gallery

import "testing"

func TestHighlighterHover(t *testing.T) {
	h := NewHighlighter(New(sample()))

	h.Enter(1)
	if !h.Highlighted(0) || !h.Highlighted(1) {
		t.Error("hover should highlight every member of the group")
	}
	if h.Highlighted(4) {
		t.Error("other group highlighted")
	}
	if h.Mode() != HighlightHover {
		t.Errorf("Mode() = %v, want hover", h.Mode())
	}

	h.Enter(2) // ungrouped: keeps current highlight
	if !h.Highlighted(0) {
		t.Error("entering an ungrouped item should not clear the highlight")
	}

	h.Leave()
	if h.Highlighted(0) || h.Mode() != HighlightNone {
		t.Error("Leave() should clear the highlight")
	}
}

func TestHighlighterTap(t *testing.T) {
	h := NewHighlighter(New(sample()))

	if h.Tap(3) {
		t.Fatal("first tap should be consumed")
	}
	if h.Armed() != 3 || !h.Highlighted(5) || h.Mode() != HighlightTap {
		t.Fatalf("after first tap: armed=%d mode=%v", h.Armed(), h.Mode())
	}

	// Tapping another member of the same group re-arms on that item.
	if h.Tap(5) {
		t.Fatal("tap on a different item should be consumed")
	}
	if h.Armed() != 5 {
		t.Errorf("Armed() = %d, want 5", h.Armed())
	}

	if !h.Tap(5) {
		t.Fatal("second tap on the armed item should pass through")
	}
	if h.Armed() != -1 || h.Highlighted(5) {
		t.Error("second tap should clear the highlight")
	}

	if !h.Tap(2) {
		t.Error("tap on an ungrouped item should pass through")
	}
}

func TestHighlighterGroup(t *testing.T) {
	h := NewHighlighter(New(sample()))
	if _, ok := h.Group(); ok {
		t.Error("Group() should report nothing before any highlight")
	}
	h.Enter(4)
	g, ok := h.Group()
	if !ok || g.Key != "Vogue|||Autumn" {
		t.Errorf("Group() = %+v, %v", g, ok)
	}
}

func TestHighlighterLeaveKeepsArmedTap(t *testing.T) {
	h := NewHighlighter(New(sample()))

	h.Tap(3)
	h.Leave()
	if h.Highlighted(3) || h.Mode() != HighlightNone {
		t.Error("Leave() should clear the highlight")
	}
	if h.Armed() != 3 {
		t.Fatalf("Armed() = %d, want 3", h.Armed())
	}
	if !h.Tap(3) {
		t.Error("tap on the still armed item should pass through")
	}
}
