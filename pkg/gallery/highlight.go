package gallery

// HighlightMode records how the active group was highlighted.
type HighlightMode int

const (
	HighlightNone HighlightMode = iota
	HighlightHover
	HighlightTap
)

func (m HighlightMode) String() string {
	switch m {
	case HighlightHover:
		return "hover"
	case HighlightTap:
		return "tap"
	default:
		return "none"
	}
}

// Highlighter tracks which caption group is highlighted.
//
// On pointer devices Enter and Leave follow the cursor. On touch devices the
// first Tap on an item highlights its group and swallows the tap; a second
// Tap on the same item clears the highlight and lets the tap through so the
// caller can open the lightbox.
type Highlighter struct {
	g     *Gallery
	group int
	mode  HighlightMode
	armed int
}

// NewHighlighter returns a highlighter with nothing highlighted.
func NewHighlighter(g *Gallery) *Highlighter {
	return &Highlighter{g: g, group: -1, armed: -1}
}

// Enter highlights the group of item i. Ungrouped items leave state as is.
func (h *Highlighter) Enter(i int) {
	gi := h.g.groupIndex(i)
	if gi < 0 {
		return
	}
	h.set(gi, HighlightHover)
}

// Leave clears the highlight. An armed tap stays armed.
func (h *Highlighter) Leave() { h.group, h.mode = -1, HighlightNone }

// Tap handles a tap on item i and reports whether the tap should pass
// through to the lightbox.
func (h *Highlighter) Tap(i int) bool {
	gi := h.g.groupIndex(i)
	if gi < 0 {
		return true
	}
	if h.armed != i {
		h.set(gi, HighlightTap)
		h.armed = i
		return false
	}
	h.Clear()
	return true
}

// Clear removes the highlight and disarms any tapped item.
func (h *Highlighter) Clear() {
	h.group, h.mode, h.armed = -1, HighlightNone, -1
}

// Highlighted reports whether item i belongs to the highlighted group.
func (h *Highlighter) Highlighted(i int) bool {
	return h.group >= 0 && h.g.groupIndex(i) == h.group
}

// Mode returns how the current highlight was triggered.
func (h *Highlighter) Mode() HighlightMode { return h.mode }

// Armed returns the item waiting for a second tap, or -1.
func (h *Highlighter) Armed() int { return h.armed }

// Group returns the highlighted group, if any.
func (h *Highlighter) Group() (Group, bool) {
	if h.group < 0 {
		return Group{}, false
	}
	return h.g.groups[h.group].clone(), true
}

func (h *Highlighter) set(gi int, mode HighlightMode) {
	h.group, h.mode = gi, mode
}
