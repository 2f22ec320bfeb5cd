// Package gallery models the media grid that sits around the layout engine.
//
// A [Gallery] is an ordered list of [MediaItem] values. Construction groups
// consecutive or scattered items that share a caption so that only the head of
// each group shows it, and the helpers in this package turn items into engine
// input ([Gallery.Items]), pick a responsive engine config ([Viewport]),
// track hover and tap highlighting ([Highlighter]) and resolve the top
// navigation for the current page ([Nav]).
//
// Nothing here touches a document or a network. Renderers in pkg/render
// consume these values.
package gallery

import (
	"github.com/matzehuels/justify/pkg/justified"
)

// Gallery is an immutable, grouped list of media items.
type Gallery struct {
	items    []MediaItem
	groups   []Group
	memberOf []int
}

// New groups items by caption. The slice is copied.
func New(items []MediaItem) *Gallery {
	own := make([]MediaItem, len(items))
	copy(own, items)
	groups, memberOf := groupItems(own)
	return &Gallery{items: own, groups: groups, memberOf: memberOf}
}

// Len returns the number of items.
func (g *Gallery) Len() int { return len(g.items) }

// Item returns item i.
func (g *Gallery) Item(i int) MediaItem { return g.items[i] }

// Media returns a copy of all items in order.
func (g *Gallery) Media() []MediaItem {
	out := make([]MediaItem, len(g.items))
	copy(out, g.items)
	return out
}

// Items returns the engine input for the gallery.
func (g *Gallery) Items() []justified.Item {
	out := make([]justified.Item, len(g.items))
	for i, it := range g.items {
		out[i] = justified.Item{AspectRatio: it.AspectRatio()}
	}
	return out
}

// Layout computes the justified layout of the gallery under cfg.
func (g *Gallery) Layout(cfg justified.Config) justified.Result {
	return justified.Compute(g.Items(), cfg)
}

// Groups returns the caption groups in first-seen order.
func (g *Gallery) Groups() []Group {
	out := make([]Group, len(g.groups))
	for i, gr := range g.groups {
		out[i] = gr.clone()
	}
	return out
}

// GroupOf returns the group item i belongs to.
func (g *Gallery) GroupOf(i int) (Group, bool) {
	gi := g.groupIndex(i)
	if gi < 0 {
		return Group{}, false
	}
	return g.groups[gi].clone(), true
}

// IsHead reports whether item i carries its group's caption.
func (g *Gallery) IsHead(i int) bool {
	gi := g.groupIndex(i)
	return gi >= 0 && g.groups[gi].Head() == i
}

// Videos returns the number of video items.
func (g *Gallery) Videos() int {
	n := 0
	for _, it := range g.items {
		if it.IsVideo() {
			n++
		}
	}
	return n
}

func (g *Gallery) groupIndex(i int) int {
	if i < 0 || i >= len(g.memberOf) {
		return -1
	}
	return g.memberOf[i]
}
