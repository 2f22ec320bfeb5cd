package lightbox

import (
	"fmt"
	"strings"

	"github.com/matzehuels/justify/pkg/gallery"
)

// View is everything a renderer needs to draw the viewer for one state.
type View struct {
	Open       bool         `json:"open"`
	AriaHidden string       `json:"ariaHidden"`
	Index      int          `json:"index"`
	Count      int          `json:"count"`
	Kind       gallery.Kind `json:"kind"`
	Src        string       `json:"src,omitempty"`
	Poster     string       `json:"poster,omitempty"`
	Portrait   bool         `json:"portrait,omitempty"`
	Loop       bool         `json:"loop,omitempty"`
	Title      string       `json:"title,omitempty"`
	Subtitle   string       `json:"subtitle,omitempty"`
	Counter    string       `json:"counter,omitempty"`
	Preload    []string     `json:"preload,omitempty"`
}

// IsVideo reports whether the view shows a video.
func (v View) IsVideo() bool { return v.Open && v.Kind == gallery.KindVideo }

// Render derives the view for s. items must have s.Count() entries.
func Render(s State, items []gallery.MediaItem) View {
	if !s.IsOpen() || len(items) == 0 {
		return View{AriaHidden: "true", Index: -1, Count: len(items)}
	}

	i := s.Index()
	it := items[i]
	v := View{
		Open:       true,
		AriaHidden: "false",
		Index:      i,
		Count:      len(items),
		Kind:       it.Kind,
		Src:        it.FullURL(),
		Title:      it.Caption.Title,
		Subtitle:   Subtitle(it.Caption),
		Counter:    Counter(i, len(items)),
	}
	if it.IsVideo() {
		v.Poster = it.Poster
		v.Portrait = it.IsPortrait()
		v.Loop = true
	}
	for _, t := range Targets(items, i) {
		v.Preload = append(v.Preload, items[t].FullURL())
	}
	return v
}

// Subtitle joins the non-empty caption lines with " / ".
func Subtitle(c gallery.Caption) string {
	var parts []string
	for _, s := range []string{c.Line1, c.Line2} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " / ")
}

// Counter returns the one-based position label, e.g. "3 / 12".
func Counter(index, count int) string {
	return fmt.Sprintf("%d / %d", index+1, count)
}
