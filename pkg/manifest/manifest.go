package manifest

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/matzehuels/justify/pkg/gallery"
	"github.com/matzehuels/justify/pkg/justified"
)

// Namespace seeds the SHA-1 item IDs. IDs derived from it are stable across
// runs for the same item URL.
var Namespace = uuid.MustParse("6f1c3a52-8d0e-4b8e-9a4e-2a1f5c7d9b30")

// Manifest is the decoded form of a gallery file.
type Manifest struct {
	Title       string               `json:"title,omitempty" toml:"title,omitempty"`
	Page        string               `json:"page,omitempty" toml:"page,omitempty"`
	Layout      justified.Overrides  `json:"layout,omitzero" toml:"layout,omitempty"`
	Breakpoints []gallery.Breakpoint `json:"breakpoints,omitempty" toml:"breakpoints,omitempty"`
	Nav         []gallery.NavLink    `json:"nav,omitempty" toml:"nav,omitempty"`
	Items       []Item               `json:"items" toml:"items"`
}

// Item is one [[items]] entry.
type Item struct {
	Type   string  `json:"type,omitempty" toml:"type,omitempty"`
	Src    string  `json:"src" toml:"src"`
	Full   string  `json:"full,omitempty" toml:"full,omitempty"`
	Poster string  `json:"poster,omitempty" toml:"poster,omitempty"`
	W      float64 `json:"w,omitempty" toml:"w,omitempty"`
	H      float64 `json:"h,omitempty" toml:"h,omitempty"`
	Title  string  `json:"title,omitempty" toml:"title,omitempty"`
	Line1  string  `json:"line1,omitempty" toml:"line1,omitempty"`
	Line2  string  `json:"line2,omitempty" toml:"line2,omitempty"`
}

// HasSize reports whether both dimensions are set.
func (it Item) HasSize() bool { return it.W > 0 && it.H > 0 }

// Media converts the entry into a gallery item.
func (it Item) Media() (gallery.MediaItem, error) {
	kind, err := gallery.ParseKind(it.Type)
	if err != nil {
		return gallery.MediaItem{}, err
	}
	c := gallery.Caption{Title: it.Title, Line1: it.Line1, Line2: it.Line2}
	var m gallery.MediaItem
	switch kind {
	case gallery.KindVideo:
		m = gallery.NewVideo(it.Src, it.Poster, it.W, it.H, c)
	default:
		m = gallery.NewImage(it.Src, it.Full, it.W, it.H, c)
	}
	m.ID = ItemID(it.Src)
	return m, nil
}

// ItemID returns the stable ID of the item at url.
func ItemID(url string) string {
	return uuid.NewSHA1(Namespace, []byte(url)).String()
}

// Media converts all items, failing on the first invalid entry.
func (m *Manifest) Media() ([]gallery.MediaItem, error) {
	out := make([]gallery.MediaItem, 0, len(m.Items))
	for i, it := range m.Items {
		mi, err := it.Media()
		if err != nil {
			return nil, fmt.Errorf("item %d (%s): %w", i, it.Src, err)
		}
		out = append(out, mi)
	}
	return out, nil
}

// Gallery builds the grouped gallery of the manifest.
func (m *Manifest) Gallery() (*gallery.Gallery, error) {
	items, err := m.Media()
	if err != nil {
		return nil, err
	}
	return gallery.New(items), nil
}

// ResponsiveBreakpoints returns the manifest breakpoints, or the defaults
// when none are given.
func (m *Manifest) ResponsiveBreakpoints() gallery.Breakpoints {
	if len(m.Breakpoints) == 0 {
		return gallery.DefaultBreakpoints()
	}
	return gallery.Breakpoints(m.Breakpoints)
}

// NavLinks returns the manifest navigation, or the default links.
func (m *Manifest) NavLinks() []gallery.NavLink {
	if len(m.Nav) == 0 {
		return gallery.DefaultNav()
	}
	return m.Nav
}

// Missing returns the indexes of items without dimensions.
func (m *Manifest) Missing() []int {
	var idx []int
	for i, it := range m.Items {
		if !it.HasSize() {
			idx = append(idx, i)
		}
	}
	return idx
}
