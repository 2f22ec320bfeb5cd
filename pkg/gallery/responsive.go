package gallery

import (
	"cmp"
	"slices"
	"time"

	"github.com/matzehuels/justify/pkg/justified"
)

// ResizeDebounce is how long a resize must settle before relayout.
const ResizeDebounce = 150 * time.Millisecond

// Breakpoint sets row height and spacing for viewports up to MaxWidth.
// A MaxWidth of zero matches every width and acts as the fallback.
type Breakpoint struct {
	MaxWidth   float64 `json:"maxWidth,omitempty" toml:"maxWidth"`
	RowHeight  float64 `json:"rowHeight" toml:"rowHeight"`
	BoxSpacing float64 `json:"boxSpacing" toml:"boxSpacing"`
}

// Breakpoints is a table of responsive settings.
type Breakpoints []Breakpoint

// DefaultBreakpoints returns the portfolio defaults.
func DefaultBreakpoints() Breakpoints {
	return Breakpoints{
		{MaxWidth: 480, RowHeight: 180, BoxSpacing: 10},
		{MaxWidth: 768, RowHeight: 160, BoxSpacing: 9},
		{MaxWidth: 1200, RowHeight: 170, BoxSpacing: 8},
		{RowHeight: 180, BoxSpacing: 7},
	}
}

// Match returns the first breakpoint, by ascending MaxWidth, that covers
// viewport. The bounded entries are tried before the fallback.
func (bs Breakpoints) Match(viewport float64) (Breakpoint, bool) {
	sorted := slices.Clone(bs)
	slices.SortStableFunc(sorted, func(a, b Breakpoint) int {
		switch {
		case a.MaxWidth == 0 && b.MaxWidth == 0:
			return 0
		case a.MaxWidth == 0:
			return 1
		case b.MaxWidth == 0:
			return -1
		}
		return cmp.Compare(a.MaxWidth, b.MaxWidth)
	})
	for _, b := range sorted {
		if b.MaxWidth == 0 || viewport <= b.MaxWidth {
			return b, true
		}
	}
	return Breakpoint{}, false
}

// Viewport returns the engine config for a page of the given viewport width
// whose gallery container is containerWidth wide.
func (bs Breakpoints) Viewport(viewport, containerWidth float64) justified.Config {
	cfg := justified.DefaultConfig()
	cfg.ContainerWidth = containerWidth
	if b, ok := bs.Match(viewport); ok {
		cfg.TargetRowHeight = b.RowHeight
		cfg.BoxSpacing = b.BoxSpacing
	}
	return cfg
}

// Viewport applies DefaultBreakpoints.
func Viewport(viewport, containerWidth float64) justified.Config {
	return DefaultBreakpoints().Viewport(viewport, containerWidth)
}
