package justified

// Item is one media element to place. AspectRatio is width ÷ height.
type Item struct {
	AspectRatio float64 `json:"aspectRatio"`
}

// Box is the placement of one item in container coordinates.
type Box struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the box's right edge.
func (b Box) Right() float64 { return b.Left + b.Width }

// Bottom returns the y coordinate of the box's bottom edge.
func (b Box) Bottom() float64 { return b.Top + b.Height }

// Result is the output of a layout pass. Boxes[i] belongs to items[i].
type Result struct {
	Boxes           []Box   `json:"boxes"`
	ContainerHeight float64 `json:"containerHeight"`
}

// Span describes one packed row: items [Start, End) at Height.
// Last marks the trailing row that never reached the container width.
type Span struct {
	Start  int     `json:"start"`
	End    int     `json:"end"`
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
	Last   bool    `json:"last"`
}

// Len returns the number of items in the row.
func (s Span) Len() int { return s.End - s.Start }

// ComputeLayout lays out items with the default config and opts applied.
func ComputeLayout(items []Item, opts ...Option) Result {
	return Compute(items, DefaultConfig().With(opts...))
}

// Compute lays out items under cfg.
func Compute(items []Item, cfg Config) Result {
	boxes := make([]Box, len(items))
	spans, y := pack(items, cfg)

	for _, s := range spans {
		x := 0.0
		for i := s.Start; i < s.End; i++ {
			w := s.Height * items[i].AspectRatio
			boxes[i] = Box{Left: x, Top: s.Top, Width: w, Height: s.Height}
			x += w + cfg.BoxSpacing
		}
	}

	// y carries the spacing after the last row; an empty layout stays at 0.
	height := 0.0
	if len(spans) > 0 {
		height = max(0, y-cfg.BoxSpacing)
	}
	return Result{Boxes: boxes, ContainerHeight: height}
}

// Partition returns the rows Compute would produce, in order.
func Partition(items []Item, cfg Config) []Span {
	spans, _ := pack(items, cfg)
	return spans
}

// pack runs the greedy scan, stacks the resulting rows and returns the
// running y offset after the last row.
func pack(items []Item, cfg Config) ([]Span, float64) {
	var spans []Span
	start, sum := 0, 0.0

	for i, it := range items {
		sum += it.AspectRatio
		n := i - start + 1
		width := sum*cfg.TargetRowHeight + cfg.BoxSpacing*float64(n-1)
		// A zero sum never closes: the row would have no finite height.
		if sum > 0 && width >= cfg.ContainerWidth {
			h := (cfg.ContainerWidth - cfg.BoxSpacing*float64(n-1)) / sum
			spans = append(spans, Span{Start: start, End: i + 1, Height: h})
			start, sum = i+1, 0
		}
	}
	if start < len(items) {
		spans = append(spans, Span{Start: start, End: len(items), Height: cfg.TargetRowHeight, Last: true})
	}

	y := 0.0
	for i := range spans {
		spans[i].Top = y
		y += spans[i].Height + cfg.BoxSpacing
	}
	return spans, y
}
