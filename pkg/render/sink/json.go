package sink

import (
	"encoding/json"

	"github.com/matzehuels/justify/pkg/gallery"
	"github.com/matzehuels/justify/pkg/justified"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	gallery *gallery.Gallery
	config  *justified.Config
	indent  bool
}

// WithJSONGallery adds per-item metadata and the caption groups. Without
// this, the output is exactly the engine result.
func WithJSONGallery(g *gallery.Gallery) JSONOption { return func(r *jsonRenderer) { r.gallery = g } }

// WithJSONConfig records the config the layout was computed with, and the
// row partition when a gallery is attached as well.
func WithJSONConfig(cfg justified.Config) JSONOption {
	return func(r *jsonRenderer) { r.config = &cfg }
}

// WithJSONIndent pretty-prints the output.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

type jsonOutput struct {
	Boxes           []justified.Box   `json:"boxes"`
	ContainerHeight float64           `json:"containerHeight"`
	Config          *justified.Config `json:"config,omitempty"`
	Rows            []justified.Span  `json:"rows,omitempty"`
	Items           []jsonItem        `json:"items,omitempty"`
	Groups          []gallery.Group   `json:"groups,omitempty"`
}

type jsonItem struct {
	ID     string `json:"id,omitempty"`
	Kind   string `json:"kind"`
	URL    string `json:"url"`
	Head   bool   `json:"head,omitempty"`
	Poster string `json:"poster,omitempty"`
}

// RenderJSON encodes res as {"boxes": [...], "containerHeight": n} with any
// optional sections appended.
func RenderJSON(res justified.Result, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Boxes:           res.Boxes,
		ContainerHeight: res.ContainerHeight,
		Config:          r.config,
	}
	if out.Boxes == nil {
		out.Boxes = []justified.Box{}
	}
	if g := r.gallery; g != nil {
		for i, m := range g.Media() {
			out.Items = append(out.Items, jsonItem{
				ID:     m.ID,
				Kind:   m.Kind.String(),
				URL:    m.URL,
				Head:   g.IsHead(i),
				Poster: m.Poster,
			})
		}
		out.Groups = g.Groups()
		if r.config != nil {
			out.Rows = justified.Partition(g.Items(), *r.config)
		}
	}

	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}
