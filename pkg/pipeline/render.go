package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/justify/pkg/cache"
	"github.com/matzehuels/justify/pkg/gallery"
	"github.com/matzehuels/justify/pkg/justified"
	"github.com/matzehuels/justify/pkg/manifest"
	"github.com/matzehuels/justify/pkg/render/rows"
	"github.com/matzehuels/justify/pkg/render/sink"
)

// Scene is everything the renderers draw: a gallery, its layout and the
// page furniture from the manifest.
type Scene struct {
	Gallery     *gallery.Gallery
	Config      justified.Config
	Layout      justified.Result
	Nav         []gallery.NavLink
	Breakpoints gallery.Breakpoints
}

// NewScene assembles a scene from a manifest and its computed layout.
func NewScene(m *manifest.Manifest, g *gallery.Gallery, cfg justified.Config, res justified.Result) Scene {
	return Scene{
		Gallery:     g,
		Config:      cfg,
		Layout:      res,
		Nav:         m.NavLinks(),
		Breakpoints: m.ResponsiveBreakpoints(),
	}
}

// mediaHash covers the scene and option inputs an artifact depends on
// beyond the layout itself.
func (s Scene) mediaHash(opts Options) string {
	return cache.HashJSON(struct {
		Media          []gallery.MediaItem `json:"media"`
		Config         justified.Config    `json:"config"`
		Nav            []gallery.NavLink   `json:"nav"`
		Breakpoints    gallery.Breakpoints `json:"breakpoints"`
		MediaPrefix    string              `json:"media_prefix"`
		ViewBase       string              `json:"view_base"`
		LayoutEndpoint string              `json:"layout_endpoint"`
		Scale          float64             `json:"scale"`
		Detailed       bool                `json:"detailed"`
	}{
		s.Gallery.Media(), s.Config, s.Nav, s.Breakpoints,
		opts.MediaPrefix, opts.ViewBase, opts.LayoutEndpoint, opts.Scale, opts.Detailed,
	})
}

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, s Scene, opts Options) (map[string][]byte, error) {
	logger := opts.logger()
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(ctx, s, opts, format)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		logger.Debug("rendered", "format", format, "bytes", len(data))
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, s Scene, opts Options, format string) ([]byte, error) {
	switch format {
	case FormatHTML:
		return sink.RenderHTML(s.Gallery, s.Layout, buildHTMLOptions(s, opts)...)
	case FormatSVG:
		return sink.RenderSVG(s.Gallery, s.Layout, append(buildSVGOptions(opts), sink.WithInteraction())...), nil
	case FormatJSON:
		return sink.RenderJSON(s.Layout)
	case FormatPNG:
		return sink.RenderPNG(ctx, s.Gallery, s.Layout,
			sink.WithPNGSVGOptions(buildSVGOptions(opts)...), sink.WithScale(opts.Scale))
	case FormatPDF:
		return sink.RenderPDF(ctx, s.Gallery, s.Layout, sink.WithPDFSVGOptions(buildSVGOptions(opts)...))
	case FormatDOT:
		return []byte(rows.ToDOT(s.Gallery, s.Config, rows.Options{Detailed: opts.Detailed})), nil
	}
	return nil, ValidateFormat(format)
}

func buildHTMLOptions(s Scene, opts Options) []sink.HTMLOption {
	htmlOpts := []sink.HTMLOption{
		sink.WithTitle(opts.Title),
		sink.WithNav(gallery.Nav(s.Nav, opts.Page)),
		sink.WithConfig(s.Config),
		sink.WithMediaPrefix(opts.MediaPrefix),
	}
	if opts.Responsive {
		htmlOpts = append(htmlOpts, sink.WithResponsive(s.Breakpoints))
	}
	if opts.ViewBase != "" {
		htmlOpts = append(htmlOpts, sink.WithViewBase(opts.ViewBase))
	}
	if opts.LayoutEndpoint != "" {
		htmlOpts = append(htmlOpts, sink.WithLayoutEndpoint(opts.LayoutEndpoint))
	}
	return htmlOpts
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithCaptions()}
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithSheetTitle(opts.Title))
	}
	if opts.MediaPrefix != "" {
		svgOpts = append(svgOpts, sink.WithImages(opts.MediaPrefix))
	}
	return svgOpts
}
