package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/justify/pkg/gallery"
	"github.com/matzehuels/justify/pkg/justified"
)

const sheetCSS = `
    .tile { fill: #e8e8e8; stroke: #fff; stroke-width: 1; transition: opacity 0.2s ease; }
    .tile.video { fill: #d4e4f0; }
    .sheet.hl .tile, .sheet.hl image { opacity: 0.35; }
    .sheet.hl .hl { opacity: 1; }
    .index { font: 11px "Helvetica Neue", Helvetica, Arial, sans-serif; fill: #666; }
    .caption { font: 12px "Helvetica Neue", Helvetica, Arial, sans-serif; fill: #111; }
`

const sheetJS = `
    const sheet = document.querySelector('.sheet');
    function highlight(group) {
      sheet.classList.toggle('hl', group !== null);
      sheet.querySelectorAll('[data-group]').forEach(el => el.classList.toggle('hl', el.dataset.group === group));
    }
    sheet.querySelectorAll('g[data-group]').forEach(el => {
      el.addEventListener('mouseenter', () => highlight(el.dataset.group));
      el.addEventListener('mouseleave', () => highlight(null));
    });`

// captionHeight is the band reserved under each row for caption text.
const captionHeight = 16.0

// SVGOption configures the contact sheet via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	title       string
	images      bool
	mediaPrefix string
	captions    bool
	padding     float64
	interactive bool
}

// WithSheetTitle draws a title above the sheet.
func WithSheetTitle(s string) SVGOption { return func(r *svgRenderer) { r.title = s } }

// WithImages draws each thumbnail as an <image> element, with relative URLs
// resolved against prefix. Without it tiles are plain placeholders.
func WithImages(prefix string) SVGOption {
	return func(r *svgRenderer) { r.images = true; r.mediaPrefix = prefix }
}

// WithCaptions writes each group caption under its head tile.
func WithCaptions() SVGOption { return func(r *svgRenderer) { r.captions = true } }

// WithPadding sets the outer margin (default 20).
func WithPadding(p float64) SVGOption { return func(r *svgRenderer) { r.padding = p } }

// WithInteraction embeds the hover script that highlights caption groups.
// Leave it off for output headed to rsvg-convert.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.interactive = true } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{padding: 20}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG draws the layout as a contact sheet. The sheet is as wide as the
// widest row and as tall as the container, plus padding and caption bands.
func RenderSVG(g *gallery.Gallery, res justified.Result, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	width := 0.0
	for _, b := range res.Boxes {
		width = max(width, b.Right())
	}
	top := r.padding
	if r.title != "" {
		top += 28
	}
	extra := 0.0
	if r.captions {
		extra = captionHeight
	}
	totalWidth := width + 2*r.padding
	totalHeight := top + res.ContainerHeight + extra + r.padding

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		totalWidth, totalHeight, totalWidth, totalHeight)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", sheetCSS)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="#fff"/>`+"\n")
	if r.title != "" {
		fmt.Fprintf(&buf, `  <text class="caption" x="%.1f" y="%.1f" font-size="16" font-weight="bold">%s</text>`+"\n",
			r.padding, r.padding+16, html.EscapeString(r.title))
	}

	fmt.Fprintf(&buf, `  <g class="sheet" transform="translate(%.1f,%.1f)">`+"\n", r.padding, top)
	r.renderTiles(&buf, g, res)
	if r.captions {
		renderCaptions(&buf, g, res)
	}
	buf.WriteString("  </g>\n")

	if r.interactive {
		fmt.Fprintf(&buf, "  <script><![CDATA[%s\n  ]]></script>\n", sheetJS)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r svgRenderer) renderTiles(buf *bytes.Buffer, g *gallery.Gallery, res justified.Result) {
	groupOf := groupIndices(g)
	for i, b := range res.Boxes {
		m := g.Item(i)
		attr := ""
		if gi, ok := groupOf[i]; ok {
			attr = fmt.Sprintf(` data-group="%d"`, gi)
		}
		class := "tile"
		if m.IsVideo() {
			class += " video"
		}

		fmt.Fprintf(buf, `    <g id="item-%d"%s>`+"\n", i, attr)
		fmt.Fprintf(buf, `      <rect class="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f"/>`+"\n",
			class, b.Left, b.Top, b.Width, b.Height)
		if href := r.thumbnail(m); href != "" {
			fmt.Fprintf(buf, `      <image href="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" preserveAspectRatio="xMidYMid slice"/>`+"\n",
				html.EscapeString(href), b.Left, b.Top, b.Width, b.Height)
		} else {
			fmt.Fprintf(buf, `      <text class="index" x="%.2f" y="%.2f">%d</text>`+"\n", b.Left+6, b.Top+16, i+1)
		}
		buf.WriteString("    </g>\n")
	}
}

// thumbnail returns the image to draw for m, or "" for a placeholder.
func (r svgRenderer) thumbnail(m gallery.MediaItem) string {
	if !r.images {
		return ""
	}
	u := m.URL
	if m.IsVideo() {
		u = m.Poster
	}
	if u == "" {
		return ""
	}
	return htmlRenderer{mediaPrefix: r.mediaPrefix}.media(u)
}

func renderCaptions(buf *bytes.Buffer, g *gallery.Gallery, res justified.Result) {
	for _, grp := range g.Groups() {
		b := res.Boxes[grp.Head()]
		p := grp.Caption()
		fmt.Fprintf(buf, `    <text class="caption" x="%.2f" y="%.2f"><tspan font-weight="bold">%s</tspan>`,
			b.Left, b.Bottom()+captionHeight*0.8, html.EscapeString(p.Bold))
		if p.Emphasis != "" {
			fmt.Fprintf(buf, ` <tspan font-style="italic">%s</tspan>`, html.EscapeString(p.Emphasis))
		}
		if p.Italic != "" {
			fmt.Fprintf(buf, ` <tspan font-style="italic">%s</tspan>`, html.EscapeString(p.Italic))
		}
		buf.WriteString("</text>\n")
	}
}

// groupIndices maps each grouped item to its group's position in g.Groups().
func groupIndices(g *gallery.Gallery) map[int]int {
	out := make(map[int]int)
	for gi, grp := range g.Groups() {
		for _, i := range grp.Members {
			out[i] = gi
		}
	}
	return out
}
