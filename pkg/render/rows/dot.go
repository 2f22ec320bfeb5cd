package rows

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/justify/pkg/gallery"
	"github.com/matzehuels/justify/pkg/justified"
	"github.com/matzehuels/justify/pkg/render"
)

// Options configures row diagram rendering.
type Options struct {
	// Detailed adds the caption title and the computed box size to each
	// node label. When false, only the index and aspect ratio are shown.
	Detailed bool
}

// ToDOT converts the row partition of g under cfg to Graphviz DOT format.
func ToDOT(g *gallery.Gallery, cfg justified.Config, opts Options) string {
	items := g.Items()
	spans := justified.Partition(items, cfg)
	res := justified.Compute(items, cfg)

	var buf bytes.Buffer
	buf.WriteString("digraph rows {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  compound=true;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.2;\n")
	fmt.Fprintf(&buf, "  label=%q;\n", fmt.Sprintf("width %g · row height %g · spacing %g",
		cfg.ContainerWidth, cfg.TargetRowHeight, cfg.BoxSpacing))
	buf.WriteString("  labelloc=t;\n")

	for r, s := range spans {
		buf.WriteString("\n")
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", r)
		fmt.Fprintf(&buf, "    label=%q;\n", rowLabel(r, s))
		if s.Last {
			buf.WriteString("    style=dashed;\n")
		} else {
			buf.WriteString("    style=rounded;\n")
		}
		buf.WriteString("    { rank=same;")
		for i := s.Start; i < s.End; i++ {
			fmt.Fprintf(&buf, " %q;", nodeID(i))
		}
		buf.WriteString(" }\n")
		for i := s.Start; i < s.End; i++ {
			label := fmtLabel(g.Item(i), i, res.Boxes[i], opts.Detailed)
			fmt.Fprintf(&buf, "    %q [%s];\n", nodeID(i), strings.Join(fmtAttrs(g, i, label), ", "))
		}
		buf.WriteString("  }\n")
	}

	if len(spans) > 1 {
		buf.WriteString("\n")
		for r := 1; r < len(spans); r++ {
			fmt.Fprintf(&buf, "  %q -> %q [style=invis];\n", nodeID(spans[r-1].Start), nodeID(spans[r].Start))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(i int) string { return "item" + strconv.Itoa(i) }

func rowLabel(r int, s justified.Span) string {
	label := fmt.Sprintf("row %d · %d items · h=%.1f", r+1, s.Len(), s.Height)
	if s.Last {
		label += " (last)"
	}
	return label
}

func fmtLabel(m gallery.MediaItem, i int, b justified.Box, detailed bool) string {
	label := fmt.Sprintf("#%d\nar %.2f", i, m.AspectRatio())
	if !detailed {
		return label
	}
	if m.Caption.Title != "" {
		label += "\n" + m.Caption.Title
	}
	return label + fmt.Sprintf("\n%.0f×%.0f", b.Width, b.Height)
}

func fmtAttrs(g *gallery.Gallery, i int, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if g.Item(i).IsVideo() {
		attrs = append(attrs, "fillcolor=lightblue")
	}
	if g.IsHead(i) {
		attrs = append(attrs, "penwidth=2")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a
// zero-origin viewBox and pixel dimensions.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
