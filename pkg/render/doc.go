// Package render turns a computed gallery layout into output formats.
//
// # Overview
//
// The layout engine in [justified] only produces boxes. This package and its
// subpackages draw them:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Page and contact sheet sinks (in [sink] subpackage)
//   - Row partition diagrams (in [rows] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). Both the contact sheet and
// the row diagram go through them.
//
//	svg := sink.RenderSVG(g, res)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// # Sinks
//
// The [sink] subpackage holds the renderers the pipeline dispatches to: the
// HTML gallery page, the lightbox page, the SVG contact sheet and the JSON
// layout export.
//
// # Row Diagrams
//
// The [rows] subpackage renders how the greedy pass split items into rows,
// as a Graphviz graph with one cluster per row.
//
//	dot := rows.ToDOT(g, cfg, rows.Options{})
//	svg, err := rows.RenderSVG(ctx, dot)
//
// [justified]: github.com/matzehuels/justify/pkg/justified
// [sink]: github.com/matzehuels/justify/pkg/render/sink
// [rows]: github.com/matzehuels/justify/pkg/render/rows
package render
