// Package rows renders the row partition of a justified layout as a
// Graphviz diagram.
//
// Each packed row becomes a cluster labelled with its index and height; the
// items inside are boxes labelled with their gallery index and aspect ratio.
// The trailing row, which keeps the target height instead of stretching, is
// drawn dashed. Rows are chained top to bottom with invisible edges so that
// Graphviz keeps them in gallery order.
//
// The DOT text from [ToDOT] can be rendered with [RenderSVG], [RenderPDF] or
// [RenderPNG]. SVG rendering uses the embedded WebAssembly build of Graphviz
// from goccy/go-graphviz, so no system Graphviz is needed; PDF and PNG
// additionally need rsvg-convert.
package rows
