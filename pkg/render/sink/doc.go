// Package sink provides output format renderers for gallery layouts.
//
// # Overview
//
// A "sink" transforms a computed [justified.Result] for a [gallery.Gallery]
// into a final output format. This package provides renderers for:
//
//   - HTML: the gallery page with captions, highlight and lightbox
//   - SVG: a contact sheet of the boxes
//   - JSON: layout data export for external tools
//   - PDF: Print-ready contact sheet (requires rsvg-convert)
//   - PNG: Raster contact sheet (requires rsvg-convert)
//
// # HTML Output
//
// [RenderHTML] produces a self-contained page. Boxes are absolutely
// positioned at their computed coordinates; only group heads carry a
// caption, and every grouped tile has a data-group attribute for the
// highlight script. The embedded script repacks on resize (debounced), either
// in the browser or through a layout endpoint set with [WithLayoutEndpoint].
//
//	page, err := sink.RenderHTML(g, res,
//	    sink.WithTitle("Editorial"),
//	    sink.WithNav(gallery.Nav(gallery.DefaultNav(), "editorial.html")),
//	    sink.WithResponsive(gallery.DefaultBreakpoints()),
//	)
//
// [RenderLightbox] renders one viewer page from a [lightbox.State], for
// clients without JavaScript.
//
// # JSON Output
//
// [RenderJSON] emits the engine result with camelCase keys:
//
//	{"boxes":[{"left":0,"top":0,"width":480,"height":320}],"containerHeight":320}
//
// [WithJSONGallery] and [WithJSONConfig] append item metadata, groups and
// the row partition.
//
// [justified.Result]: github.com/matzehuels/justify/pkg/justified.Result
// [gallery.Gallery]: github.com/matzehuels/justify/pkg/gallery.Gallery
// [lightbox.State]: github.com/matzehuels/justify/pkg/lightbox.State
package sink
