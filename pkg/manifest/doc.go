// Package manifest reads and writes gallery manifests.
//
// # Overview
//
// A manifest lists the media of one gallery page in display order, plus the
// optional page settings the renderers need. TOML and JSON are both accepted;
// the format is picked from the file extension:
//
//	title = "Portfolio"
//	page  = "works.html"
//
//	[layout]
//	containerWidth = 1200
//
//	[[breakpoints]]
//	maxWidth   = 480
//	rowHeight  = 180
//	boxSpacing = 10
//
//	[[nav]]
//	href  = "index.html"
//	label = "Works"
//
//	[[items]]
//	src   = "thumbs/a.jpg"
//	full  = "full/a.jpg"
//	w     = 1600
//	h     = 1067
//	title = "Harbour"
//	line1 = "2024"
//
//	[[items]]
//	type   = "video"
//	src    = "clips/b.mp4"
//	poster = "clips/b.jpg"
//	w      = 1080
//	h      = 1920
//
// Unknown keys are ignored. Items without w or h get their dimensions from
// the image header of src, resolved relative to the manifest directory (see
// [Probe]); items whose dimensions cannot be determined fall back to an
// aspect ratio of 1 in the engine.
//
// [Scan] builds a manifest from a directory of media files.
package manifest
