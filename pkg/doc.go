// Package pkg provides the libraries behind justify, a justified gallery
// layout engine.
//
// # Overview
//
// Justify packs media of mixed aspect ratios into rows of equal height that
// exactly fill a container width. The pkg directory is organized into:
//
//  1. [justified] - The layout engine (row packing and box geometry)
//  2. [gallery] - Media items, captions and responsive breakpoints
//  3. [lightbox] - Full-screen viewer state, preloading and video controls
//  4. [manifest] - Gallery manifests (TOML/JSON) and image probing
//  5. [pipeline] - Orchestration (load → layout → render)
//  6. [render] - Output formats (HTML, SVG, JSON, row diagrams)
//  7. [cache] - File, Redis and no-op caches for layouts and artifacts
//
// # Architecture
//
// The typical data flow through justify:
//
//	gallery.toml
//	     ↓
//	[manifest] package (parse, probe missing dimensions)
//	     ↓
//	[gallery] package (items + breakpoint config)
//	     ↓
//	[justified] package (boxes + container height)
//	     ↓
//	[render] package (HTML/SVG/PDF/PNG/JSON)
//
// # Quick Start
//
// Lay out three items in a 1000px container:
//
//	items := []justified.Item{{AspectRatio: 1.5}, {AspectRatio: 1}, {AspectRatio: 0.75}}
//	res := justified.Compute(items, justified.Config{
//	    ContainerWidth:  1000,
//	    TargetRowHeight: 300,
//	    BoxSpacing:      10,
//	})
//	for _, b := range res.Boxes {
//	    fmt.Printf("%.0f,%.0f %.0fx%.0f\n", b.Left, b.Top, b.Width, b.Height)
//	}
//
// Or run the full pipeline from a manifest:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	defer runner.Close()
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:  "gallery.toml",
//	    Formats: []string{"html", "json"},
//	})
//
// [justified]: github.com/matzehuels/justify/pkg/justified
// [gallery]: github.com/matzehuels/justify/pkg/gallery
// [lightbox]: github.com/matzehuels/justify/pkg/lightbox
// [manifest]: github.com/matzehuels/justify/pkg/manifest
// [pipeline]: github.com/matzehuels/justify/pkg/pipeline
// [render]: github.com/matzehuels/justify/pkg/render
// [cache]: github.com/matzehuels/justify/pkg/cache
package pkg
