// Package pipeline provides the gallery build pipeline for justify.
//
// This package implements the complete load → layout → render pipeline used
// by the CLI commands and the preview server. By centralizing this logic,
// both entry points cache and render the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a gallery manifest and probe missing image dimensions
//  2. Layout: Pack the items into justified rows for the resolved config
//  3. Render: Generate output in various formats (HTML, SVG, JSON, PNG, PDF, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source:  "gallery.toml",
//	    Formats: []string{"html"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	page := result.Artifacts["html"]
//
// Run individual stages:
//
//	// Load only
//	m, probeHits, err := runner.LoadWithCacheInfo(ctx, opts)
//
//	// Layout with an existing gallery
//	res, hit, err := runner.ComputeLayoutWithCacheInfo(ctx, g, cfg)
//
//	// Render with an existing layout
//	artifacts, hit, err := runner.RenderWithCacheInfo(ctx, scene, opts)
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/justify/pkg/cache"
	"github.com/matzehuels/justify/pkg/errors"
	"github.com/matzehuels/justify/pkg/gallery"
	"github.com/matzehuels/justify/pkg/justified"
	"github.com/matzehuels/justify/pkg/manifest"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultContainerWidth is the gallery container width in CSS pixels.
	DefaultContainerWidth = justified.DefaultContainerWidth

	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0

	// DefaultManifest is the manifest file looked up when none is given.
	DefaultManifest = "gallery.toml"
)

// Format constants for output formats.
const (
	FormatHTML = "html"
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
)

// DefaultFormat is rendered when no format is requested.
const DefaultFormat = FormatHTML

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatHTML: true,
	FormatSVG:  true,
	FormatJSON: true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatDOT:  true,
}

// FormatNames returns the supported formats in display order.
func FormatNames() []string {
	return []string{FormatHTML, FormatSVG, FormatJSON, FormatPNG, FormatPDF, FormatDOT}
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the gallery pipeline.
// This struct supports JSON serialization.
type Options struct {
	// Load options
	Source  string `json:"source,omitempty"`   // manifest path
	NoProbe bool   `json:"no_probe,omitempty"` // keep missing dimensions unresolved
	Refresh bool   `json:"refresh,omitempty"`  // bypass cache reads

	// Layout options
	ViewportWidth  float64             `json:"viewport_width,omitempty"`
	ContainerWidth float64             `json:"container_width,omitempty"`
	Overrides      justified.Overrides `json:"overrides,omitzero"`
	Responsive     bool                `json:"responsive,omitempty"`

	// Render options
	Formats        []string `json:"formats,omitempty"`
	Title          string   `json:"title,omitempty"`
	Page           string   `json:"page,omitempty"`
	MediaPrefix    string   `json:"media_prefix,omitempty"`
	ViewBase       string   `json:"view_base,omitempty"`
	LayoutEndpoint string   `json:"layout_endpoint,omitempty"`
	Scale          float64  `json:"scale,omitempty"`
	Detailed       bool     `json:"detailed,omitempty"` // DOT node labels

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"` // defaults to the runner's logger

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Manifest is the loaded manifest with resolved dimensions.
	Manifest *manifest.Manifest

	// Gallery is the gallery built from the manifest.
	Gallery *gallery.Gallery

	// Config is the engine config the layout was computed with.
	Config justified.Config

	// Layout contains the computed boxes.
	Layout justified.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ItemCount  int
	VideoCount int
	RowCount   int
	Probed     int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ProbeHits int  // Dimensions read from cache instead of the file
	LayoutHit bool // Whether layout result came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading.
func (o *Options) ValidateForLoad() error {
	if o.Source == "" {
		o.Source = DefaultManifest
	}
	_, err := manifest.FormatOf(o.Source)
	return err
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.ContainerWidth == 0 {
		o.ContainerWidth = DefaultContainerWidth
	}
	if o.ViewportWidth == 0 {
		o.ViewportWidth = o.ContainerWidth
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.ContainerWidth < 0 || o.ViewportWidth < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "widths must be positive, got container %v viewport %v",
			o.ContainerWidth, o.ViewportWidth)
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// HasFormat reports whether format is requested.
func (o *Options) HasFormat(format string) bool {
	return slices.Contains(o.Formats, format)
}

// Config resolves the engine config for m. Breakpoints apply in responsive
// mode; the manifest's [layout] table and then Overrides replace individual
// fields on top.
func (o *Options) Config(m *manifest.Manifest) justified.Config {
	o.SetLayoutDefaults()
	cfg := justified.DefaultConfig()
	cfg.ContainerWidth = o.ContainerWidth
	if o.Responsive {
		cfg = m.ResponsiveBreakpoints().Viewport(o.ViewportWidth, o.ContainerWidth)
	}
	cfg = m.Layout.Apply(cfg)
	return o.Overrides.Apply(cfg)
}

// ApplyManifest fills the title and page from m where the options leave
// them empty.
func (o *Options) ApplyManifest(m *manifest.Manifest) {
	if o.Title == "" {
		o.Title = m.Title
	}
	if o.Page == "" {
		o.Page = m.Page
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func LayoutKeyOpts(cfg justified.Config) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		ContainerWidth:  cfg.ContainerWidth,
		TargetRowHeight: cfg.TargetRowHeight,
		BoxSpacing:      cfg.BoxSpacing,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
// mediaHash covers the scene inputs the layout hash does not.
func (o *Options) ArtifactKeyOpts(format, mediaHash string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Title:      o.Title,
		Page:       o.Page,
		Responsive: o.Responsive,
		Media:      mediaHash,
	}
}

// logger returns the options logger, discarding output when unset.
func (o *Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.NewWithOptions(io.Discard, log.Options{})
	}
	return o.Logger
}
