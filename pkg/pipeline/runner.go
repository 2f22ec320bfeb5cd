package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/justify/pkg/cache"
	"github.com/matzehuels/justify/pkg/gallery"
	"github.com/matzehuels/justify/pkg/justified"
	"github.com/matzehuels/justify/pkg/manifest"
	"github.com/matzehuels/justify/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both the CLI and the preview server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// LoadInfo describes the dimension probing done while loading.
type LoadInfo struct {
	Probed    int // items whose dimensions were filled in
	ProbeHits int // of those, how many came from the cache
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	m, info, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	g, err := m.Gallery()
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	opts.ApplyManifest(m)
	result.Manifest = m
	result.Gallery = g
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.ItemCount = g.Len()
	result.Stats.VideoCount = g.Videos()
	result.Stats.Probed = info.Probed
	result.CacheInfo.ProbeHits = info.ProbeHits

	r.Logger.Info("loaded gallery",
		"items", g.Len(),
		"videos", g.Videos(),
		"probed", info.Probed,
		"duration", result.Stats.LoadTime)
	if missing := m.Missing(); len(missing) > 0 {
		r.Logger.Warn("items without dimensions are laid out square", "count", len(missing))
	}

	// Stage 2: Layout
	layoutStart := time.Now()
	cfg := opts.Config(m)
	layout, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, g, cfg)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Config = cfg
	result.Layout = layout
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.RowCount = RowCount(g, cfg)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"boxes", len(layout.Boxes),
		"rows", result.Stats.RowCount,
		"height", layout.ContainerHeight,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, NewScene(m, g, cfg, layout), opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo reads the manifest at opts.Source and resolves missing
// dimensions, reading probe results from the cache where possible.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (*manifest.Manifest, LoadInfo, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, LoadInfo{}, err
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Source)
	start := time.Now()

	m, err := manifest.Open(opts.Source)
	if err != nil {
		hooks.OnLoadComplete(ctx, opts.Source, 0, time.Since(start), err)
		return nil, LoadInfo{}, err
	}

	var info LoadInfo
	if !opts.NoProbe {
		info.Probed = m.ResolveWith(filepath.Dir(opts.Source), r.cachedProbe(ctx, opts.Refresh, &info.ProbeHits))
	}
	hooks.OnLoadComplete(ctx, opts.Source, len(m.Items), time.Since(start), nil)
	return m, info, nil
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards the cache info.
func (r *Runner) Load(ctx context.Context, opts Options) (*manifest.Manifest, error) {
	m, _, err := r.LoadWithCacheInfo(ctx, opts)
	return m, err
}

type dimensions struct {
	W int `json:"w"`
	H int `json:"h"`
}

// cachedProbe returns a probe that keys results by file path, size and
// modification time. Cache hits are counted in hits.
func (r *Runner) cachedProbe(ctx context.Context, refresh bool, hits *int) manifest.ProbeFunc {
	hooks := observability.Cache()
	return func(path string) (int, int, error) {
		fi, err := os.Stat(path)
		if err != nil {
			return manifest.Probe(path)
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		key := r.Keyer.ProbeKey(abs, fi.Size(), fi.ModTime())

		if !refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				var d dimensions
				if err := json.Unmarshal(data, &d); err == nil && d.W > 0 && d.H > 0 {
					*hits++
					hooks.OnCacheHit(ctx, "probe")
					return d.W, d.H, nil
				}
			}
			hooks.OnCacheMiss(ctx, "probe")
		}

		w, h, err := manifest.Probe(path)
		if err != nil {
			return 0, 0, err
		}
		if data, err := json.Marshal(dimensions{W: w, H: h}); err == nil {
			if err := r.Cache.Set(ctx, key, data, cache.TTLProbe); err == nil {
				hooks.OnCacheSet(ctx, "probe", len(data))
			}
		}
		return w, h, nil
	}
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns cache hit info.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, g *gallery.Gallery, cfg justified.Config) (justified.Result, bool, error) {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, g.Len())
	start := time.Now()

	// Compute cache key
	inputHash := cache.HashJSON(g.Items())
	cacheKey := r.Keyer.LayoutKey(inputHash, LayoutKeyOpts(cfg))

	// Try cache first
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		var cached justified.Result
		if err := json.Unmarshal(data, &cached); err == nil && len(cached.Boxes) == g.Len() {
			observability.Cache().OnCacheHit(ctx, "layout")
			hooks.OnLayoutComplete(ctx, g.Len(), RowCount(g, cfg), time.Since(start), nil)
			return cached, true, nil // Cache hit
		}
		// If deserialization fails, fall through to recompute
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	// Compute layout
	res, err := ComputeLayout(g, cfg)
	if err != nil {
		hooks.OnLayoutComplete(ctx, g.Len(), 0, time.Since(start), err)
		return justified.Result{}, false, err
	}

	// Cache the result
	if data, err := json.Marshal(res); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	hooks.OnLayoutComplete(ctx, g.Len(), RowCount(g, cfg), time.Since(start), nil)
	return res, false, nil // Cache miss
}

// ComputeLayout is a convenience wrapper that calls ComputeLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, g *gallery.Gallery, cfg justified.Config) (justified.Result, error) {
	res, _, err := r.ComputeLayoutWithCacheInfo(ctx, g, cfg)
	return res, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, s Scene, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	// Compute cache keys from layout data and the remaining scene inputs
	layoutHash := cache.HashJSON(s.Layout)
	mediaHash := s.mediaHash(opts)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format, mediaHash))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
	}

	if !opts.Refresh && allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	// Render all formats
	rendered, err := Render(ctx, s, opts)
	if err != nil {
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format, mediaHash))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, s Scene, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, s, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
