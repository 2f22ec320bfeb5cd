// Package cache stores computed layouts and rendered artifacts.
//
// Entries are content-addressed: keys hash everything that determines the
// value, so a stale entry is never read back and every backend may drop
// entries at will. Three backends implement [Cache]:
//
//   - [FileCache]: JSON entry files below a directory, used by the CLI
//   - [RedisCache]: a shared Redis instance, used by `justify serve`
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// Keys come from a [Keyer]; [DefaultKeyer] builds them and [ScopedKeyer]
// namespaces them.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Entry lifetimes.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
	TTLProbe    = 30 * 24 * time.Hour
)

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey addresses a layout computed from engine input with the
	// given hash.
	LayoutKey(inputHash string, opts LayoutKeyOpts) string
	// ArtifactKey addresses a rendered artifact of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
	// ProbeKey addresses probed image dimensions of a file version.
	ProbeKey(path string, size int64, modTime time.Time) string
}

// LayoutKeyOpts holds the engine configuration a layout depends on.
type LayoutKeyOpts struct {
	ContainerWidth  float64 `json:"container_width"`
	TargetRowHeight float64 `json:"target_row_height"`
	BoxSpacing      float64 `json:"box_spacing"`
}

// ArtifactKeyOpts holds the render options an artifact depends on.
type ArtifactKeyOpts struct {
	Format     string `json:"format"`
	Title      string `json:"title,omitempty"`
	Page       string `json:"page,omitempty"`
	Responsive bool   `json:"responsive,omitempty"`
	// Media hashes the item URLs, captions and any other render input
	// that layouts do not see.
	Media string `json:"media,omitempty"`
}

// DefaultKeyer builds keys as prefix:sha256(parts).
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(inputHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", inputHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// ProbeKey implements Keyer.
func (DefaultKeyer) ProbeKey(path string, size int64, modTime time.Time) string {
	return hashKey("probe", path, size, modTime.UnixNano())
}
