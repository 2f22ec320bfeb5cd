package errors

import (
	"math"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/matzehuels/justify/pkg/justified"
)

// MaxItems bounds the number of items accepted by one layout request.
const MaxItems = 10000

// ValidateItems checks engine input for the preview server and the CLI.
// The engine itself accepts anything; callers reject what it would turn
// into degenerate boxes.
//
// Validation rules:
//   - At most MaxItems items
//   - Every aspect ratio is finite and not negative
func ValidateItems(items []justified.Item) error {
	if len(items) > MaxItems {
		return New(ErrCodeInvalidInput, "too many items (max %d)", MaxItems)
	}
	for i, it := range items {
		r := it.AspectRatio
		if math.IsNaN(r) || math.IsInf(r, 0) || r < 0 {
			return New(ErrCodeInvalidAspectRatio, "item %d: aspect ratio must be finite and non-negative, got %v", i, r)
		}
	}
	return nil
}

// ValidateConfig checks an engine configuration.
func ValidateConfig(cfg justified.Config) error {
	if err := cfg.Validate(); err != nil {
		return Wrap(ErrCodeInvalidConfig, err, "invalid layout config")
	}
	return nil
}

// ValidateManifestFilename validates a manifest filename.
// It must be a simple basename ending in .toml or .json.
func ValidateManifestFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidManifest, "manifest filename cannot be empty")
	}

	// Must be a simple filename, not a path
	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidManifest, "manifest filename cannot contain path separators")
	}

	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidManifest, "manifest filename cannot be a hidden file")
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml", ".json":
		return nil
	}
	return New(ErrCodeInvalidManifest, "unsupported manifest extension: %q", filepath.Ext(filename))
}

// ValidatePath validates a media path relative to the manifest directory.
// It keeps the preview server from serving files outside that directory.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	for _, seg := range strings.Split(path, "/") {
		if seg == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateMediaURL validates the src, full or poster of a manifest item.
// Remote URLs must use http or https; anything else must be a valid
// relative path.
func ValidateMediaURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidMedia, "media URL cannot be empty")
	}
	if IsRemote(rawURL) {
		return nil
	}
	if i := strings.IndexAny(rawURL, ":/"); (i >= 0 && rawURL[i] == ':') || strings.HasPrefix(rawURL, "//") {
		return New(ErrCodeInvalidMedia, "media URL must use http or https scheme: %q", rawURL)
	}
	if err := ValidatePath(rawURL); err != nil {
		return Wrap(ErrCodeInvalidMedia, err, "invalid media path %q", rawURL)
	}
	return nil
}

// IsRemote reports whether rawURL is an http or https URL.
func IsRemote(rawURL string) bool {
	return strings.HasPrefix(rawURL, "http://") || strings.HasPrefix(rawURL, "https://")
}
