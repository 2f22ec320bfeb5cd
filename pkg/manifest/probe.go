package manifest

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/webp"

	"github.com/matzehuels/justify/pkg/errors"
)

// Probe returns the pixel dimensions of the image at path. Only the header
// is read; JPEG, PNG, GIF and WebP are recognised.
func Probe(path string) (w, h int, err error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, 0, errors.Wrap(errors.ErrCodeFileNotFound, err, "probe %s", path)
		}
		return 0, 0, fmt.Errorf("probe %s: %w", path, err)
	}
	defer f.Close()
	return ProbeReader(f)
}

// ProbeReader is [Probe] over an open stream.
func ProbeReader(r io.Reader) (w, h int, err error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeInvalidMedia, err, "decode image header")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, errors.New(errors.ErrCodeInvalidMedia, "%s image without dimensions", format)
	}
	return cfg.Width, cfg.Height, nil
}

// Media file extensions recognised by Scan.
var (
	imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true}
	videoExts = map[string]bool{".mp4": true, ".webm": true, ".mov": true, ".m4v": true}
)

// kindOfFile classifies a file by extension. ok is false for non-media.
func kindOfFile(name string) (typ string, ok bool) {
	ext := strings.ToLower(filepath.Ext(name))
	switch {
	case imageExts[ext]:
		return "image", true
	case videoExts[ext]:
		return "video", true
	}
	return "", false
}
