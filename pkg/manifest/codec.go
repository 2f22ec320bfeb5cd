package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/justify/pkg/errors"
	"github.com/matzehuels/justify/pkg/gallery"
)

// Format is a manifest encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidManifest, "unsupported manifest extension: %q", filepath.Ext(path))
}

// Read decodes a manifest from r. Unknown keys are ignored.
//
// Read does not probe missing dimensions; use [Load] or [Manifest.Resolve]
// for that. Read does not close r.
func Read(r io.Reader, f Format) (*Manifest, error) {
	var m Manifest
	switch f {
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&m); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "decode toml")
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&m); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "decode json")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidManifest, "unknown manifest format %q", f)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Parse decodes a manifest held in memory.
func Parse(data []byte, f Format) (*Manifest, error) {
	return Read(bytes.NewReader(data), f)
}

// Load reads the manifest at path and probes the dimensions of items that
// lack them, relative to the manifest directory. Items that cannot be
// probed keep zero dimensions.
func Load(path string) (*Manifest, error) {
	m, err := Open(path)
	if err != nil {
		return nil, err
	}
	m.Resolve(filepath.Dir(path))
	return m, nil
}

// Open reads and validates the manifest at path without probing.
func Open(path string) (*Manifest, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	m, err := Read(file, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Validate checks every item for a known type and usable media URLs.
func (m *Manifest) Validate() error {
	for i, it := range m.Items {
		if _, err := gallery.ParseKind(it.Type); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidMedia, err, "item %d", i)
		}
		if err := errors.ValidateMediaURL(it.Src); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		for _, u := range []string{it.Full, it.Poster} {
			if u == "" {
				continue
			}
			if err := errors.ValidateMediaURL(u); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
		if it.W < 0 || it.H < 0 {
			return errors.New(errors.ErrCodeInvalidMedia, "item %d: negative dimensions %vx%v", i, it.W, it.H)
		}
	}
	return nil
}

// ProbeFunc reads the pixel dimensions of the image file at path.
type ProbeFunc func(path string) (w, h int, err error)

// Resolve probes the dimensions of local items that lack them.
// It returns the number of items it updated.
func (m *Manifest) Resolve(dir string) int {
	return m.ResolveWith(dir, Probe)
}

// ResolveWith is Resolve with a custom probe, e.g. one backed by a cache.
func (m *Manifest) ResolveWith(dir string, probe ProbeFunc) int {
	n := 0
	for _, i := range m.Missing() {
		it := &m.Items[i]
		src := it.Src
		if kind, _ := gallery.ParseKind(it.Type); kind == gallery.KindVideo {
			// Probe the poster frame; the video itself is never decoded.
			src = it.Poster
		}
		if src == "" || errors.IsRemote(src) {
			continue
		}
		w, h, err := probe(filepath.Join(dir, filepath.FromSlash(src)))
		if err != nil {
			continue
		}
		it.W, it.H = float64(w), float64(h)
		n++
	}
	return n
}

// Write encodes m to w.
func Write(w io.Writer, m *Manifest, f Format) error {
	switch f {
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(m); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	default:
		return errors.New(errors.ErrCodeInvalidManifest, "unknown manifest format %q", f)
	}
	return nil
}

// Save writes m to path in the format of its extension.
func Save(m *Manifest, path string) error {
	f, err := FormatOf(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(file, m, f); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
