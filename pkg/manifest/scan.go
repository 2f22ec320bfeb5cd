package manifest

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/justify/pkg/errors"
)

// ScanOptions configures [Scan].
type ScanOptions struct {
	// Title is written as the manifest title.
	Title string
	// GroupByDir captions each item with its directory name, so items of
	// one directory form one caption group.
	GroupByDir bool
	// Concurrency bounds the number of files probed at once.
	// Zero means GOMAXPROCS.
	Concurrency int
}

// Scan builds a manifest from the media files below dir. Items are ordered
// by slash-separated path relative to dir. A video gets the image next to it
// with the same base name as its poster; such posters are not listed as
// items of their own. Hidden files and directories are skipped.
func Scan(ctx context.Context, dir string, opts ScanOptions) (*Manifest, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scan %s", dir)
		}
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidPath, "scan %s: not a directory", dir)
	}

	files, err := walkMedia(dir)
	if err != nil {
		return nil, err
	}
	items := collect(files, opts.GroupByDir)

	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := range items {
		it := &items[i]
		src := it.Src
		if it.Type == "video" {
			src = it.Poster
		}
		if src == "" {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			w, h, err := Probe(filepath.Join(dir, filepath.FromSlash(src)))
			if err != nil {
				return fmt.Errorf("%s: %w", src, err)
			}
			it.W, it.H = float64(w), float64(h)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Manifest{Title: opts.Title, Items: items}, nil
}

// walkMedia returns the slash-separated relative paths of media files
// below dir, sorted.
func walkMedia(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != dir && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := kindOfFile(d.Name()); !ok {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	slices.Sort(files)
	return files, nil
}

// collect turns sorted media paths into manifest items, pairing videos with
// their posters.
func collect(files []string, groupByDir bool) []Item {
	posters := make(map[string]string)
	for _, f := range files {
		if typ, _ := kindOfFile(f); typ == "image" {
			stem := strings.TrimSuffix(f, path.Ext(f))
			if _, seen := posters[stem]; !seen {
				posters[stem] = f
			}
		}
	}

	used := make(map[string]bool)
	for _, f := range files {
		if typ, _ := kindOfFile(f); typ == "video" {
			if p, ok := posters[strings.TrimSuffix(f, path.Ext(f))]; ok {
				used[p] = true
			}
		}
	}

	var items []Item
	for _, f := range files {
		if used[f] {
			continue
		}
		typ, _ := kindOfFile(f)
		it := Item{Src: f}
		if typ == "video" {
			it.Type = typ
			it.Poster = posters[strings.TrimSuffix(f, path.Ext(f))]
		}
		if groupByDir {
			if d := path.Dir(f); d != "." {
				it.Title = path.Base(d)
			}
		}
		items = append(items, it)
	}
	return items
}
