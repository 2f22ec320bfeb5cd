package manifest

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/justify/pkg/errors"
	"github.com/matzehuels/justify/pkg/gallery"
	"github.com/matzehuels/justify/pkg/justified"
)

const sampleTOML = `
title = "Works"
page  = "works.html"
theme = "dark" # unknown keys are ignored

[layout]
containerWidth = 1200

[[breakpoints]]
maxWidth   = 600
rowHeight  = 150
boxSpacing = 6

[[nav]]
href  = "works.html"
label = "Works"

[[items]]
src   = "thumbs/a.jpg"
full  = "full/a.jpg"
w     = 1600
h     = 1067
title = "Harbour"
line1 = "2024"
rating = 5

[[items]]
type   = "video"
src    = "clips/b.mp4"
poster = "clips/b.jpg"
w      = 1080
h      = 1920
`

func TestReadTOML(t *testing.T) {
	m, err := Parse([]byte(sampleTOML), FormatTOML)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if m.Title != "Works" || m.Page != "works.html" {
		t.Errorf("title/page = %q/%q", m.Title, m.Page)
	}
	if m.Layout.ContainerWidth == nil || *m.Layout.ContainerWidth != 1200 || m.Layout.BoxSpacing != nil {
		t.Errorf("layout overrides = %+v", m.Layout)
	}

	wantItems := []Item{
		{Src: "thumbs/a.jpg", Full: "full/a.jpg", W: 1600, H: 1067, Title: "Harbour", Line1: "2024"},
		{Type: "video", Src: "clips/b.mp4", Poster: "clips/b.jpg", W: 1080, H: 1920},
	}
	if diff := cmp.Diff(wantItems, m.Items); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}

	bps := m.ResponsiveBreakpoints()
	if len(bps) != 1 || bps[0].RowHeight != 150 {
		t.Errorf("breakpoints = %+v", bps)
	}
	if nav := m.NavLinks(); len(nav) != 1 || nav[0].Href != "works.html" {
		t.Errorf("nav = %+v", nav)
	}
}

func TestReadJSON(t *testing.T) {
	const doc = `{"items":[{"src":"a.jpg","w":3,"h":2,"extra":true},{"type":"video","src":"b.mp4"}]}`
	m, err := Parse([]byte(doc), FormatJSON)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(m.Items) != 2 || m.Items[0].W != 3 || m.Items[1].Type != "video" {
		t.Errorf("items = %+v", m.Items)
	}

	if got := m.ResponsiveBreakpoints(); len(got) != len(gallery.DefaultBreakpoints()) {
		t.Errorf("missing breakpoints should default, got %+v", got)
	}
	if got := m.NavLinks(); len(got) != len(gallery.DefaultNav()) {
		t.Errorf("missing nav should default, got %+v", got)
	}
	if diff := cmp.Diff([]int{1}, m.Missing()); diff != "" {
		t.Errorf("Missing() mismatch:\n%s", diff)
	}
}

func TestReadInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		f    Format
		code errors.Code
	}{
		{"malformed toml", "[[items]\nsrc=", FormatTOML, errors.ErrCodeInvalidManifest},
		{"malformed json", "{", FormatJSON, errors.ErrCodeInvalidManifest},
		{"unknown type", `{"items":[{"type":"audio","src":"a.mp3"}]}`, FormatJSON, errors.ErrCodeInvalidMedia},
		{"missing src", `{"items":[{"w":1,"h":1}]}`, FormatJSON, errors.ErrCodeInvalidMedia},
		{"bad scheme", `{"items":[{"src":"javascript:alert(1)"}]}`, FormatJSON, errors.ErrCodeInvalidMedia},
		{"traversal poster", `{"items":[{"type":"video","src":"a.mp4","poster":"../p.jpg"}]}`, FormatJSON, errors.ErrCodeInvalidMedia},
		{"negative size", `{"items":[{"src":"a.jpg","w":-3,"h":2}]}`, FormatJSON, errors.ErrCodeInvalidMedia},
		{"unknown format", "{}", Format("yaml"), errors.ErrCodeInvalidManifest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), tt.f)
			if !errors.Is(err, tt.code) {
				t.Errorf("Parse() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestMedia(t *testing.T) {
	m, err := Parse([]byte(sampleTOML), FormatTOML)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	g, err := m.Gallery()
	if err != nil {
		t.Fatalf("Gallery() error: %v", err)
	}
	if g.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", g.Len())
	}

	img, vid := g.Item(0), g.Item(1)
	if img.Kind != gallery.KindImage || img.FullURL() != "full/a.jpg" {
		t.Errorf("image item = %+v", img)
	}
	if !vid.IsVideo() || vid.Poster != "clips/b.jpg" || !vid.IsPortrait() {
		t.Errorf("video item = %+v", vid)
	}
	if img.ID != ItemID("thumbs/a.jpg") || img.ID == vid.ID {
		t.Errorf("IDs = %q, %q", img.ID, vid.ID)
	}

	res := g.Layout(m.Layout.Apply(justified.DefaultConfig()))
	if len(res.Boxes) != 2 {
		t.Errorf("Layout() boxes = %d, want 2", len(res.Boxes))
	}
}

func TestItemIDStable(t *testing.T) {
	a, b := ItemID("x/a.jpg"), ItemID("x/a.jpg")
	if a != b {
		t.Errorf("ItemID not stable: %s != %s", a, b)
	}
	if ItemID("x/b.jpg") == a {
		t.Error("different URLs should get different IDs")
	}
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadProbesMissing(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "img", "a.png"), 30, 20)
	writePNG(t, filepath.Join(dir, "img", "poster.png"), 9, 16)
	writeFile(t, filepath.Join(dir, "gallery.toml"), `
[[items]]
src = "img/a.png"

[[items]]
type = "video"
src = "clip.mp4"
poster = "img/poster.png"

[[items]]
src = "img/missing.png"

[[items]]
src = "https://cdn.example.com/remote.jpg"
`)

	m, err := Load(filepath.Join(dir, "gallery.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	got := make([][2]float64, len(m.Items))
	for i, it := range m.Items {
		got[i] = [2]float64{it.W, it.H}
	}
	want := [][2]float64{{30, 20}, {9, 16}, {0, 0}, {0, 0}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("dimensions mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveWith(t *testing.T) {
	m := &Manifest{Items: []Item{
		{Src: "a.jpg"},
		{Src: "b.jpg", W: 10, H: 10},
		{Type: "video", Src: "c.mp4"},
		{Src: "bad.jpg"},
	}}
	var probed []string
	probe := func(path string) (int, int, error) {
		probed = append(probed, filepath.ToSlash(path))
		if strings.HasSuffix(path, "bad.jpg") {
			return 0, 0, errors.New(errors.ErrCodeInvalidMedia, "corrupt")
		}
		return 4, 3, nil
	}

	if n := m.ResolveWith("root", probe); n != 1 {
		t.Errorf("ResolveWith() = %d, want 1", n)
	}
	if diff := cmp.Diff([]string{"root/a.jpg", "root/bad.jpg"}, probed); diff != "" {
		t.Errorf("probed paths mismatch (-want +got):\n%s", diff)
	}
	if m.Items[0].W != 4 || m.Items[0].H != 3 {
		t.Errorf("item 0 = %vx%v, want 4x3", m.Items[0].W, m.Items[0].H)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) = %v, want FILE_NOT_FOUND", err)
	}
	if _, err := Load("gallery.yaml"); !errors.Is(err, errors.ErrCodeInvalidManifest) {
		t.Errorf("Load(yaml) = %v, want INVALID_MANIFEST", err)
	}
}

func TestProbe(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 7, 5)
	writeFile(t, filepath.Join(dir, "bad.jpg"), "not an image")

	w, h, err := Probe(filepath.Join(dir, "a.png"))
	if err != nil || w != 7 || h != 5 {
		t.Errorf("Probe(png) = %d, %d, %v", w, h, err)
	}
	if _, _, err := Probe(filepath.Join(dir, "bad.jpg")); !errors.Is(err, errors.ErrCodeInvalidMedia) {
		t.Errorf("Probe(bad) = %v, want INVALID_MEDIA", err)
	}
	if _, _, err := Probe(filepath.Join(dir, "none.png")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Probe(missing) = %v, want FILE_NOT_FOUND", err)
	}
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "beach", "2.png"), 40, 30)
	writePNG(t, filepath.Join(dir, "beach", "1.png"), 30, 40)
	writeFile(t, filepath.Join(dir, "city", "clip.mp4"), "raw video bytes")
	writePNG(t, filepath.Join(dir, "city", "clip.png"), 9, 16)
	writePNG(t, filepath.Join(dir, ".cache", "x.png"), 1, 1)
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	m, err := Scan(context.Background(), dir, ScanOptions{Title: "Trips", GroupByDir: true, Concurrency: 2})
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}

	want := &Manifest{
		Title: "Trips",
		Items: []Item{
			{Src: "beach/1.png", W: 30, H: 40, Title: "beach"},
			{Src: "beach/2.png", W: 40, H: 30, Title: "beach"},
			{Type: "video", Src: "city/clip.mp4", Poster: "city/clip.png", W: 9, H: 16, Title: "city"},
		},
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("Scan() mismatch (-want +got):\n%s", diff)
	}

	g, err := m.Gallery()
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Groups()) != 2 {
		t.Errorf("groups = %d, want 2", len(g.Groups()))
	}
}

func TestScanErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "broken.png"), "garbage")

	if _, err := Scan(context.Background(), dir, ScanOptions{}); !errors.Is(err, errors.ErrCodeInvalidMedia) {
		t.Errorf("Scan(broken) = %v, want INVALID_MEDIA", err)
	}
	if _, err := Scan(context.Background(), filepath.Join(dir, "broken.png"), ScanOptions{}); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("Scan(file) = %v, want INVALID_PATH", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	writePNG(t, filepath.Join(dir, "ok", "a.png"), 2, 2)
	if _, err := Scan(ctx, filepath.Join(dir, "ok"), ScanOptions{}); err == nil {
		t.Error("Scan() with cancelled context should fail")
	}
}

func TestSaveLoad(t *testing.T) {
	m, err := Parse([]byte(sampleTOML), FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"out.toml", "out.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := Save(m, path); err != nil {
				t.Fatalf("Save() error: %v", err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(data), "clips/b.mp4") {
				t.Errorf("saved manifest misses items:\n%s", data)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if diff := cmp.Diff(m, got); diff != "" {
				t.Errorf("Save/Load mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
