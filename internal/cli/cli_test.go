package cli

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/custom-cache", appName); dir != want {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, want)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to html", "", []string{"html"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "html,json, dot", []string{"html", "json", "dot"}},
		{"empty entries dropped", "png,,pdf,", []string{"png", "pdf"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, parseFormats(tt.input)); diff != "" {
				t.Errorf("parseFormats(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "gallery.toml", "gallery"},
		{"", "shows/2024.json", "shows/2024"},
		{"out/site.html", "gallery.toml", "out/site"},
		{"out/site", "gallery.toml", "out/site"},
		{"sheet.v2", "gallery.toml", "sheet.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	got := outputPaths([]string{"html"}, "site/index.html", "gallery.toml")
	if got["html"] != "site/index.html" {
		t.Errorf("single format path = %q", got["html"])
	}

	got = outputPaths([]string{"html", "json"}, "", "shows/gallery.toml")
	want := map[string]string{"html": "shows/gallery.html", "json": "shows/gallery.json"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("outputPaths mismatch (-want +got):\n%s", diff)
	}
}

func TestPlural(t *testing.T) {
	if got := plural(1, "row"); got != "1 row" {
		t.Errorf("plural(1) = %q", got)
	}
	if got := plural(3, "item"); got != "3 items" {
		t.Errorf("plural(3) = %q", got)
	}
}

// =============================================================================
// Command tests
// =============================================================================

// testCLI returns a CLI writing to a buffer, with the cache under a temp dir.
func testCLI(t *testing.T) (*CLI, *bytes.Buffer) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	var out bytes.Buffer
	c := New(&out, log.WarnLevel)
	c.out = &out
	return c, &out
}

func run(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root.Execute()
}

func writeGallery(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "spring", "a.png"), 300, 200)
	writePNG(t, filepath.Join(dir, "spring", "b.png"), 200, 300)
	manifest := `
title = "Works"

[[items]]
src = "spring/a.png"
title = "Spring"

[[items]]
src = "spring/b.png"
title = "Spring"

[[items]]
src = "c.jpg"
w = 1600
h = 900
`
	path := filepath.Join(dir, "gallery.toml")
	if err := os.WriteFile(path, []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
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
	if err := png.Encode(f, image.NewGray(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
}

func TestLayoutCommand(t *testing.T) {
	c, out := testCLI(t)
	src := writeGallery(t)

	if err := run(t, c, "layout", src, "--width", "600", "--row-height", "200"); err != nil {
		t.Fatalf("layout error: %v", err)
	}
	data, err := os.ReadFile(strings.TrimSuffix(src, ".toml") + ".layout.json")
	if err != nil {
		t.Fatalf("layout output: %v", err)
	}
	for _, want := range []string{`"boxes"`, `"containerHeight"`, `"targetRowHeight": 200`, `"rows"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("layout.json missing %s:\n%s", want, data)
		}
	}
	if !strings.Contains(out.String(), "3 items") {
		t.Errorf("stats line missing from output:\n%s", out.String())
	}
}

func TestRenderCommand(t *testing.T) {
	c, _ := testCLI(t)
	src := writeGallery(t)
	base := filepath.Join(filepath.Dir(src), "site", "works")

	if err := run(t, c, "render", src, "-f", "html,json,dot", "-o", base); err != nil {
		t.Fatalf("render error: %v", err)
	}
	for _, ext := range []string{".html", ".json", ".dot"} {
		if _, err := os.Stat(base + ext); err != nil {
			t.Errorf("missing %s output: %v", ext, err)
		}
	}
	page, _ := os.ReadFile(base + ".html")
	if !strings.Contains(string(page), "<title>Works</title>") {
		t.Error("page title missing")
	}
}

func TestRenderCommandInvalidFormat(t *testing.T) {
	c, _ := testCLI(t)
	if err := run(t, c, "render", writeGallery(t), "-f", "gif"); err == nil {
		t.Error("render -f gif should fail")
	}
}

func TestRowsCommandDOT(t *testing.T) {
	c, _ := testCLI(t)
	src := writeGallery(t)
	out := filepath.Join(t.TempDir(), "rows.dot")

	if err := run(t, c, "rows", src, "-f", "dot", "-o", out, "--width", "600", "--row-height", "200"); err != nil {
		t.Fatalf("rows error: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "cluster_0") || !strings.Contains(string(data), "item2") {
		t.Errorf("unexpected DOT:\n%s", data)
	}
}

func TestScanCommand(t *testing.T) {
	c, _ := testCLI(t)
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "spring", "a.png"), 300, 200)
	writePNG(t, filepath.Join(dir, "summer", "b.png"), 200, 300)

	if err := run(t, c, "scan", dir, "--group", "--title", "Works"); err != nil {
		t.Fatalf("scan error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "gallery.toml"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`title = "Works"`, `src = "spring/a.png"`, `src = "summer/b.png"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("manifest missing %s:\n%s", want, data)
		}
	}

	// A second scan refuses to overwrite.
	if err := run(t, c, "scan", dir); err == nil {
		t.Error("scan should not overwrite without --force")
	}
	if err := run(t, c, "scan", dir, "--force"); err != nil {
		t.Errorf("scan --force error: %v", err)
	}
}

func TestCachePathCommand(t *testing.T) {
	c, out := testCLI(t)
	if err := run(t, c, "cache", "path"); err != nil {
		t.Fatal(err)
	}
	want, _ := cacheDir()
	if strings.TrimSpace(out.String()) != want {
		t.Errorf("cache path = %q, want %q", out.String(), want)
	}
}

func TestCacheClearCommand(t *testing.T) {
	c, out := testCLI(t)
	src := writeGallery(t)
	if err := run(t, c, "layout", src); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := run(t, c, "cache", "clear"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Cleared") {
		t.Errorf("cache clear output = %q", out.String())
	}
}
