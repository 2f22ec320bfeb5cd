package cli

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/justify/pkg/gallery"
	"github.com/matzehuels/justify/pkg/lightbox"
)

type recordingDecoder struct {
	mu   sync.Mutex
	urls []string
}

func (d *recordingDecoder) Decode(_ context.Context, url string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.urls = append(d.urls, url)
	return nil
}

func testPreview(t *testing.T) (*previewModel, *recordingDecoder) {
	t.Helper()
	g := gallery.New([]gallery.MediaItem{
		gallery.NewImage("a.jpg", "a-full.jpg", 1500, 1000, gallery.Caption{Title: "Spring", Line1: "Vogue"}),
		gallery.NewVideo("b.mp4", "b.jpg", 1080, 1920, gallery.Caption{}),
		gallery.NewImage("c.jpg", "", 800, 600, gallery.Caption{Title: "Solo"}),
	})
	dec := &recordingDecoder{}
	m := newPreviewModel(context.Background(), "Works", g, dec)
	t.Cleanup(m.viewer.Preloader().Wait)
	return m, dec
}

func press(m *previewModel, key tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(key)
	return cmd
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func keyRune(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }

func TestPreviewListNavigation(t *testing.T) {
	m, _ := testPreview(t)
	if !strings.Contains(m.View(), "Works") || !strings.Contains(m.View(), "[1/3]") {
		t.Errorf("list view:\n%s", m.View())
	}
	press(m, keyDown)
	press(m, keyDown)
	press(m, keyDown) // stays on the last item
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.cursor)
	}
	if m.viewer.State().IsOpen() {
		t.Error("list navigation should not open the viewer")
	}
}

func TestPreviewOpenAndWrap(t *testing.T) {
	m, _ := testPreview(t)

	press(m, keyEnter)
	if got := m.viewer.State().Index(); got != 0 {
		t.Fatalf("opened index = %d, want 0", got)
	}
	view := m.View()
	for _, want := range []string{"Spring", "Vogue", "1 / 3", "a-full.jpg"} {
		if !strings.Contains(view, want) {
			t.Errorf("open view missing %q:\n%s", want, view)
		}
	}

	press(m, keyLeft)
	if got := m.viewer.State().Index(); got != 2 {
		t.Errorf("prev from first = %d, want 2", got)
	}
	press(m, keyRight)
	press(m, keyRight)
	if got := m.viewer.State().Index(); got != 1 {
		t.Errorf("index = %d, want 1", got)
	}

	press(m, keyEsc)
	if m.viewer.State().IsOpen() {
		t.Fatal("esc should close the viewer")
	}
	if m.cursor != 1 {
		t.Errorf("list cursor after close = %d, want 1", m.cursor)
	}
}

func TestPreviewPreloadsNeighbours(t *testing.T) {
	m, dec := testPreview(t)
	press(m, keyEnter)
	m.viewer.Preloader().Wait()

	// The video neighbour is skipped; its poster is not a preload target.
	for _, u := range []string{"a-full.jpg", "c.jpg"} {
		if _, ok := m.viewer.Preloader().Cached(u); !ok {
			t.Errorf("%s not preloaded", u)
		}
	}
	if _, ok := m.viewer.Preloader().Cached("b.mp4"); ok {
		t.Error("video should not be preloaded")
	}
	if !strings.Contains(m.View(), "ready") {
		t.Errorf("preload status missing:\n%s", m.View())
	}
	dec.mu.Lock()
	defer dec.mu.Unlock()
	if len(dec.urls) == 0 {
		t.Error("decoder never called")
	}
}

func TestPreviewVideoControls(t *testing.T) {
	m, _ := testPreview(t)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	press(m, keyEnter)
	press(m, keyRight)
	if !m.viewer.View().IsVideo() {
		t.Fatal("item 1 should be a video")
	}
	if !strings.Contains(m.View(), lightbox.LabelPause) {
		t.Errorf("playing video should offer PAUSE:\n%s", m.View())
	}

	press(m, keySpace)
	if !m.viewer.Playback().Paused {
		t.Error("space should pause")
	}

	if cmd := press(m, keyRune('t')); cmd == nil {
		t.Error("showing controls should schedule the auto-hide")
	}
	if !m.viewer.Controls().Visible(now) {
		t.Error("controls should be visible after t")
	}
	if m.viewer.Controls().Visible(now.Add(lightbox.AutoHideDelay)) {
		t.Error("controls should hide after the delay")
	}

	// Moving to another item resets playback.
	press(m, keyRight)
	if m.viewer.Playback().Paused {
		t.Error("playback should reset on navigation")
	}
	if cmd := press(m, keyRune('t')); cmd != nil {
		t.Error("t on an image should do nothing")
	}
}

func TestPreviewQuit(t *testing.T) {
	m, _ := testPreview(t)
	cmd := press(m, keyRune('q'))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
}

func TestPreviewResizeDebounce(t *testing.T) {
	m, _ := testPreview(t)

	m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	if m.height != previewListHeight {
		t.Fatalf("height changed before settling: %d", m.height)
	}

	// A tick from the first resize is stale.
	m.Update(resizeMsg{gen: 1})
	if m.height != previewListHeight {
		t.Errorf("stale resize applied: %d", m.height)
	}
	m.Update(resizeMsg{gen: 2})
	if m.height != 14 {
		t.Errorf("height = %d, want 14", m.height)
	}
}
