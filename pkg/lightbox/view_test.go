package lightbox

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/justify/pkg/gallery"
)

func TestRenderClosed(t *testing.T) {
	v := Render(Closed(5), media())
	if v.Open || v.AriaHidden != "true" || v.Index != -1 {
		t.Errorf("Render(closed) = %+v", v)
	}
}

func TestRenderImage(t *testing.T) {
	items := media()
	got := Render(Closed(len(items)).Open(0), items)
	want := View{
		Open:       true,
		AriaHidden: "false",
		Index:      0,
		Count:      5,
		Kind:       gallery.KindImage,
		Src:        "f0.jpg",
		Title:      "Zero",
		Subtitle:   "L1 / L2",
		Counter:    "1 / 5",
		Preload:    []string{"t1.jpg", "f4.jpg", "f3.jpg"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderVideo(t *testing.T) {
	items := media()
	v := Render(Closed(len(items)).Open(2), items)
	if !v.IsVideo() || v.Src != "v2.mp4" || v.Poster != "p2.jpg" {
		t.Errorf("Render(video) = %+v", v)
	}
	if !v.Portrait || !v.Loop {
		t.Errorf("portrait=%v loop=%v, want both true", v.Portrait, v.Loop)
	}
	if v.Counter != "3 / 5" {
		t.Errorf("Counter = %q, want 3 / 5", v.Counter)
	}
}

func TestSubtitle(t *testing.T) {
	tests := []struct {
		c    gallery.Caption
		want string
	}{
		{gallery.Caption{Line1: "a", Line2: "b"}, "a / b"},
		{gallery.Caption{Line1: "a"}, "a"},
		{gallery.Caption{Line2: "b"}, "b"},
		{gallery.Caption{Title: "t"}, ""},
	}
	for _, tt := range tests {
		if got := Subtitle(tt.c); got != tt.want {
			t.Errorf("Subtitle(%+v) = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestControlsAutoHide(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	var c Controls

	if c.Visible(t0) {
		t.Fatal("controls start hidden")
	}
	c.TouchEnd(t0)
	if !c.Visible(t0.Add(1999 * time.Millisecond)) {
		t.Error("controls should stay visible before the deadline")
	}
	if c.Visible(t0.Add(AutoHideDelay)) {
		t.Error("controls should hide at the deadline")
	}

	// The synthetic click right after the touch is ignored.
	if c.Click(t0.Add(300 * time.Millisecond)) {
		t.Error("click within the guard should be ignored")
	}
	if !c.Click(t0.Add(ClickGuard)) {
		t.Error("click after the guard should be handled")
	}
	if c.Visible(t0.Add(ClickGuard)) {
		t.Error("handled click on visible controls should hide them")
	}

	c.Suspend()
	if !c.Visible(t0.Add(time.Hour)) {
		t.Error("suspended controls never auto-hide")
	}
	if _, armed := c.Deadline(); armed {
		t.Error("suspend should disarm the deadline")
	}
	c.Resume(t0)
	if d, armed := c.Deadline(); !armed || !d.Equal(t0.Add(AutoHideDelay)) {
		t.Errorf("Deadline() = %v, %v", d, armed)
	}
}

func TestSeek(t *testing.T) {
	tests := []struct {
		x, left, width float64
		want           float64
		ok             bool
	}{
		{150, 100, 200, 0.25, true},
		{50, 100, 200, 0, true},
		{400, 100, 200, 1, true},
		{10, 0, 0, 0, false},
	}
	for _, tt := range tests {
		got, ok := SeekRatio(tt.x, tt.left, tt.width)
		if got != tt.want || ok != tt.ok {
			t.Errorf("SeekRatio(%v, %v, %v) = %v, %v; want %v, %v", tt.x, tt.left, tt.width, got, ok, tt.want, tt.ok)
		}
	}

	p := Playback{Duration: 40}.SeekTo(150, 100, 200)
	if p.Position != 10 || p.Progress() != 25 {
		t.Errorf("SeekTo() = %+v, progress %v", p, p.Progress())
	}
	if p := (Playback{}).SeekTo(150, 100, 200); p.Position != 0 {
		t.Error("seek without duration should be a no-op")
	}
}

func TestPlayLabel(t *testing.T) {
	if PlayLabel(true) != "PLAY" || PlayLabel(false) != "PAUSE" {
		t.Error("PlayLabel() labels wrong")
	}
	p := Playback{}
	if p.Label() != "PAUSE" || p.Toggle().Label() != "PLAY" {
		t.Error("Toggle() should flip the label")
	}
}

func TestViewer(t *testing.T) {
	ctx := context.Background()
	items := media()
	dec := &countingDecoder{}
	v := NewViewer(items, dec)
	defer v.Preloader().Wait()

	if got := v.Key(ctx, "ArrowRight"); got.Open {
		t.Fatal("keys must not open a closed viewer")
	}

	view := v.Open(ctx, 0)
	if !view.Open || view.Src != "f0.jpg" {
		t.Fatalf("Open(0) = %+v", view)
	}
	if _, ok := v.Preloader().Cached("f0.jpg"); !ok {
		t.Error("shown image should be preloaded")
	}
	if _, ok := v.Preloader().Cached("f4.jpg"); !ok {
		t.Error("neighbour should be preloaded")
	}

	view = v.Key(ctx, "ArrowLeft")
	if view.Index != 4 {
		t.Errorf("ArrowLeft from 0 = %d, want 4", view.Index)
	}

	v.TouchStart(300, 200, false)
	view = v.TouchEnd(ctx, 200, 210)
	if view.Index != 0 {
		t.Errorf("left swipe from 4 = %d, want 0", view.Index)
	}

	view = v.Dispatch(ctx, ActionNext)
	view = v.Dispatch(ctx, ActionNext)
	if !view.IsVideo() {
		t.Fatalf("index 2 should be the video: %+v", view)
	}
	if _, ok := v.Preloader().Cached("v2.mp4"); ok {
		t.Error("videos are never preloaded")
	}

	v.SetDuration(20 * time.Second)
	if p := v.Seek(200, 100, 100); p.Position != 20 {
		t.Errorf("Seek() position = %v, want 20", p.Position)
	}
	if p := v.TogglePlay(); !p.Paused {
		t.Error("TogglePlay() should pause a playing video")
	}

	view = v.Dispatch(ctx, ActionNext)
	if v.Playback() != (Playback{}) {
		t.Errorf("playback should reset when the item changes: %+v", v.Playback())
	}

	view = v.Key(ctx, "Escape")
	if view.Open || v.State().IsOpen() {
		t.Error("Escape should close the viewer")
	}
}
