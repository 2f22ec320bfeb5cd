package lightbox

import (
	"context"
	"time"

	"github.com/matzehuels/justify/pkg/gallery"
)

// Viewer owns a lightbox instance: its state, its preload cache and the
// controls of the video it may be showing. Every transition is followed by
// a render step that refreshes the view and schedules preloads.
//
// A Viewer is not safe for concurrent use; it models a single UI thread.
type Viewer struct {
	items    []gallery.MediaItem
	state    State
	view     View
	preload  *Preloader
	controls Controls
	playback Playback
	swipe    Swipe
}

// NewViewer returns a closed viewer over items that preloads with dec.
func NewViewer(items []gallery.MediaItem, dec Decoder) *Viewer {
	v := &Viewer{
		items:   items,
		state:   Closed(len(items)),
		preload: NewPreloader(dec),
	}
	v.view = Render(v.state, v.items)
	return v
}

// State returns the current state.
func (v *Viewer) State() State { return v.state }

// View returns the last rendered view.
func (v *Viewer) View() View { return v.view }

// Preloader returns the viewer's image cache.
func (v *Viewer) Preloader() *Preloader { return v.preload }

// Controls returns the video overlay model.
func (v *Viewer) Controls() *Controls { return &v.controls }

// Playback returns the state of the shown video.
func (v *Viewer) Playback() Playback { return v.playback }

// Open shows item i.
func (v *Viewer) Open(ctx context.Context, i int) View {
	return v.transition(ctx, v.state.Open(i))
}

// Dispatch applies a to the current state.
func (v *Viewer) Dispatch(ctx context.Context, a Action) View {
	return v.transition(ctx, Apply(v.state, a))
}

// Key handles a key press. Keys are ignored while closed.
func (v *Viewer) Key(ctx context.Context, key string) View {
	return v.Dispatch(ctx, KeyAction(key))
}

// TouchStart begins a swipe. onControls marks touches on the video area.
func (v *Viewer) TouchStart(x, y float64, onControls bool) {
	if !v.state.IsOpen() {
		return
	}
	v.swipe.Begin(x, y, onControls)
}

// TouchEnd completes a swipe and navigates if it qualifies.
func (v *Viewer) TouchEnd(ctx context.Context, x, y float64) View {
	if !v.state.IsOpen() {
		return v.view
	}
	return v.Dispatch(ctx, v.swipe.End(x, y))
}

// TogglePlay flips the shown video between playing and paused.
func (v *Viewer) TogglePlay() Playback {
	if v.view.IsVideo() {
		v.playback = v.playback.Toggle()
	}
	return v.playback
}

// SetDuration records the video duration once metadata is known.
func (v *Viewer) SetDuration(d time.Duration) {
	v.playback.Duration = d.Seconds()
}

// Seek moves the shown video to pointer x on a track at [left, left+width].
func (v *Viewer) Seek(x, left, width float64) Playback {
	if v.view.IsVideo() {
		v.playback = v.playback.SeekTo(x, left, width)
	}
	return v.playback
}

func (v *Viewer) transition(ctx context.Context, next State) View {
	prev := v.state
	v.state = next
	v.render(ctx, prev)
	return v.view
}

// render refreshes the view and performs the side effects of the new state.
func (v *Viewer) render(ctx context.Context, prev State) {
	v.view = Render(v.state, v.items)
	if !v.view.Open {
		v.playback = Playback{}
		v.controls.Hide()
		return
	}
	if prev.Index() != v.state.Index() {
		// Videos restart from the beginning and autoplay.
		v.playback = Playback{}
		v.controls.Hide()
	}
	if !v.view.IsVideo() {
		v.preload.Preload(ctx, v.view.Src)
	}
	v.preload.Around(ctx, v.items, v.state.Index())
}
