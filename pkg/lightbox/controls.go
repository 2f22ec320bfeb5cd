package lightbox

import "time"

// Timing of the touch control overlay.
const (
	AutoHideDelay = 2000 * time.Millisecond
	ClickGuard    = 700 * time.Millisecond
)

// Play button labels.
const (
	LabelPlay  = "PLAY"
	LabelPause = "PAUSE"
)

// Controls is the visibility model of the video control overlay on touch
// devices. Time is passed in so callers decide how it advances; a hidden
// deadline replaces a timer.
type Controls struct {
	visible   bool
	hideAt    time.Time
	lastTouch time.Time
}

// Visible reports whether the overlay shows at now.
func (c *Controls) Visible(now time.Time) bool {
	if !c.visible {
		return false
	}
	return c.hideAt.IsZero() || now.Before(c.hideAt)
}

// Deadline returns when the overlay will hide, if auto-hide is armed.
func (c *Controls) Deadline() (time.Time, bool) {
	return c.hideAt, c.visible && !c.hideAt.IsZero()
}

// Show makes the overlay visible and arms auto-hide.
func (c *Controls) Show(now time.Time) {
	c.visible = true
	c.hideAt = now.Add(AutoHideDelay)
}

// Hide hides the overlay and disarms auto-hide.
func (c *Controls) Hide() {
	c.visible = false
	c.hideAt = time.Time{}
}

// Tap toggles the overlay in response to a tap on the video.
func (c *Controls) Tap(now time.Time) {
	if c.Visible(now) {
		c.Hide()
		return
	}
	c.Show(now)
}

// TouchEnd records a touch on the video and toggles the overlay.
func (c *Controls) TouchEnd(now time.Time) {
	c.lastTouch = now
	c.Tap(now)
}

// Click handles a click on the video. Clicks that follow a touch within
// ClickGuard are the browser's synthetic echo and are ignored.
func (c *Controls) Click(now time.Time) bool {
	if !c.lastTouch.IsZero() && now.Sub(c.lastTouch) < ClickGuard {
		return false
	}
	c.Tap(now)
	return true
}

// Suspend keeps the overlay visible while a control is being pressed.
func (c *Controls) Suspend() {
	c.visible = true
	c.hideAt = time.Time{}
}

// Resume re-arms auto-hide once the control is released.
func (c *Controls) Resume(now time.Time) { c.Show(now) }

// Playback is the state of the video element behind the overlay.
// Position and Duration are in seconds.
type Playback struct {
	Paused   bool
	Position float64
	Duration float64
}

// Label returns the play button text.
func (p Playback) Label() string { return PlayLabel(p.Paused) }

// Toggle flips between playing and paused.
func (p Playback) Toggle() Playback {
	p.Paused = !p.Paused
	return p
}

// SeekTo moves the position for a pointer at x on a track spanning
// [left, left+width]. It is a no-op while the duration is unknown.
func (p Playback) SeekTo(x, left, width float64) Playback {
	ratio, ok := SeekRatio(x, left, width)
	if !ok || !(p.Duration > 0) {
		return p
	}
	p.Position = ratio * p.Duration
	return p
}

// Progress returns the played share in percent.
func (p Playback) Progress() float64 {
	if !(p.Duration > 0) {
		return 0
	}
	return p.Position / p.Duration * 100
}

// PlayLabel returns PLAY for a paused video and PAUSE otherwise.
func PlayLabel(paused bool) string {
	if paused {
		return LabelPlay
	}
	return LabelPause
}

// SeekRatio returns the clamped [0, 1] position of x on a track.
// It fails for a track without width.
func SeekRatio(x, left, width float64) (float64, bool) {
	if !(width > 0) {
		return 0, false
	}
	return min(1, max(0, (x-left)/width)), true
}
