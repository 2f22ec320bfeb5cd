package gallery

import (
	"fmt"
	"math"
)

// Kind discriminates the MediaItem variant.
type Kind int

const (
	KindImage Kind = iota
	KindVideo
)

// String returns the manifest spelling of k.
func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps a manifest type name to a Kind. The empty string is an image.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "", "image", "img":
		return KindImage, nil
	case "video":
		return KindVideo, nil
	}
	return 0, fmt.Errorf("unknown media type %q", s)
}

// Caption is the three-line caption attached to a media item.
type Caption struct {
	Title string `json:"title,omitempty"`
	Line1 string `json:"line1,omitempty"`
	Line2 string `json:"line2,omitempty"`
}

// IsZero reports whether the caption has no text.
func (c Caption) IsZero() bool {
	return c.Title == "" && c.Line1 == "" && c.Line2 == ""
}

// MediaItem is one gallery entry, either an image or a video.
//
// URL is the thumbnail for images and the playable source for videos. Full is
// the full-resolution image shown in the lightbox; when empty, URL is used.
type MediaItem struct {
	ID      string  `json:"id"`
	Kind    Kind    `json:"kind"`
	URL     string  `json:"url"`
	Full    string  `json:"full,omitempty"`
	Poster  string  `json:"poster,omitempty"`
	Width   float64 `json:"width,omitempty"`
	Height  float64 `json:"height,omitempty"`
	Caption Caption `json:"caption"`
}

// NewImage returns an image item.
func NewImage(url, full string, w, h float64, c Caption) MediaItem {
	return MediaItem{Kind: KindImage, URL: url, Full: full, Width: w, Height: h, Caption: c}
}

// NewVideo returns a video item.
func NewVideo(url, poster string, w, h float64, c Caption) MediaItem {
	return MediaItem{Kind: KindVideo, URL: url, Poster: poster, Width: w, Height: h, Caption: c}
}

// IsVideo reports whether m is a video.
func (m MediaItem) IsVideo() bool { return m.Kind == KindVideo }

// FullURL returns the URL to show at full size.
func (m MediaItem) FullURL() string {
	if m.Kind == KindImage && m.Full != "" {
		return m.Full
	}
	return m.URL
}

// AspectRatio returns Width / Height. A missing or invalid dimension counts as 1.
func (m MediaItem) AspectRatio() float64 {
	return dimension(m.Width) / dimension(m.Height)
}

// IsPortrait reports whether m is noticeably taller than wide.
func (m MediaItem) IsPortrait() bool {
	return IsPortrait(m.Width, m.Height)
}

// portraitRatio is the height/width ratio above which a video is portrait.
const portraitRatio = 1.15

// IsPortrait reports whether h/w exceeds 1.15. Unknown sizes are landscape.
func IsPortrait(w, h float64) bool {
	if !(w > 0) || !(h > 0) {
		return false
	}
	return h/w > portraitRatio
}

func dimension(v float64) float64 {
	if !(v > 0) || math.IsInf(v, 0) {
		return 1
	}
	return v
}
