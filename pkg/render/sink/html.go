package sink

import (
	"bytes"
	"embed"
	"html/template"
	"strconv"
	"strings"

	"github.com/matzehuels/justify/pkg/buildinfo"
	"github.com/matzehuels/justify/pkg/errors"
	"github.com/matzehuels/justify/pkg/gallery"
	"github.com/matzehuels/justify/pkg/justified"
	"github.com/matzehuels/justify/pkg/lightbox"
)

//go:embed assets/*.tmpl
var templateFS embed.FS

//go:embed assets/gallery.css
var galleryCSS string

//go:embed assets/gallery.js
var galleryJS string

var pageTemplates = template.Must(template.New("").Funcs(template.FuncMap{
	"px": px,
}).ParseFS(templateFS, "assets/*.tmpl"))

// HTMLOption configures the gallery and lightbox pages.
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	title          string
	nav            []gallery.NavItem
	config         justified.Config
	breakpoints    gallery.Breakpoints
	responsive     bool
	layoutEndpoint string
	mediaPrefix    string
	viewBase       string
	home           string
	generator      string
}

// WithTitle sets the page title and heading.
func WithTitle(title string) HTMLOption {
	return func(r *htmlRenderer) { r.title = title }
}

// WithNav adds the top navigation, already resolved against the current page.
func WithNav(items []gallery.NavItem) HTMLOption {
	return func(r *htmlRenderer) { r.nav = items }
}

// WithConfig records the config the layout was computed with. The page
// script reuses its row height and spacing when it repacks on resize.
func WithConfig(cfg justified.Config) HTMLOption {
	return func(r *htmlRenderer) { r.config = cfg }
}

// WithResponsive makes the page repack on resize using the breakpoint table.
func WithResponsive(bps gallery.Breakpoints) HTMLOption {
	return func(r *htmlRenderer) {
		r.responsive = true
		r.breakpoints = bps
	}
}

// WithLayoutEndpoint makes the page fetch new boxes from endpoint on resize
// instead of packing them in the browser. The endpoint receives width and
// viewport query parameters.
func WithLayoutEndpoint(endpoint string) HTMLOption {
	return func(r *htmlRenderer) { r.layoutEndpoint = endpoint }
}

// WithMediaPrefix is prepended to relative media URLs, e.g. "/media/".
func WithMediaPrefix(prefix string) HTMLOption {
	return func(r *htmlRenderer) { r.mediaPrefix = prefix }
}

// WithViewBase links tiles and lightbox arrows to server-rendered viewer
// pages at base+index. Without it they link to fragments.
func WithViewBase(base string) HTMLOption {
	return func(r *htmlRenderer) { r.viewBase = base }
}

// WithHome sets the lightbox close link on viewer pages. Defaults to "/".
func WithHome(href string) HTMLOption {
	return func(r *htmlRenderer) { r.home = href }
}

// WithGenerator overrides the generator meta tag.
func WithGenerator(s string) HTMLOption {
	return func(r *htmlRenderer) { r.generator = s }
}

func newHTMLRenderer(opts []HTMLOption) htmlRenderer {
	r := htmlRenderer{config: justified.DefaultConfig(), home: "/", generator: buildinfo.Generator()}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

type pageData struct {
	Title     string
	Generator string
	CSS       template.CSS
	Script    template.JS
	Nav       []gallery.NavItem
	Height    float64
	Boxes     []boxData
	Lightbox  lightboxData
	Data      clientData
}

type boxData struct {
	Index   int
	Box     justified.Box
	Video   bool
	Src     string
	Poster  string
	Alt     string
	Href    string
	Group   int
	Head    bool
	Caption gallery.CaptionParts
}

type lightboxData struct {
	View      lightbox.View
	Src       string
	Poster    string
	Preload   []string
	PlayLabel string
	PrevHref  string
	NextHref  string
	CloseHref string
}

// clientData is embedded as JSON for the page script.
type clientData struct {
	Items            []justified.Item    `json:"items"`
	Config           justified.Config    `json:"config"`
	Responsive       bool                `json:"responsive"`
	Breakpoints      gallery.Breakpoints `json:"breakpoints,omitempty"`
	LayoutEndpoint   string              `json:"layoutEndpoint,omitempty"`
	Media            []clientMedia       `json:"media"`
	DebounceMs       int64               `json:"debounceMs"`
	AutoHideMs       int64               `json:"autoHideMs"`
	ClickGuardMs     int64               `json:"clickGuardMs"`
	SwipeMinDistance float64             `json:"swipeMinDistance"`
	SwipeMaxVertical float64             `json:"swipeMaxVertical"`
	LabelPlay        string              `json:"labelPlay"`
	LabelPause       string              `json:"labelPause"`
}

type clientMedia struct {
	Video    bool   `json:"video,omitempty"`
	Src      string `json:"src"`
	Poster   string `json:"poster,omitempty"`
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	Portrait bool   `json:"portrait,omitempty"`
}

// RenderHTML renders the gallery page for g laid out as res.
// res.Boxes must have one entry per gallery item.
func RenderHTML(g *gallery.Gallery, res justified.Result, opts ...HTMLOption) ([]byte, error) {
	if len(res.Boxes) != g.Len() {
		return nil, errors.New(errors.ErrCodeInternal, "layout has %d boxes for %d items", len(res.Boxes), g.Len())
	}
	r := newHTMLRenderer(opts)

	data := pageData{
		Title:     r.title,
		Generator: r.generator,
		CSS:       template.CSS(galleryCSS),
		Script:    template.JS(galleryJS),
		Nav:       r.nav,
		Height:    res.ContainerHeight,
		Boxes:     make([]boxData, g.Len()),
		Lightbox:  r.lightbox(g.Media(), lightbox.Closed(g.Len())),
		Data:      r.client(g),
	}

	groupOf := make(map[string]int)
	for gi, grp := range g.Groups() {
		groupOf[grp.Key] = gi
	}
	for i, m := range g.Media() {
		b := boxData{
			Index:  i,
			Box:    res.Boxes[i],
			Video:  m.IsVideo(),
			Src:    r.media(m.URL),
			Poster: r.media(m.Poster),
			Alt:    altText(m),
			Href:   r.view(i),
			Group:  -1,
			Head:   g.IsHead(i),
		}
		if grp, ok := g.GroupOf(i); ok {
			b.Group = groupOf[grp.Key]
			if b.Head {
				b.Caption = grp.Caption()
			}
		}
		data.Boxes[i] = b
	}

	return execute("page", data)
}

// RenderLightbox renders a standalone viewer page for state s. Arrows link
// to the neighbouring viewer pages and the close link to the gallery.
func RenderLightbox(g *gallery.Gallery, s lightbox.State, opts ...HTMLOption) ([]byte, error) {
	if !s.IsOpen() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "lightbox is closed")
	}
	r := newHTMLRenderer(opts)
	if r.viewBase == "" {
		r.viewBase = "/view/"
	}
	data := pageData{
		Title:     r.title,
		Generator: r.generator,
		CSS:       template.CSS(galleryCSS),
		Lightbox:  r.lightbox(g.Media(), s),
	}
	return execute("view", data)
}

func execute(name string, data pageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s template", name)
	}
	return buf.Bytes(), nil
}

func (r htmlRenderer) lightbox(items []gallery.MediaItem, s lightbox.State) lightboxData {
	v := lightbox.Render(s, items)
	lb := lightboxData{
		View:      v,
		Src:       r.media(v.Src),
		Poster:    r.media(v.Poster),
		PlayLabel: lightbox.PlayLabel(true),
		PrevHref:  "#",
		NextHref:  "#",
		CloseHref: "#",
	}
	for _, u := range v.Preload {
		lb.Preload = append(lb.Preload, r.media(u))
	}
	if v.Open && r.viewBase != "" {
		lb.PrevHref = r.view(s.Prev().Index())
		lb.NextHref = r.view(s.Next().Index())
		lb.CloseHref = r.home
	}
	return lb
}

func (r htmlRenderer) client(g *gallery.Gallery) clientData {
	cd := clientData{
		Items:            g.Items(),
		Config:           r.config,
		Responsive:       r.responsive,
		Breakpoints:      r.breakpoints,
		LayoutEndpoint:   r.layoutEndpoint,
		Media:            make([]clientMedia, g.Len()),
		DebounceMs:       gallery.ResizeDebounce.Milliseconds(),
		AutoHideMs:       lightbox.AutoHideDelay.Milliseconds(),
		ClickGuardMs:     lightbox.ClickGuard.Milliseconds(),
		SwipeMinDistance: lightbox.SwipeMinDistance,
		SwipeMaxVertical: lightbox.SwipeMaxVertical,
		LabelPlay:        lightbox.LabelPlay,
		LabelPause:       lightbox.LabelPause,
	}
	for i, m := range g.Media() {
		cd.Media[i] = clientMedia{
			Video:    m.IsVideo(),
			Src:      r.media(m.FullURL()),
			Poster:   r.media(m.Poster),
			Title:    m.Caption.Title,
			Subtitle: lightbox.Subtitle(m.Caption),
			Portrait: m.IsVideo() && m.IsPortrait(),
		}
	}
	return cd
}

// media resolves a manifest URL against the media prefix.
func (r htmlRenderer) media(u string) string {
	if u == "" || r.mediaPrefix == "" || errors.IsRemote(u) || strings.HasPrefix(u, "/") {
		return u
	}
	return strings.TrimSuffix(r.mediaPrefix, "/") + "/" + strings.TrimPrefix(u, "./")
}

func (r htmlRenderer) view(i int) string {
	if r.viewBase == "" {
		return "#item-" + strconv.Itoa(i)
	}
	return r.viewBase + strconv.Itoa(i)
}

func altText(m gallery.MediaItem) string {
	var parts []string
	for _, s := range []string{m.Caption.Title, m.Caption.Line1} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return m.Kind.String()
	}
	return strings.Join(parts, " / ")
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "px"
}
