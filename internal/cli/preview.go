package cli

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/justify/pkg/errors"
	"github.com/matzehuels/justify/pkg/gallery"
	"github.com/matzehuels/justify/pkg/httputil"
	"github.com/matzehuels/justify/pkg/lightbox"
	"github.com/matzehuels/justify/pkg/manifest"
	"github.com/matzehuels/justify/pkg/pipeline"
)

// previewCommand creates the preview command, a terminal lightbox.
func (c *CLI) previewCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "preview [gallery.toml]",
		Short: "Browse a gallery in a terminal lightbox",
		Long: `Browse a gallery manifest item by item in the terminal.

The viewer behaves like the page lightbox: arrows move and wrap around, esc
closes, and the neighbouring images are preloaded (decoded locally or
checked with HEAD for remote URLs). Space plays or pauses a video and t
toggles its control overlay.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: manifestCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), sourceArg(args), noCache)
		},
	}
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, source string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	m, err := runner.Load(ctx, pipeline.Options{Source: source})
	if err != nil {
		return fmt.Errorf("load %s: %w", source, err)
	}
	g, err := m.Gallery()
	if err != nil {
		return fmt.Errorf("load %s: %w", source, err)
	}
	if g.Len() == 0 {
		c.printInfo("Gallery is empty")
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := newPreviewModel(ctx, m.Title, g, probeDecoder(filepath.Dir(source)))
	defer model.viewer.Preloader().Wait()

	_, err = tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}

// probeDecoder checks that a preload target exists and is readable: local
// files must carry a decodable header, remote URLs must answer HEAD.
func probeDecoder(dir string) lightbox.Decoder {
	client := &http.Client{Timeout: 10 * time.Second}
	return lightbox.DecoderFunc(func(ctx context.Context, url string) error {
		if errors.IsRemote(url) {
			return httputil.Head(ctx, client, url)
		}
		_, _, err := manifest.Probe(filepath.Join(dir, filepath.FromSlash(url)))
		return err
	})
}

// =============================================================================
// previewModel - bubbletea lightbox
// =============================================================================

var (
	previewFrame    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(1, 2)
	previewSelected = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	previewNormal   = lipgloss.NewStyle().Foreground(colorWhite)
	previewDim      = lipgloss.NewStyle().Foreground(colorDim)
)

// previewListHeight is the number of list rows shown when the window size
// is not yet known.
const previewListHeight = 15

type (
	// preloadDoneMsg reports a finished preload so the status line refreshes.
	preloadDoneMsg struct{ url string }
	// hideControlsMsg fires at the overlay deadline.
	hideControlsMsg struct{}
	// resizeMsg applies the window height once resizing settled.
	resizeMsg struct{ gen int }
)

type previewModel struct {
	ctx    context.Context
	title  string
	items  []gallery.MediaItem
	viewer *lightbox.Viewer
	now    func() time.Time

	cursor int
	offset int
	height int

	pendingHeight int
	resizeGen     int
}

func newPreviewModel(ctx context.Context, title string, g *gallery.Gallery, dec lightbox.Decoder) *previewModel {
	items := g.Media()
	return &previewModel{
		ctx:    ctx,
		title:  title,
		items:  items,
		viewer: lightbox.NewViewer(items, dec),
		now:    time.Now,
		height: previewListHeight,
	}
}

func (m *previewModel) Init() tea.Cmd { return nil }

func (m *previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.viewer.State().IsOpen() {
			return m, m.updateOpen(msg.String())
		}
		return m, m.updateList(msg.String())
	case tea.WindowSizeMsg:
		m.pendingHeight = max(5, msg.Height-6)
		m.resizeGen++
		gen := m.resizeGen
		return m, tea.Tick(gallery.ResizeDebounce, func(time.Time) tea.Msg {
			return resizeMsg{gen: gen}
		})
	case resizeMsg:
		if msg.gen == m.resizeGen {
			m.setHeight(m.pendingHeight)
		}
	}
	// preloadDoneMsg and hideControlsMsg only need the redraw.
	return m, nil
}

func (m *previewModel) updateList(key string) tea.Cmd {
	switch key {
	case "q", "ctrl+c", "esc":
		return tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.offset = min(m.offset, m.cursor)
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
			if m.cursor >= m.offset+m.height {
				m.offset = m.cursor - m.height + 1
			}
		}
	case "enter":
		return m.waitPreloads(m.viewer.Open(m.ctx, m.cursor))
	}
	return nil
}

func (m *previewModel) updateOpen(key string) tea.Cmd {
	switch key {
	case "q", "ctrl+c":
		return tea.Quit
	case " ":
		m.viewer.TogglePlay()
		return nil
	case "t":
		if !m.viewer.View().IsVideo() {
			return nil
		}
		m.viewer.Controls().Tap(m.now())
		return m.scheduleHide()
	}

	v := m.viewer.Key(m.ctx, key)
	if !v.Open {
		// The list resumes at the last shown item.
		if m.cursor < m.offset || m.cursor >= m.offset+m.height {
			m.offset = max(0, m.cursor-m.height/2)
		}
		return nil
	}
	m.cursor = v.Index
	return m.waitPreloads(v)
}

// setHeight resizes the list and keeps the cursor on screen.
func (m *previewModel) setHeight(h int) {
	m.height = h
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

// scheduleHide arms a redraw at the overlay deadline.
func (m *previewModel) scheduleHide() tea.Cmd {
	deadline, ok := m.viewer.Controls().Deadline()
	if !ok {
		return nil
	}
	return tea.Tick(time.Until(deadline), func(time.Time) tea.Msg {
		return hideControlsMsg{}
	})
}

// waitPreloads returns commands that report each pending preload of v.
func (m *previewModel) waitPreloads(v lightbox.View) tea.Cmd {
	urls := v.Preload
	if !v.IsVideo() && v.Src != "" {
		urls = append([]string{v.Src}, urls...)
	}
	var cmds []tea.Cmd
	for _, u := range urls {
		rec, ok := m.viewer.Preloader().Cached(u)
		if !ok || rec.Err() != nil {
			continue
		}
		select {
		case <-rec.Done():
			continue
		default:
		}
		ctx := m.ctx
		cmds = append(cmds, func() tea.Msg {
			_ = rec.Wait(ctx)
			return preloadDoneMsg{url: rec.URL}
		})
	}
	return tea.Batch(cmds...)
}

func (m *previewModel) View() string {
	if v := m.viewer.View(); v.Open {
		return m.viewOpen(v)
	}
	return m.viewList()
}

func (m *previewModel) viewList() string {
	var b strings.Builder
	title := m.title
	if title == "" {
		title = "Gallery"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(previewDim.Render("↑/↓ navigate  ⏎ open  q quit"))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.items))
	for i := m.offset; i < end; i++ {
		it := m.items[i]
		cursor := "  "
		style := previewNormal
		if i == m.cursor {
			cursor = "▸ "
			style = previewSelected
		}
		label := it.Caption.Title
		if label == "" {
			label = it.URL
		}
		line := fmt.Sprintf("%s%3d  %-5s %s", cursor, i+1, it.Kind, label)
		b.WriteString(style.Render(line))
		if sub := lightbox.Subtitle(it.Caption); sub != "" {
			b.WriteString(previewDim.Render("  " + sub))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(previewDim.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.items))))
	return b.String()
}

func (m *previewModel) viewOpen(v lightbox.View) string {
	var b strings.Builder
	title := v.Title
	if title == "" {
		title = filepath.Base(v.Src)
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	if v.Subtitle != "" {
		b.WriteString(StyleHighlight.Render(v.Subtitle))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	m.writeField(&b, v.Kind.String(), v.Src)
	if v.Poster != "" {
		m.writeField(&b, "poster", v.Poster)
	}
	if v.IsVideo() {
		pb := m.viewer.Playback()
		status := pb.Label()
		if v.Portrait {
			status += " · portrait"
		}
		if v.Loop {
			status += " · loop"
		}
		m.writeField(&b, "video", status)
		if m.viewer.Controls().Visible(m.now()) {
			m.writeField(&b, "controls", fmt.Sprintf("%s  %.0f%%", pb.Label(), pb.Progress()))
		}
	} else {
		m.writeField(&b, "image", m.preloadStatus(v.Src))
	}
	for _, u := range v.Preload {
		m.writeField(&b, "preload", filepath.Base(u)+" "+m.preloadStatus(u))
	}

	footer := previewDim.Render(v.Counter + "   ←/→ move  esc close  space play  t controls  q quit")
	return previewFrame.Render(b.String()) + "\n" + footer
}

func (m *previewModel) writeField(b *strings.Builder, key, value string) {
	b.WriteString(styleKey.Render(key))
	b.WriteString(" ")
	b.WriteString(StyleValue.Render(value))
	b.WriteString("\n")
}

func (m *previewModel) preloadStatus(url string) string {
	rec, ok := m.viewer.Preloader().Cached(url)
	if !ok {
		return previewDim.Render("not loaded")
	}
	select {
	case <-rec.Done():
	default:
		return previewDim.Render("loading")
	}
	if err := rec.Err(); err != nil {
		return StyleWarning.Render("failed: " + err.Error())
	}
	return StyleSuccess.Render(iconSuccess + " ready")
}
