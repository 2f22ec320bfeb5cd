// Package server implements the justify preview server.
//
// The server loads one gallery manifest at startup and serves it read-only:
// the gallery page, a server-rendered lightbox page per item, a JSON layout
// endpoint the page script calls on resize, and the media files the
// manifest references. Layouts and pages go through a [pipeline.Runner], so
// a shared Redis cache lets several instances reuse each other's work.
package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/justify/pkg/errors"
	"github.com/matzehuels/justify/pkg/gallery"
	"github.com/matzehuels/justify/pkg/manifest"
	"github.com/matzehuels/justify/pkg/pipeline"
)

// Route paths.
const (
	RouteHealth = "/healthz"
	RouteIndex  = "/"
	RouteView   = "/view/{index}"
	RouteLayout = "/api/layout"
	RouteMedia  = "/media/*"

	mediaPrefix = "/media/"
	viewBase    = "/view/"
)

// Timeouts.
const (
	ReadHeaderTimeout = 10 * time.Second
	WriteTimeout      = 60 * time.Second
	ShutdownTimeout   = 5 * time.Second

	// maxBodyBytes bounds POST /api/layout request bodies.
	maxBodyBytes = 1 << 20
)

// Config configures a Server.
type Config struct {
	// Addr is the listen address, e.g. "127.0.0.1:8080".
	Addr string
	// Manifest is the gallery file to serve.
	Manifest string
	// Runner computes and caches layouts and pages. Defaults to an uncached runner.
	Runner *pipeline.Runner
	// Logger receives request logs. Defaults to discarding.
	Logger *log.Logger
	// Static disables responsive breakpoints and browser-side repacking.
	Static bool
}

// Server serves one loaded gallery.
type Server struct {
	addr     string
	runner   *pipeline.Runner
	logger   *log.Logger
	manifest *manifest.Manifest
	gallery  *gallery.Gallery
	dir      string
	media    map[string]bool
	static   bool
	router   chi.Router
}

// New loads the manifest and builds the router.
func New(ctx context.Context, cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Manifest == "" {
		cfg.Manifest = pipeline.DefaultManifest
	}

	m, err := cfg.Runner.Load(ctx, pipeline.Options{Source: cfg.Manifest})
	if err != nil {
		return nil, err
	}
	g, err := m.Gallery()
	if err != nil {
		return nil, err
	}

	s := &Server{
		addr:     cfg.Addr,
		runner:   cfg.Runner,
		logger:   cfg.Logger,
		manifest: m,
		gallery:  g,
		dir:      filepath.Dir(cfg.Manifest),
		media:    localMedia(m),
		static:   cfg.Static,
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get(RouteHealth, s.handleHealth)
	r.Get(RouteIndex, s.handleIndex)
	r.Get(RouteView, s.handleView)
	r.Get(RouteLayout, s.handleLayout)
	r.Post(RouteLayout, s.handleLayoutPost)
	r.Get(RouteMedia, s.handleMedia)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, notFound("no route for %s", r.URL.Path))
	})
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Gallery returns the served gallery.
func (s *Server) Gallery() *gallery.Gallery { return s.gallery }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
// ready, when non-nil, receives the bound address once listening.
func (s *Server) ListenAndServe(ctx context.Context, ready func(addr string)) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln, ready)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener, ready func(addr string)) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: ReadHeaderTimeout,
		WriteTimeout:      WriteTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	if ready != nil {
		ready(ln.Addr().String())
	}

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// pageOptions returns the render options for pages served at urlPath.
func (s *Server) pageOptions(urlPath string) pipeline.Options {
	opts := pipeline.Options{
		Formats:     []string{pipeline.FormatHTML},
		Responsive:  !s.static,
		MediaPrefix: mediaPrefix,
		ViewBase:    viewBase,
		Page:        s.manifest.Page,
		Title:       s.manifest.Title,
	}
	if opts.Page == "" {
		opts.Page = gallery.CurrentPage(urlPath)
	}
	if !s.static {
		opts.LayoutEndpoint = RouteLayout
	}
	return opts
}

// localMedia collects the slash paths of files the manifest references.
func localMedia(m *manifest.Manifest) map[string]bool {
	out := make(map[string]bool)
	for _, it := range m.Items {
		for _, u := range []string{it.Src, it.Full, it.Poster} {
			if u != "" && !errors.IsRemote(u) {
				out[filepath.ToSlash(filepath.Clean(u))] = true
			}
		}
	}
	return out
}
