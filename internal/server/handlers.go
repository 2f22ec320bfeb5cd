package server

import (
	"encoding/json"
	"math"
	"net/http"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/justify/pkg/errors"
	"github.com/matzehuels/justify/pkg/justified"
	"github.com/matzehuels/justify/pkg/lightbox"
	"github.com/matzehuels/justify/pkg/pipeline"
	"github.com/matzehuels/justify/pkg/render/sink"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"items":  s.gallery.Len(),
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	opts := s.pageOptions(r.URL.Path)
	cfg := opts.Config(s.manifest)

	res, err := s.runner.ComputeLayout(ctx, s.gallery, cfg)
	if err != nil {
		writeError(w, err)
		return
	}
	artifacts, err := s.runner.Render(ctx, pipeline.NewScene(s.manifest, s.gallery, cfg, res), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeBody(w, "text/html; charset=utf-8", artifacts[pipeline.FormatHTML])
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "index")
	i, err := strconv.Atoi(raw)
	if err != nil || i < 0 || i >= s.gallery.Len() {
		writeError(w, notFound("no item %q", raw))
		return
	}

	state := lightbox.Closed(s.gallery.Len()).Open(i)
	page, err := sink.RenderLightbox(s.gallery, state,
		sink.WithTitle(s.manifest.Title),
		sink.WithMediaPrefix(mediaPrefix),
		sink.WithViewBase(viewBase),
		sink.WithHome(RouteIndex),
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeBody(w, "text/html; charset=utf-8", page)
}

// handleLayout lays out the served gallery for ?width=&viewport=.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	width, err := queryFloat(q.Get("width"), pipeline.DefaultContainerWidth)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "width"))
		return
	}
	viewport, err := queryFloat(q.Get("viewport"), width)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "viewport"))
		return
	}

	opts := s.pageOptions(r.URL.Path)
	opts.ContainerWidth = width
	opts.ViewportWidth = viewport
	res, err := s.runner.ComputeLayout(r.Context(), s.gallery, opts.Config(s.manifest))
	if err != nil {
		writeError(w, err)
		return
	}
	writeLayout(w, res)
}

// layoutRequest is the POST /api/layout body. Unknown keys are ignored.
type layoutRequest struct {
	Items  []justified.Item `json:"items"`
	Config json.RawMessage  `json:"config"`
}

// handleLayoutPost lays out arbitrary items, independent of the gallery.
func (s *Server) handleLayoutPost(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	cfg, err := justified.ParseConfig(req.Config)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config"))
		return
	}
	if err := errors.ValidateItems(req.Items); err != nil {
		writeError(w, err)
		return
	}
	if err := errors.ValidateConfig(cfg); err != nil {
		writeError(w, err)
		return
	}
	writeLayout(w, justified.Compute(req.Items, cfg))
}

// handleMedia serves files the manifest references, and nothing else.
func (s *Server) handleMedia(w http.ResponseWriter, r *http.Request) {
	rel := chi.URLParam(r, "*")
	if err := errors.ValidatePath(rel); err != nil {
		writeError(w, err)
		return
	}
	rel = path.Clean(rel)
	if !s.media[rel] {
		writeError(w, notFound("no media %q", rel))
		return
	}
	http.ServeFile(w, r, filepath.Join(s.dir, filepath.FromSlash(rel)))
}

func queryFloat(raw string, def float64) (float64, error) {
	if strings.TrimSpace(raw) == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if !(v > 0) || math.IsInf(v, 0) {
		return 0, errors.New(errors.ErrCodeInvalidInput, "must be a positive number, got %s", raw)
	}
	return v, nil
}
