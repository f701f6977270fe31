package server

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/pipeline"
	"github.com/matzehuels/sunburst/pkg/routes"
)

// zoomLinks is the link format of clickable arcs. It is relative, so the
// same SVG zooms correctly inside the page and when opened on its own.
const zoomLinks = "?focus=%d"

// request builds the pipeline options for r.
func (s *Server) request(r *http.Request, formats ...string) (pipeline.Options, error) {
	opts := s.opts.Chart
	opts.Input = ""
	opts.Root = s.Root()
	opts.Formats = formats
	opts.Logger = s.logger
	opts.Focus = 0
	opts.FocusPath = r.URL.Query().Get("path")

	if v := r.URL.Query().Get("focus"); v != "" {
		focus, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidFocus, "focus must be a node index, got %q", v)
		}
		opts.Focus = focus
	}
	if v := r.URL.Query().Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil || scale <= 0 || scale > 8 {
			return opts, errors.New(errors.ErrCodeInvalidInput, "scale must be a number in (0, 8], got %q", v)
		}
		opts.Scale = scale
	}
	return opts, nil
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, format string, opts pipeline.Options) (*pipeline.Result, bool) {
	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	if _, ok := res.Artifacts[format]; !ok {
		s.writeError(w, errors.New(errors.ErrCodeInternal, "no %s output", format))
		return nil, false
	}
	return res, true
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	opts, err := s.request(r, pipeline.FormatSVG)
	if err != nil {
		s.writeError(w, err)
		return
	}
	opts.Interactive = true
	opts.Links = zoomLinks

	res, ok := s.render(w, r, pipeline.FormatSVG, opts)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(res.Artifacts[pipeline.FormatSVG])
}

func (s *Server) handlePNG(w http.ResponseWriter, r *http.Request) {
	opts, err := s.request(r, pipeline.FormatPNG)
	if err != nil {
		s.writeError(w, err)
		return
	}

	res, ok := s.render(w, r, pipeline.FormatPNG, opts)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(res.Artifacts[pipeline.FormatPNG])
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.request(r, pipeline.FormatJSON)
	if err != nil {
		s.writeError(w, err)
		return
	}

	res, ok := s.render(w, r, pipeline.FormatJSON, opts)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(res.Artifacts[pipeline.FormatJSON])
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	opts, err := s.request(r, pipeline.FormatSVG)
	if err != nil {
		s.writeError(w, err)
		return
	}
	opts.Interactive = true
	opts.Links = zoomLinks

	res, ok := s.render(w, r, pipeline.FormatSVG, opts)
	if !ok {
		return
	}

	sel := routes.NewSelector(s.opts.Routes)
	if id := r.URL.Query().Get("route"); id != "" {
		sel.Click(id)
	}
	selector, err := routes.RenderHTML(sel, s.opts.Base)
	if err != nil {
		s.writeError(w, err)
		return
	}

	page, err := renderPage(pageData{
		Title:    res.Root.Name,
		Center:   res.Chart.CenterTitle(),
		Chart:    res.Artifacts[pipeline.FormatSVG],
		Selector: selector,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

type health struct {
	Status string    `json:"status"`
	Root   string    `json:"root"`
	Nodes  int       `json:"nodes"`
	Hash   string    `json:"hash"`
	Loaded time.Time `json:"loaded"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	d := s.data.Load()
	writeJSON(w, http.StatusOK, health{
		Status: "ok",
		Root:   d.root.Name,
		Nodes:  d.root.Count(),
		Hash:   d.hash,
		Loaded: d.loaded,
	})
}

func (s *Server) handleAsset(w http.ResponseWriter, r *http.Request) {
	if s.opts.Assets == "" {
		s.writeError(w, errors.New(errors.ErrCodeNotFound, "no asset directory configured"))
		return
	}
	name := chi.URLParam(r, "*")
	if err := errors.ValidatePath(name); err != nil {
		s.writeError(w, err)
		return
	}
	http.ServeFile(w, r, filepath.Join(s.opts.Assets, filepath.FromSlash(name)))
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps coded errors to HTTP statuses. Internal failures are
// logged and reported without detail.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	if status >= http.StatusInternalServerError && status != http.StatusNotImplemented {
		s.logger.Error("request failed", "error", err)
		msg = "internal error"
		if code == "" {
			code = errors.ErrCodeInternal
		}
	}
	writeJSON(w, status, errorBody{Code: string(code), Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
