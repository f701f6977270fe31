package server

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/sunburst/pkg/hierarchy"
	"github.com/matzehuels/sunburst/pkg/observability"
	"github.com/matzehuels/sunburst/pkg/pipeline"
	"github.com/matzehuels/sunburst/pkg/routes"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 200 * time.Millisecond

// Options configures a [Server].
type Options struct {
	// Input is the dataset file, reloaded by [Server.Watch].
	Input string

	// Assets is the directory served under /assets/. Empty disables it.
	Assets string

	// Base and Routes feed the route selector on the viewer page.
	Base   string
	Routes []routes.Route

	// Chart holds the layout and render defaults applied to every request.
	// Input, Root, Focus, FocusPath, Formats and Links are set per request.
	Chart pipeline.Options

	// Debounce overrides [DefaultDebounce].
	Debounce time.Duration
}

// dataset is one loaded generation of the input.
type dataset struct {
	root   *hierarchy.Node
	hash   string
	loaded time.Time
}

// Server serves one dataset.
type Server struct {
	opts   Options
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
	data   atomic.Pointer[dataset]
}

// New loads opts.Input and returns a ready server.
func New(ctx context.Context, runner *pipeline.Runner, opts Options, logger *log.Logger) (*Server, error) {
	s, err := newServer(runner, opts, logger)
	if err != nil {
		return nil, err
	}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// NewFromRoot returns a server for an already loaded tree. [Server.Reload]
// and [Server.Watch] need Options.Input and fail without it.
func NewFromRoot(runner *pipeline.Runner, root *hierarchy.Node, opts Options, logger *log.Logger) (*Server, error) {
	s, err := newServer(runner, opts, logger)
	if err != nil {
		return nil, err
	}
	if err := s.swap(root); err != nil {
		return nil, err
	}
	return s, nil
}

func newServer(runner *pipeline.Runner, opts Options, logger *log.Logger) (*Server, error) {
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if logger == nil {
		logger = runner.Logger
	}
	if len(opts.Routes) == 0 {
		opts.Routes = routes.Defaults()
	}
	if err := routes.Validate(opts.Routes); err != nil {
		return nil, err
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	s := &Server{opts: opts, runner: runner, logger: logger}
	s.router = s.routes()
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Root returns the current dataset.
func (s *Server) Root() *hierarchy.Node { return s.data.Load().root }

// Reload reads opts.Input again and swaps it in. On failure the previous
// dataset stays in place.
func (s *Server) Reload(ctx context.Context) error {
	if s.opts.Input == "" {
		return fmt.Errorf("reload: server has no input file")
	}
	root, err := s.runner.Load(ctx, pipeline.Options{Input: s.opts.Input, Logger: s.logger})
	if err == nil {
		err = s.swap(root)
	}

	count := 0
	if err == nil {
		count = root.Count()
	}
	observability.Server().OnReload(ctx, s.opts.Input, count, err)
	if err != nil {
		return fmt.Errorf("reload %s: %w", s.opts.Input, err)
	}
	s.logger.Info("dataset loaded", "input", s.opts.Input, "nodes", count)
	return nil
}

func (s *Server) swap(root *hierarchy.Node) error {
	hash, err := pipeline.DatasetHash(root)
	if err != nil {
		return err
	}
	s.data.Store(&dataset{root: root, hash: hash, loaded: time.Now()})
	return nil
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("viewer listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errc
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/", s.handleIndex)
	r.Get("/chart.svg", s.handleSVG)
	r.Get("/chart.png", s.handlePNG)
	r.Get("/layout.json", s.handleLayout)
	r.Get("/healthz", s.handleHealth)
	r.Get("/assets/*", s.handleAsset)
	return r
}
