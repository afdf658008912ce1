// Package server exposes the layout pipeline over HTTP.
//
// Routes:
//
//	POST   /v1/layouts           compute a layout and store it
//	GET    /v1/layouts           list stored layouts, newest first
//	GET    /v1/layouts/{id}      the stored layout document
//	GET    /v1/layouts/{id}/svg  render as SVG (?outlines=1, ?fillings=0, ?background=%23fff)
//	GET    /v1/layouts/{id}/png  render as PNG (?scale=2)
//	DELETE /v1/layouts/{id}      remove a layout
//	GET    /healthz              liveness probe
//
// Errors are JSON objects {"error": message, "code": CODE}.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/shapewordle/pkg/observability"
	"github.com/matzehuels/shapewordle/pkg/pipeline"
	"github.com/matzehuels/shapewordle/pkg/store"
)

const (
	// DefaultMaxBodyBytes bounds request bodies; masks are dense, so this
	// is generous.
	DefaultMaxBodyBytes = 64 << 20

	// MaxCanvasSide bounds the canvas a request may ask for.
	MaxCanvasSide = 4096

	shutdownTimeout = 10 * time.Second
)

// Config holds the server's collaborators.
type Config struct {
	Runner *pipeline.Runner
	Store  store.Store
	Logger *log.Logger

	// Defaults apply to every request before the request's own options.
	Defaults pipeline.Options

	MaxBodyBytes int64
}

// Server serves the HTTP API.
type Server struct {
	runner   *pipeline.Runner
	store    store.Store
	logger   *log.Logger
	defaults pipeline.Options
	maxBody  int64
}

// New returns a server for cfg. A nil store means an in-memory store.
func New(cfg Config) *Server {
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &Server{
		runner:   cfg.Runner,
		store:    cfg.Store,
		logger:   cfg.Logger,
		defaults: cfg.Defaults,
		maxBody:  cfg.MaxBodyBytes,
	}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1/layouts", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Get("/", s.handleList)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Get("/svg", s.handleSVG)
			r.Get("/png", s.handlePNG)
			r.Delete("/", s.handleDelete)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// observe reports every request to the HTTP hooks and the logger.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		d := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, d)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", d,
			"request_id", middleware.GetReqID(r.Context()))
	})
}
