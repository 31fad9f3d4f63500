// Package server exposes the ecosystem document, its reports and the
// rendering-host plugins over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/cmsecosystem/pkg/ecosystem"
	"github.com/matzehuels/cmsecosystem/pkg/plugins"
)

// Source supplies the parsed document. *ecosystem.Cache implements it.
type Source interface {
	Read(ctx context.Context) (*ecosystem.Document, error)
	Chapter(ctx context.Context, title string) (*ecosystem.Chapter, error)
}

// Server is the HTTP API.
type Server struct {
	router   chi.Router
	docs     Source
	registry *plugins.Registry
	renderer *plugins.Renderer
	log      *log.Logger
	now      func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithClock replaces time.Now for the LTS report.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New creates a server reading from docs. A nil registry means
// [plugins.DefaultRegistry] and a nil logger means log.Default().
func New(docs Source, registry *plugins.Registry, logger *log.Logger, opts ...Option) (*Server, error) {
	if registry == nil {
		registry = plugins.DefaultRegistry()
	}
	if logger == nil {
		logger = log.Default()
	}
	renderer, err := plugins.NewRenderer(registry, docs)
	if err != nil {
		return nil, err
	}

	s := &Server{
		docs:     docs,
		registry: registry,
		renderer: renderer,
		log:      logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/chapters", s.handleChapters)
		r.Get("/chapters/{title}", s.handleChapter)
		r.Get("/versions", s.handleVersions)
	})

	r.Route("/reports", func(r chi.Router) {
		r.Get("/compatibility", s.handleCompatibility)
		r.Get("/lts", s.handleLTS)
		r.Get("/plugins", s.handlePluginReport)
	})

	r.Get("/plugins", s.handlePlugins)
	r.Get("/plugins/{name}", s.handleRenderPlugin)

	s.router = r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != http.ErrServerClosed {
		return err
	}
	return nil
}
