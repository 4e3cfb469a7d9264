// Package server serves the network viewer over HTTP.
//
// The page is a full-viewport vis-network canvas with a sidebar holding the
// selection control and the detail panel. Every selection change in the
// browser calls /api/render, which runs one render pass against the current
// network and returns the panel and scene together.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dsai-cliques/cliques/pkg/pipeline"
	"github.com/dsai-cliques/cliques/pkg/scene"
)

// Defaults for page text.
const (
	DefaultTitle        = "DSAI Cliques: A Network Graph"
	DefaultPageTitle    = "DSAI Cliques"
	DefaultInstructions = "Select a person to see their description and connections."
)

// shutdownTimeout bounds graceful shutdown after the context ends.
const shutdownTimeout = 10 * time.Second

// Config configures a Server.
type Config struct {
	// Title is the sidebar heading.
	Title string
	// Scene controls node sizes and colours.
	Scene scene.Options
	// Runner executes render passes. Nil means an uncached runner.
	Runner *pipeline.Runner
	// Metrics, when set, is mounted at /metrics.
	Metrics http.Handler
	Logger  *log.Logger
}

// Server holds the current network snapshot and routes requests to it.
// The snapshot is read-only; Swap replaces it wholesale.
type Server struct {
	mu   sync.RWMutex
	snap pipeline.Snapshot

	title  string
	opts   scene.Options
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New creates a server for snap.
func New(snap pipeline.Snapshot, cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Title == "" {
		cfg.Title = DefaultTitle
	}
	s := &Server{
		snap:   snap,
		title:  cfg.Title,
		opts:   cfg.Scene.WithDefaults(),
		runner: cfg.Runner,
		logger: cfg.Logger,
	}
	s.router = s.routes(cfg.Metrics)
	return s
}

func (s *Server) routes(metrics http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handlePage)
	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.NoCache)
		r.Get("/people", s.handlePeople)
		r.Get("/render", s.handleRender)
	})
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Snapshot returns the network currently served.
func (s *Server) Snapshot() pipeline.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Swap replaces the served network. In-flight requests finish against the
// snapshot they started with.
func (s *Server) Swap(snap pipeline.Snapshot) {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
	s.logger.Info("network swapped",
		"people", snap.Network.PersonCount(),
		"relationships", snap.Network.RelationshipCount())
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully. ready, if non-nil, receives the bound address once listening.
func (s *Server) ListenAndServe(ctx context.Context, addr string, ready func(net.Addr)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	if ready != nil {
		ready(ln.Addr())
	}

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}
