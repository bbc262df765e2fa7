// Package server serves network diagrams over HTTP.
//
// Every request draws a fresh scene, so handlers never share mutable state.
// Query parameters select the topology and drawing options:
//
//	GET /diagram.svg?layers=3,6,10&seed=7&hover=1:2&viz=diagram
//
// Errors are reported as JSON with a status derived from the error code:
// INVALID_* maps to 400, *_NOT_FOUND to 404 and everything else to 500.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/netgraph/pkg/cache"
	"github.com/matzehuels/netgraph/pkg/pipeline"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8080"

// Server is an HTTP front end for the drawing pipeline.
type Server struct {
	Addr string

	// Base holds the options every request starts from. Query parameters
	// override its topology, seed, hover neuron and visualization type.
	Base pipeline.Options

	// Cache holds rendered artifacts for CacheTTL. New installs a NullCache.
	Cache    cache.Cache
	CacheTTL time.Duration

	runner *pipeline.Runner
	logger *log.Logger

	mu     sync.Mutex
	srv    *http.Server
	ln     net.Listener
	closed bool
}

// New creates a server that draws with runner. A nil logger discards output.
func New(addr string, base pipeline.Options, runner *pipeline.Runner, logger *log.Logger) *Server {
	if addr == "" {
		addr = DefaultAddr
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if runner == nil {
		runner = pipeline.NewRunner(logger)
	}
	return &Server{Addr: addr, Base: base, Cache: cache.NewNullCache(), runner: runner, logger: logger}
}

// Handler returns the chi router with all routes and middleware installed.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Get("/diagram.{format}", s.handleDiagram)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, http.StatusNotFound, "not_found", "no route for "+r.URL.Path)
	})
	return r
}

// Start listens on Addr and serves in the background until ctx is canceled
// or Stop is called.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.New("server already stopped")
	}
	if s.srv != nil {
		return nil
	}

	s.srv = &http.Server{
		Addr:              s.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		s.srv = nil
		return fmt.Errorf("listen %s: %w", s.Addr, err)
	}
	s.ln = ln

	go func() {
		<-ctx.Done()
		_ = s.Stop()
	}()

	srv := s.srv
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("serve failed", "err", err)
		}
	}()

	s.logger.Info("listening", "addr", ln.Addr().String())
	return nil
}

// ListenAddr returns the bound address, or "" before Start.
func (s *Server) ListenAddr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Stop shuts the server down, waiting up to five seconds for open requests.
func (s *Server) Stop() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	srv := s.srv
	s.srv = nil
	s.ln = nil
	s.mu.Unlock()

	if srv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(ctx)
	if cerr := s.Cache.Close(); err == nil {
		err = cerr
	}
	return err
}
