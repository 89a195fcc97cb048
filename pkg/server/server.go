package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/container-lab/liveness/pkg/startup"
)

// Config holds the HTTP server settings.
type Config struct {
	Addr              string
	ShutdownTimeout   time.Duration
	ReadHeaderTimeout time.Duration
}

// Server gates an HTTP handler behind an optional startup pipeline. It moves
// from not listening to listening exactly once, and only when every startup
// step succeeded.
type Server struct {
	cfg      Config
	handler  http.Handler
	pipeline *startup.Pipeline
	logger   *slog.Logger
}

// New creates a Server. pipeline may be nil, in which case Start listens
// immediately.
func New(cfg Config, handler http.Handler, pipeline *startup.Pipeline, logger *slog.Logger) *Server {
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	if cfg.ReadHeaderTimeout <= 0 {
		cfg.ReadHeaderTimeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:      cfg,
		handler:  chi.Chain(RequestLogger(logger), chimw.Recoverer).Handler(handler),
		pipeline: pipeline,
		logger:   logger,
	}
}

// Start runs the startup pipeline and, if it succeeds, binds the listener
// and serves in the background. When a step fails the listener is never
// opened and the error is returned with the partial report.
func (s *Server) Start(ctx context.Context) (*Handle, *startup.Report, error) {
	var report *startup.Report
	if s.pipeline != nil {
		var err error
		report, err = s.pipeline.Run(ctx)
		if err != nil {
			s.logger.Error("error starting server", "error", err)
			return nil, report, err
		}
	}

	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return nil, report, fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}

	h := &Handle{
		srv: &http.Server{
			Handler:           s.handler,
			ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
		},
		addr: ln.Addr(),
		done: make(chan struct{}),
	}
	go h.serve(ln)

	s.logger.Info("http server is listening", "addr", h.addr.String())
	return h, report, nil
}

// Run starts the server and blocks until ctx is cancelled or serving fails,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	h, _, err := s.Start(ctx)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(h.Wait)

	// Fires on ctx cancellation or when Wait returns an error.
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := h.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	s.logger.Info("server stopped gracefully")
	return nil
}

// Handle is a running server returned by Start.
type Handle struct {
	srv  *http.Server
	addr net.Addr
	done chan struct{}
	err  error
}

func (h *Handle) serve(ln net.Listener) {
	defer close(h.done)
	if err := h.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		h.err = err
	}
}

// Addr is the bound listener address.
func (h *Handle) Addr() net.Addr {
	return h.addr
}

// Wait blocks until the server stops serving. It returns nil after a
// graceful shutdown.
func (h *Handle) Wait() error {
	<-h.done
	return h.err
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (h *Handle) Shutdown(ctx context.Context) error {
	if err := h.srv.Shutdown(ctx); err != nil {
		return err
	}
	<-h.done
	return nil
}
