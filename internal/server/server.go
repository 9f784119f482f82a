// Package server exposes the calculation service over HTTP with JSON
// bodies: POST /fib, POST /range, GET /health and GET /metrics.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"

	"github.com/agbru/fibrange/internal/config"
	apperrors "github.com/agbru/fibrange/internal/errors"
	"github.com/agbru/fibrange/internal/logging"
	"github.com/agbru/fibrange/internal/service"
)

// Server wraps an http.Server around a service.Service.
type Server struct {
	service        service.Service
	cfg            config.AppConfig
	httpServer     *http.Server
	logger         logging.Logger
	rateLimiter    *RateLimiter
	securityConfig SecurityConfig
	metrics        *Metrics
	timeouts       Timeouts
}

// NewServer creates a Server listening on cfg.Port. A positive cfg.Timeout
// overrides the default per-request calculation timeout.
//
// Parameters:
//   - svc: The calculation service.
//   - cfg: The application configuration.
//   - opts: Functional options such as WithLogger or WithRateLimiter.
//
// Returns:
//   - *Server: The configured server, not yet listening.
func NewServer(svc service.Service, cfg config.AppConfig, opts ...Option) *Server {
	s := &Server{
		service:        svc,
		cfg:            cfg,
		logger:         defaultLogger(),
		securityConfig: DefaultSecurityConfig(),
		metrics:        NewMetrics(),
		timeouts:       DefaultServerTimeouts(),
	}
	if cfg.Timeout > 0 {
		s.timeouts.RequestTimeout = cfg.Timeout
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.rateLimiter == nil {
		s.rateLimiter = NewRateLimiter(DefaultRateLimiterConfig())
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/fib", s.wrapWithMiddleware("/fib", s.handleSingle))
	mux.HandleFunc("/range", s.wrapWithMiddleware("/range", s.handleRange))
	mux.HandleFunc("/health", s.wrapWithMiddleware("/health", s.handleHealth))
	mux.HandleFunc("/metrics", s.wrapWithMiddleware("/metrics", s.handleMetrics))

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  s.timeouts.ReadTimeout,
		WriteTimeout: s.timeouts.WriteTimeout,
		IdleTimeout:  s.timeouts.IdleTimeout,
	}
	return s
}

func defaultLogger() logging.Logger {
	logger, err := logging.New(os.Stderr, logging.Options{Component: "server"})
	if err != nil {
		return logging.Nop()
	}
	return logger
}

// Handler returns the routed handler with its middleware chain.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// wrapWithMiddleware applies Security -> RateLimit -> Gzip -> Logging ->
// Metrics -> handler.
func (s *Server) wrapWithMiddleware(path string, handler http.HandlerFunc) http.HandlerFunc {
	wrapped := s.metricsMiddleware(path, handler)
	wrapped = s.loggingMiddleware(wrapped)
	wrapped = gzipMiddleware(wrapped)
	wrapped = RateLimitMiddleware(s.rateLimiter, wrapped)
	wrapped = SecurityMiddleware(s.securityConfig, wrapped)
	return wrapped
}

// Start listens on the configured port and serves until ctx is done, then
// shuts down gracefully within Timeouts.ShutdownTimeout.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return apperrors.NewServerError("server failed to start", err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.rateLimiter.Stop()

	s.logger.Info("server starting",
		logging.String("addr", ln.Addr().String()),
		logging.Uint64("max_n", s.cfg.MaxN),
		logging.Uint64("max_range", s.cfg.MaxRangeLen),
		logging.Duration("request_timeout", s.timeouts.RequestTimeout),
	)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received, draining connections")
	case err, ok := <-errCh:
		if ok {
			return apperrors.NewServerError("server stopped unexpectedly", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.timeouts.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return apperrors.NewServerError("failed to gracefully shutdown server", err)
	}

	s.logger.Info("server stopped gracefully")
	return nil
}
