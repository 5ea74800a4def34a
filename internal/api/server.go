package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"inventory-api/internal/config"
)

// Server runs the HTTP listener until its context is cancelled.
type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
	logger          zerolog.Logger
}

// NewServer creates a Server serving handler with the given settings.
func NewServer(cfg *config.ServerConfig, handler http.Handler, logger zerolog.Logger) *Server {
	shutdownTimeout := cfg.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 15 * time.Second
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Listen,
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
		},
		shutdownTimeout: shutdownTimeout,
		logger:          logger.With().Str("component", "http-server").Logger(),
	}
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info().Str("listen", ln.Addr().String()).Msg("server started")
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		s.logger.Info().Dur("timeout", s.shutdownTimeout).Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	s.logger.Info().Msg("server stopped")
	return nil
}
