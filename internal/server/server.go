package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"syscall"
	"time"

	"github.com/anshul755/portfolio-rag/internal/app"
)

// Server manages the HTTP server and routes
type Server struct {
	app    *app.App
	router *http.ServeMux
	server *http.Server
}

// New creates a new HTTP server with the given app
func New(application *app.App) *Server {
	s := &Server{
		app: application,
	}

	s.router = s.setupRoutes()

	s.server = &http.Server{
		Handler:      s.withMiddleware(s.router),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start binds a listener and serves until shutdown. If the configured port
// is already bound, the next port is tried, up to a fixed number of
// attempts; after that the error is returned rather than scanning onward.
func (s *Server) Start() error {
	host := s.app.Config.Server.Host
	port := s.app.Config.Server.Port

	var listener net.Listener
	var err error
	for attempt := 0; attempt < s.app.Config.Server.MaxPortAttempts; attempt++ {
		addr := fmt.Sprintf("%s:%d", host, port)
		listener, err = net.Listen("tcp", addr)
		if err == nil {
			break
		}
		if !isAddrInUse(err) {
			return fmt.Errorf("failed to listen on %s: %w", addr, err)
		}

		s.app.Logger.Warn().
			Int("port", port).
			Int("next", port+1).
			Msg("Port in use, trying next")
		port++
	}
	if listener == nil {
		return fmt.Errorf("no free port after %d attempts starting at %d: %w",
			s.app.Config.Server.MaxPortAttempts, s.app.Config.Server.Port, err)
	}

	// Record the bound port so /health reports the real one
	s.app.Config.Server.Port = port

	s.app.Logger.Info().
		Str("address", listener.Addr().String()).
		Str("index", s.app.Config.Index.Name).
		Msg("HTTP server starting")

	if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.app.Logger.Info().Msg("Shutting down HTTP server...")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.app.Logger.Info().Msg("HTTP server stopped")
	return nil
}

func isAddrInUse(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		var sysErr *os.SyscallError
		if errors.As(opErr.Err, &sysErr) {
			return sysErr.Err == syscall.EADDRINUSE
		}
	}
	return false
}
