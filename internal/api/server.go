package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/specialistvlad/causalcore/internal/ctxlog"
)

// ShutdownTimeout bounds graceful shutdown of the HTTP server.
const ShutdownTimeout = 5 * time.Second

// Server serves a handler until its context is cancelled.
type Server struct {
	httpServer *http.Server
	listener   net.Listener
}

// Listen binds addr. Use ":0" to pick a free port.
func Listen(addr string, handler http.Handler) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return &Server{
		httpServer: &http.Server{Handler: handler, ReadHeaderTimeout: 10 * time.Second},
		listener:   ln,
	}, nil
}

// Addr returns the bound address.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Serve blocks until ctx is cancelled, then shuts the server down within
// ShutdownTimeout. It returns nil after a clean shutdown.
func (s *Server) Serve(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("🩺 HTTP server starting", "address", fmt.Sprintf("http://%s/health", s.Addr()))
		errCh <- s.httpServer.Serve(s.listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
	defer cancel()

	logger.Info("🩺 Shutting down HTTP server...")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	logger.Debug("HTTP server shut down gracefully.")
	return nil
}
