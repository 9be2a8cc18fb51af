package mockapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"
)

// DefaultAddr matches the real backend's listen address.
const DefaultAddr = "127.0.0.1:8000"

const shutdownTimeout = 5 * time.Second

// Server runs a Backend over HTTP with request logging and graceful
// shutdown.
type Server struct {
	backend *Backend
	http    *http.Server
}

// NewServer creates a server for backend. An empty addr falls back to
// $CHAINBOARD_MOCK_ADDR, then DefaultAddr.
func NewServer(backend *Backend, addr string) *Server {
	if addr == "" {
		addr = os.Getenv("CHAINBOARD_MOCK_ADDR")
	}
	if addr == "" {
		addr = DefaultAddr
	}
	return &Server{
		backend: backend,
		http: &http.Server{
			Addr:    addr,
			Handler: logRequests(backend.Handler()),
		},
	}
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.http.Addr
}

// Run serves until ctx is canceled or the listener fails, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("mock backend listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		slog.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}

// logRequests logs each request at debug level.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start))
	})
}
