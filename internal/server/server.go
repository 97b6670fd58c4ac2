package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Timeouts of the public HTTP servers. Writes allow for yt-dlp plus a model call.
const (
	readTimeout     = 10 * time.Second
	writeTimeout    = 3 * time.Minute
	idleTimeout     = time.Minute
	shutdownTimeout = 5 * time.Second
)

// Server wraps one http.Server with its logger
type Server struct {
	name   string
	logger *zap.Logger
	srv    *http.Server
}

// New creates a server called name that listens on ":"+port.
func New(name, port string, handler http.Handler, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		name:   name,
		logger: logger.With(zap.String("server", name)),
		srv: &http.Server{
			Addr:         ":" + port,
			Handler:      handler,
			IdleTimeout:  idleTimeout,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
// It returns nil after a clean shutdown.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server starting", zap.String("addr", s.srv.Addr))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	return GracefulShutdown(s.srv, s.logger, shutdownTimeout)
}
