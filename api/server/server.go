package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/omerfq/stitchline-backend/pkg/config"
	"github.com/omerfq/stitchline-backend/pkg/logger"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// Server wraps the http.Server lifecycle.
type Server struct {
	httpServer *http.Server
	logg       *logger.Logger
}

func New(cfg config.AppConfig, handler http.Handler, logg *logger.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		logg: logg,
	}
}

// Start blocks serving requests until the listener fails or Shutdown runs.
func (s *Server) Start(ctx context.Context) error {
	s.logg.Info(s.logg.WithField(ctx, "addr", s.httpServer.Addr), "http server listening")

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests within the shutdown timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	s.logg.Info(ctx, "http server shutting down")
	return s.httpServer.Shutdown(ctx)
}
