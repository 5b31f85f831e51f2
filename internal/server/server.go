package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atakan/campusadmin/internal/bootstrap"
	"github.com/atakan/campusadmin/internal/db"
	"github.com/atakan/campusadmin/internal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// Server is the HTTP server for the campus administration API.
type Server struct {
	httpServer *http.Server
	database   *db.PostgresDB
}

// NewServer loads configuration, connects the database and wires the
// application together.
func NewServer(configPath string) (*Server, error) {
	cfg, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	database, err := bootstrap.SetupDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}

	deps := bootstrap.BuildDependencies(cfg, database)
	router := bootstrap.SetupRouter(deps)

	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + cfg.Server.Port,
			Handler: router,
		},
		database: database,
	}, nil
}

// Run starts the server and blocks until an interrupt signal arrives,
// then shuts down gracefully.
func (s *Server) Run() error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", s.httpServer.Addr).Msg("Starting HTTP server")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		s.database.Close()
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("Shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.database.Close()
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.database.Close()
	logger.Info().Msg("Server stopped")
	return nil
}
