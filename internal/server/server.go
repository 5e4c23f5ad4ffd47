package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/bree-jeune/ems-protocols-radio/internal/cache"
	"github.com/bree-jeune/ems-protocols-radio/internal/model"
	"github.com/bree-jeune/ems-protocols-radio/internal/store"
)

// Server is the read-only query service over a loaded record store. It
// never mutates records; ingestion runs replace the store file out of band
// and the server is restarted against the new file.
type Server struct {
	httpServer *http.Server
	store      *store.Store
	scripts    cache.Cache
	cacheTTL   time.Duration
	logger     *slog.Logger
}

// New creates a server over the given store
func New(cfg model.ServerConfig, st *store.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	s := &Server{
		store:    st,
		scripts:  cache.NewMemoryCache(ttl, ttl),
		cacheTTL: ttl,
		logger:   logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /protocols", s.handleListProtocols)
	mux.HandleFunc("POST /generate-segment", s.handleGenerateSegment)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

// Start serves until the context is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr, "records", s.store.Len())
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Handler exposes the mux for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
