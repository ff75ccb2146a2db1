package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/louisbranch/plotgod/internal/platform/branding"
	"github.com/louisbranch/plotgod/internal/platform/timeouts"
	"github.com/louisbranch/plotgod/internal/prep"
	"github.com/louisbranch/plotgod/internal/storage/sqlite"
)

// Config holds the web server settings.
type Config struct {
	Port   int
	DBPath string
	OpenAI prep.Config
}

// Server owns the HTTP listener and the storage handle behind it.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	store      *sqlite.Store
}

// NewServer opens storage at the configured path and wires the handler.
// The caller must Close the server to release the store.
func NewServer(ctx context.Context, config Config) (*Server, error) {
	if config.Port <= 0 {
		return nil, fmt.Errorf("port must be positive, got %d", config.Port)
	}

	store, err := sqlite.Open(ctx, config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	httpAddr := fmt.Sprintf(":%d", config.Port)
	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           NewHandler(store, prep.NewClient(config.OpenAI)),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	return &Server{
		httpAddr:   httpAddr,
		httpServer: httpServer,
		store:      store,
	}, nil
}

// ListenAndServe blocks until the context is cancelled or the listener
// fails. On cancellation it drains in-flight requests within the
// shutdown timeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil || s.httpServer == nil {
		return errors.New("web server is not configured")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	log.Printf("%s web listening on %s", branding.AppName, s.httpAddr)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases the storage handle.
func (s *Server) Close() {
	if s == nil || s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		log.Printf("close store: %v", err)
	}
}
