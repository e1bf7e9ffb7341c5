// Package api serves the scoring and recommendation HTTP API.
//
// The server holds an in-memory snapshot of the product catalog plus the
// profile and source registries; POST /api/reload swaps in a fresh
// snapshot without a restart. Scoring happens per request, so weight
// changes never require reindexing anything.
package api

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"ecorank/internal/catalog"
	"ecorank/internal/config"
	"ecorank/internal/logging"
	"ecorank/internal/profiles"
	"ecorank/internal/sources"
	"ecorank/internal/storage"
)

// Server represents the HTTP API server
type Server struct {
	router  *http.ServeMux
	server  *http.Server
	addr    string
	baseDir string
	logger  *logging.Logger
	cfg     *config.Config
	runs    *storage.RunRepository // nil when the run archive is disabled

	mu    sync.RWMutex
	state *catalogState

	startedAt time.Time
}

// catalogState is one immutable snapshot of everything loaded from disk.
// Reload builds a new one and swaps the pointer; handlers only ever read.
type catalogState struct {
	catalog  *catalog.Catalog
	profiles *profiles.File
	registry *sources.Registry
	feeds    []string
	loadedAt time.Time
}

// NewServer creates a new HTTP server instance and loads the first
// catalog snapshot.
func NewServer(baseDir string, cfg *config.Config, runs *storage.RunRepository, logger *logging.Logger) (*Server, error) {
	addr := cfg.Listen.Host + ":" + cfg.Listen.Port

	s := &Server{
		addr:      addr,
		baseDir:   baseDir,
		logger:    logger,
		cfg:       cfg,
		runs:      runs,
		router:    http.NewServeMux(),
		startedAt: time.Now().UTC(),
	}

	if err := s.Reload(); err != nil {
		return nil, err
	}

	s.registerRoutes()

	handler := s.applyMiddleware(s.router)
	s.server = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", map[string]interface{}{
		"addr": s.addr,
	})

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server", nil)

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}

	return nil
}

// ServeHTTP implements http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.server.Handler.ServeHTTP(w, r)
}

// Reload re-reads the source registry, the catalog feeds, and the
// profiles from disk, then swaps them in atomically. Requests in flight
// keep the old snapshot.
func (s *Server) Reload() error {
	registry, err := sources.Load(s.baseDir)
	if err != nil {
		return err
	}
	if err := registry.Validate(); err != nil {
		return err
	}

	paths := registry.Paths()
	if len(paths) == 0 {
		paths = []string{s.cfg.CatalogPath}
	}
	for i, p := range paths {
		paths[i] = s.resolvePath(p)
	}

	cat, err := catalog.LoadAll(paths...)
	if err != nil {
		return err
	}

	profs, err := profiles.Load(s.baseDir)
	if err != nil {
		return err
	}
	if err := profs.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.state = &catalogState{
		catalog:  cat,
		profiles: profs,
		registry: registry,
		feeds:    paths,
		loadedAt: time.Now().UTC(),
	}
	s.mu.Unlock()

	s.logger.Info("catalog loaded", map[string]interface{}{
		"products": cat.Len(),
		"feeds":    len(paths),
		"profiles": len(profs.Profiles),
	})

	return nil
}

// snapshot returns the current catalog state under a read lock.
func (s *Server) snapshot() *catalogState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == nil {
		return &catalogState{}
	}
	return s.state
}

// resolvePath anchors relative feed paths at the project root.
func (s *Server) resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.baseDir, path)
}

// applyMiddleware wraps the handler with middleware in the correct order
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	// Apply middleware in reverse order (last one wraps first)
	handler = AuthMiddleware(s.cfg.Auth, s.logger)(handler)
	handler = RecoveryMiddleware(s.logger)(handler)
	handler = LoggingMiddleware(s.logger)(handler)
	handler = RequestIDMiddleware()(handler)
	handler = CORSMiddleware()(handler)
	return handler
}
