package api

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"ecorank/internal/config"
	"ecorank/internal/scoring"
	"ecorank/internal/storage"
	"ecorank/internal/version"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// ReadyResponse represents the readiness check response
type ReadyResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]bool   `json:"checks"`
	Details   map[string]string `json:"details,omitempty"`
}

// StatusResponse represents the full status report
type StatusResponse struct {
	Status    string             `json:"status"`
	Timestamp time.Time          `json:"timestamp"`
	Version   string             `json:"version"`
	Uptime    string             `json:"uptime"`
	Catalog   *CatalogStatusInfo `json:"catalog,omitempty"`
	Scoring   *ScoringStatusInfo `json:"scoring,omitempty"`
	Profiles  *ProfileStatusInfo `json:"profiles,omitempty"`
	Archive   *ArchiveStatusInfo `json:"archive,omitempty"`
}

// CatalogStatusInfo describes the currently loaded catalog
type CatalogStatusInfo struct {
	Products   int      `json:"products"`
	Categories int      `json:"categories"`
	Feeds      []string `json:"feeds"`
	LoadedAt   string   `json:"loadedAt"`
}

// ScoringStatusInfo describes the effective scoring configuration
type ScoringStatusInfo struct {
	Weights           scoring.Weights `json:"weights"`
	ReferenceLifespan float64         `json:"referenceLifespan"`
}

// ProfileStatusInfo describes the loaded scoring profiles
type ProfileStatusInfo struct {
	Count int      `json:"count"`
	Names []string `json:"names,omitempty"`
}

// ArchiveStatusInfo describes the run archive
type ArchiveStatusInfo struct {
	Enabled           bool   `json:"enabled"`
	DatabasePath      string `json:"databasePath,omitempty"`
	DatabaseSizeBytes int64  `json:"databaseSizeBytes,omitempty"`
	Runs              int    `json:"runs,omitempty"`
}

// handleHealth responds to health check requests (simple liveness check)
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   version.Version,
	}

	WriteJSON(w, response, http.StatusOK)
}

// handleReady responds to readiness check requests.
// Readiness requires a loaded catalog; when the run archive is enabled
// it must be reachable as well.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	checks := make(map[string]bool)
	details := make(map[string]string)

	snap := s.snapshot()
	checks["catalog"] = snap.catalog != nil && snap.catalog.Len() > 0
	if !checks["catalog"] {
		details["catalog"] = "no products loaded"
	}

	if s.runs != nil {
		_, err := s.runs.Count()
		checks["archive"] = err == nil
		if err != nil {
			details["archive"] = err.Error()
		}
	}

	ready := true
	for _, ok := range checks {
		if !ok {
			ready = false
			break
		}
	}

	status := "ready"
	statusCode := http.StatusOK
	if !ready {
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	}

	response := ReadyResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Checks:    checks,
	}
	if len(details) > 0 {
		response.Details = details
	}

	WriteJSON(w, response, statusCode)
}

// handleStatus responds with a full status report: catalog contents,
// effective scoring options, loaded profiles, and the run archive.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap := s.snapshot()

	response := StatusResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   version.Info(),
		Uptime:    time.Since(s.startedAt).Round(time.Second).String(),
	}

	if snap.catalog != nil {
		response.Catalog = &CatalogStatusInfo{
			Products:   snap.catalog.Len(),
			Categories: len(snap.catalog.Categories()),
			Feeds:      snap.feeds,
			LoadedAt:   snap.loadedAt.Format(time.RFC3339),
		}
	}

	opts := s.cfg.ScoringOptions()
	response.Scoring = &ScoringStatusInfo{
		Weights:           opts.Weights,
		ReferenceLifespan: opts.ReferenceLifespan,
	}

	if snap.profiles != nil {
		response.Profiles = &ProfileStatusInfo{
			Count: len(snap.profiles.Profiles),
			Names: snap.profiles.Names(),
		}
	}

	archive := &ArchiveStatusInfo{Enabled: s.runs != nil}
	if s.runs != nil {
		dbPath := filepath.Join(s.baseDir, config.Dir, storage.DBFileName)
		archive.DatabasePath = dbPath
		if stat, err := os.Stat(dbPath); err == nil {
			archive.DatabaseSizeBytes = stat.Size()
		}
		if count, err := s.runs.Count(); err == nil {
			archive.Runs = count
		}
	}
	response.Archive = archive

	WriteJSON(w, response, http.StatusOK)
}
