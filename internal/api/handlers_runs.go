package api

import (
	"net/http"
	"time"

	"ecorank/internal/errors"
	"ecorank/internal/storage"
)

// handleListRuns lists archived scoring runs, newest first.
// Path: GET /api/runs?limit=
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if s.runs == nil {
		WriteCodedError(w, errors.New(errors.StorageUnavailable, "run archive is disabled"))
		return
	}

	limit := QueryParamInt(r, "limit", storage.DefaultListLimit)
	runs, err := s.runs.List(limit)
	if err != nil {
		WriteCodedError(w, err)
		return
	}

	response := map[string]interface{}{
		"success": true,
		"count":   len(runs),
		"runs":    runs,
	}

	WriteJSON(w, response, http.StatusOK)
}

// handleGetRun returns one archived scoring run by its id.
// Path: GET /api/runs/:id
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if s.runs == nil {
		WriteCodedError(w, errors.New(errors.StorageUnavailable, "run archive is disabled"))
		return
	}

	id := GetPathParam(r, "/api/runs/")
	if id == "" {
		WriteCodedError(w, errors.New(errors.RequestInvalid, "run id required"))
		return
	}

	run, err := s.runs.Get(id)
	if err != nil {
		WriteCodedError(w, err)
		return
	}

	response := map[string]interface{}{
		"success": true,
		"run":     run,
	}

	WriteJSON(w, response, http.StatusOK)
}

// handleListSources lists the registered catalog feeds.
func (s *Server) handleListSources(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap := s.snapshot()

	srcs := make([]map[string]interface{}, 0)
	if snap.registry != nil {
		for _, src := range snap.registry.Sources {
			tags := src.Tags
			if tags == nil {
				tags = []string{}
			}
			srcs = append(srcs, map[string]interface{}{
				"uid":      src.UID,
				"name":     src.Name,
				"path":     src.Path,
				"tags":     tags,
				"added_at": src.AddedAt.Format(time.RFC3339),
			})
		}
	}

	response := map[string]interface{}{
		"success": true,
		"count":   len(srcs),
		"sources": srcs,
	}

	WriteJSON(w, response, http.StatusOK)
}

// handleReload re-reads the catalog, profiles, and source registry from
// disk. On failure the previous snapshot stays live.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := s.Reload(); err != nil {
		WriteCodedError(w, err)
		return
	}

	snap := s.snapshot()
	response := map[string]interface{}{
		"success":     true,
		"products":    snap.catalog.Len(),
		"feeds":       len(snap.feeds),
		"profiles":    len(snap.profiles.Profiles),
		"reloaded_at": snap.loadedAt.Format(time.RFC3339),
	}

	WriteJSON(w, response, http.StatusOK)
}
