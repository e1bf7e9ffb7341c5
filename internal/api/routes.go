package api

import (
	"net/http"

	"ecorank/internal/version"
)

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Health and readiness checks
	s.router.HandleFunc("/health", s.handleHealth)
	s.router.HandleFunc("/ready", s.handleReady)

	// System status
	s.router.HandleFunc("/status", s.handleStatus)

	// Filter metadata for frontends
	s.router.HandleFunc("/api/filters", s.handleFilters)

	// Materials
	s.router.HandleFunc("/api/materials", s.handleListMaterials)
	s.router.HandleFunc("/api/material/", s.handleMaterialDetail) // GET /api/material/:id

	// Recommendations
	s.router.HandleFunc("/api/recommend", s.handleRecommend)

	// Run archive
	s.router.HandleFunc("/api/runs", s.handleListRuns)
	s.router.HandleFunc("/api/runs/", s.handleGetRun) // GET /api/runs/:id

	// Feed registry
	s.router.HandleFunc("/api/sources", s.handleListSources)

	// Catalog reload
	s.router.HandleFunc("/api/reload", s.handleReload)

	// OpenAPI spec
	s.router.HandleFunc("/openapi.json", s.handleOpenAPISpec)
	s.router.HandleFunc("/openapi.yaml", s.handleOpenAPISpecYAML)

	// Root endpoint
	s.router.HandleFunc("/", s.handleRoot)
}

// handleRoot handles requests to the root path
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	// Only handle exact root path
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"name":    "ecorank HTTP API",
		"version": version.Version,
		"endpoints": []string{
			"GET /health - Health check",
			"GET /ready - Readiness check",
			"GET /status - Catalog and archive status",
			"GET /api/filters - Categories and metric definitions",
			"GET /api/materials?category=&limit= - List scored materials",
			"GET /api/material/:id - Scored material detail",
			"POST /api/recommend - Rank materials by weighted score",
			"GET /api/runs?limit= - List archived scoring runs",
			"GET /api/runs/:id - Archived scoring run detail",
			"GET /api/sources - List registered catalog feeds",
			"POST /api/reload - Reload catalog, profiles, and sources from disk",
			"GET /openapi.json - OpenAPI specification",
			"GET /openapi.yaml - OpenAPI specification (YAML)",
		},
		"documentation": "/openapi.json",
	}

	WriteJSON(w, response, http.StatusOK)
}
