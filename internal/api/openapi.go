package api

import (
	"net/http"

	"gopkg.in/yaml.v3"

	"ecorank/internal/version"
)

// handleOpenAPISpec returns the OpenAPI specification as JSON
func (s *Server) handleOpenAPISpec(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	spec := GenerateOpenAPISpec()
	WriteJSON(w, spec, http.StatusOK)
}

// handleOpenAPISpecYAML returns the OpenAPI specification as YAML
func (s *Server) handleOpenAPISpecYAML(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data, err := yaml.Marshal(GenerateOpenAPISpec())
	if err != nil {
		InternalError(w, "failed to encode specification")
		return
	}

	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// GenerateOpenAPISpec generates the OpenAPI specification for the API
func GenerateOpenAPISpec() map[string]interface{} {
	return map[string]interface{}{
		"openapi": "3.0.0",
		"info": map[string]interface{}{
			"title":       "ecorank HTTP API",
			"version":     version.Version,
			"description": "Sustainability scoring and recommendation API for building material catalogs",
		},
		"servers": []map[string]interface{}{
			{
				"url":         "http://localhost:8360",
				"description": "Local development server",
			},
		},
		"paths": map[string]interface{}{
			"/health": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Health check",
					"description": "Simple liveness check for load balancers",
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Server is healthy",
						},
					},
				},
			},
			"/ready": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Readiness check",
					"description": "Checks that the catalog is loaded and the run archive is reachable",
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Server is ready",
						},
						"503": map[string]interface{}{
							"description": "Server is not ready",
						},
					},
				},
			},
			"/status": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "System status",
					"description": "Returns catalog contents, effective scoring options, profiles, and run archive state",
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "System status",
						},
					},
				},
			},
			"/api/filters": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Filter metadata",
					"description": "Returns the distinct category names and the metric definitions for building a search form",
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Categories and metrics",
						},
					},
				},
			},
			"/api/materials": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "List scored materials",
					"description": "Scores the whole catalog with configured weights, sorted by total score descending",
					"parameters": []map[string]interface{}{
						{
							"name":        "category",
							"in":          "query",
							"required":    false,
							"description": "Keep only materials listing this category, exact match",
							"schema": map[string]interface{}{
								"type": "string",
							},
						},
						{
							"name":        "limit",
							"in":          "query",
							"required":    false,
							"description": "Maximum number of materials to return",
							"schema": map[string]interface{}{
								"type": "integer",
							},
						},
					},
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Scored material list",
						},
					},
				},
			},
			"/api/material/{id}": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Get material by ID",
					"description": "Returns one scored material with component scores, grade label, and raw catalog fields",
					"parameters": []map[string]interface{}{
						{
							"name":        "id",
							"in":          "path",
							"required":    true,
							"description": "Material identifier",
							"schema": map[string]interface{}{
								"type": "integer",
							},
						},
					},
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Material detail",
						},
						"404": map[string]interface{}{
							"description": "Material not found",
						},
					},
				},
			},
			"/api/recommend": map[string]interface{}{
				"post": map[string]interface{}{
					"summary":     "Rank materials",
					"description": "Filters by category, enforces required metrics at the excellent threshold, scores with caller-supplied weights, and sorts by total score descending",
					"requestBody": map[string]interface{}{
						"required": false,
						"content": map[string]interface{}{
							"application/json": map[string]interface{}{
								"schema": map[string]interface{}{
									"type": "object",
									"properties": map[string]interface{}{
										"category": map[string]interface{}{
											"type":        "string",
											"description": "Optional category filter, exact match",
										},
										"required_metrics": map[string]interface{}{
											"type":        "array",
											"items":       map[string]interface{}{"type": "string"},
											"description": "Metrics that must score at least 80; unknown names are ignored",
										},
										"weights": map[string]interface{}{
											"type":        "object",
											"description": "Weight per metric, e.g. {\"hazardous_substances\": 0.4}; numbers and numeric strings accepted",
										},
										"profile": map[string]interface{}{
											"type":        "string",
											"description": "Named scoring profile to apply before explicit weights",
										},
										"reference_lifespan": map[string]interface{}{
											"type":        "number",
											"description": "Lifespan baseline in years for the circularity score",
										},
										"limit": map[string]interface{}{
											"type":        "integer",
											"description": "Maximum number of materials to return",
										},
									},
								},
							},
						},
					},
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Ranked material list",
						},
						"400": map[string]interface{}{
							"description": "Malformed request body",
						},
						"404": map[string]interface{}{
							"description": "Named profile not found",
						},
					},
				},
			},
			"/api/runs": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "List scoring runs",
					"description": "Lists archived scoring runs, newest first",
					"parameters": []map[string]interface{}{
						{
							"name":        "limit",
							"in":          "query",
							"required":    false,
							"description": "Maximum number of runs to return",
							"schema": map[string]interface{}{
								"type": "integer",
							},
						},
					},
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Run list",
						},
						"503": map[string]interface{}{
							"description": "Run archive is disabled",
						},
					},
				},
			},
			"/api/runs/{id}": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Get scoring run by ID",
					"description": "Returns one archived scoring run with its options and top products",
					"parameters": []map[string]interface{}{
						{
							"name":        "id",
							"in":          "path",
							"required":    true,
							"description": "Run identifier",
							"schema": map[string]interface{}{
								"type": "string",
							},
						},
					},
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Run detail",
						},
						"404": map[string]interface{}{
							"description": "Run not found",
						},
					},
				},
			},
			"/api/sources": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "List catalog feeds",
					"description": "Lists the registered catalog feeds from the source registry",
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Feed list",
						},
					},
				},
			},
			"/api/reload": map[string]interface{}{
				"post": map[string]interface{}{
					"summary":     "Reload catalog",
					"description": "Re-reads the catalog feeds, profiles, and source registry from disk; on failure the previous snapshot stays live",
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Reload summary",
						},
						"422": map[string]interface{}{
							"description": "A feed or registry file failed validation",
						},
						"503": map[string]interface{}{
							"description": "A feed could not be read",
						},
					},
				},
			},
		},
		"components": map[string]interface{}{
			"securitySchemes": map[string]interface{}{
				"bearerAuth": map[string]interface{}{
					"type":        "http",
					"scheme":      "bearer",
					"description": "API token minted by 'ecorank token new'",
				},
			},
		},
	}
}
