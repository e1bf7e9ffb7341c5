package api

import (
	"net/http"
	"strconv"

	"ecorank/internal/catalog"
	"ecorank/internal/errors"
	"ecorank/internal/recommend"
	"ecorank/internal/scoring"
)

// handleFilters returns the filter metadata a frontend needs to build a
// search form: the distinct category names and the metric definitions.
func (s *Server) handleFilters(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap := s.snapshot()
	categories := []string{}
	if snap.catalog != nil {
		categories = snap.catalog.Categories()
	}

	response := map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"categories": categories,
			"metrics":    recommend.Metrics(),
		},
	}

	WriteJSON(w, response, http.StatusOK)
}

// handleListMaterials lists the scored catalog sorted by total score.
// Supports ?category= for an exact category filter and ?limit=.
func (s *Server) handleListMaterials(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap := s.snapshot()

	items := recommend.Rank(snap.catalog.Products(), recommend.Request{
		Category: r.URL.Query().Get("category"),
		Options:  s.cfg.ScoringOptions(),
	})

	if limit := QueryParamInt(r, "limit", 0); limit > 0 && limit < len(items) {
		items = items[:limit]
	}

	out := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		out = append(out, s.materialItem(item.Product, item.Scores))
	}

	response := map[string]interface{}{
		"success": true,
		"count":   len(out),
		"items":   out,
	}

	WriteJSON(w, response, http.StatusOK)
}

// handleMaterialDetail returns one scored material by its catalog id.
// Path: GET /api/material/:id
func (s *Server) handleMaterialDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	idStr := GetPathParam(r, "/api/material/")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		WriteCodedError(w, errors.New(errors.RequestInvalid, "material id must be an integer"))
		return
	}

	snap := s.snapshot()
	product, ok := snap.catalog.FindByID(id)
	if !ok {
		WriteCodedError(w, errors.New(errors.ProductNotFound, "Material not found"))
		return
	}

	set := scoring.ScoreProduct(product, s.cfg.ScoringOptions())

	response := map[string]interface{}{
		"success": true,
		"item":    s.materialItem(product, set),
	}

	WriteJSON(w, response, http.StatusOK)
}

// materialItem builds the response object shared by the detail, list, and
// recommendation endpoints. Raw catalog fields pass through untouched, so
// a null in the feed stays a null in the response.
func (s *Server) materialItem(p scoring.Product, set scoring.ScoreSet) map[string]interface{} {
	categories := catalog.CategoryNames(p)
	if categories == nil {
		categories = []string{}
	}

	certifications := p[scoring.FieldCertifications]
	if certifications == nil {
		certifications = []interface{}{}
	}

	// An unresolvable image stays an explicit null rather than "".
	var imageURL interface{}
	if url := catalog.ImageURL(p, s.cfg.Media.BaseURL); url != "" {
		imageURL = url
	}

	var hazardous interface{}
	if set.HazardousSubstances != nil {
		hazardous = *set.HazardousSubstances
	}

	return map[string]interface{}{
		"id":                            p["id"],
		"manufacturer_name":             p["manufacturer_name"],
		"product_name":                  p["product_name"],
		"product_code":                  p["product_code"],
		"product_description":           p["product_description"],
		"categories":                    categories,
		scoring.FieldHazardousScore:     hazardous,
		scoring.FieldHazardousMissing:   set.HazardousMissing,
		scoring.FieldCircularityScore:   set.Circularity,
		scoring.FieldCircularityMissing: set.CircularityMissing,
		scoring.FieldCertificationScore: set.Certification,
		scoring.FieldTotalScore:         set.Total,
		"total_label":                   recommend.GradeLabel(&set.Total),
		scoring.FieldVOC:                p[scoring.FieldVOC],
		scoring.FieldSubstances:         p[scoring.FieldSubstances],
		scoring.FieldRecyclable:         p[scoring.FieldRecyclable],
		scoring.FieldRecycledContent:    p[scoring.FieldRecycledContent],
		scoring.FieldReusable:           p[scoring.FieldReusable],
		scoring.FieldLifespan:           p[scoring.FieldLifespan],
		scoring.FieldIndependentLCA:     p[scoring.FieldIndependentLCA],
		scoring.FieldCertifications:     certifications,
		"image_url":                     imageURL,
	}
}
