package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"ecorank/internal/errors"
	"ecorank/internal/recommend"
	"ecorank/internal/scoring"
)

// recommendRequest is the POST /api/recommend body. Every field is
// optional; an empty body ranks the whole catalog with the configured
// weights.
type recommendRequest struct {
	Category          string                 `json:"category"`
	Profile           string                 `json:"profile"`
	RequiredMetrics   []string               `json:"required_metrics"`
	Weights           map[string]interface{} `json:"weights"`
	ReferenceLifespan *float64               `json:"reference_lifespan"`
	Limit             int                    `json:"limit"`
}

// handleRecommend ranks the catalog for a buyer: filter by category,
// enforce required metrics, score with caller-supplied weights, and
// sort by total score descending.
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var body recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && err != io.EOF {
		WriteCodedError(w, errors.Wrap(errors.RequestInvalid, "request body must be a JSON object", err))
		return
	}

	snap := s.snapshot()

	opts := s.cfg.ScoringOptions()
	required := body.RequiredMetrics

	if body.Profile != "" {
		prof, err := snap.profiles.Get(body.Profile)
		if err != nil {
			WriteCodedError(w, err)
			return
		}
		opts = prof.Apply(opts)
		required = append(append([]string{}, prof.Require...), body.RequiredMetrics...)
	}

	// Each weight falls back to its effective default independently, so
	// {"circularity": 1} keeps the other two weights untouched.
	if len(body.Weights) > 0 {
		opts.Weights = scoring.Weights{
			HazardousSubstances: coerceWeight(body.Weights[recommend.MetricHazardousSubstances], opts.Weights.HazardousSubstances),
			Circularity:         coerceWeight(body.Weights[recommend.MetricCircularity], opts.Weights.Circularity),
			Certification:       coerceWeight(body.Weights[recommend.MetricCertification], opts.Weights.Certification),
		}
	}

	if body.ReferenceLifespan != nil && *body.ReferenceLifespan > 0 {
		opts.ReferenceLifespan = *body.ReferenceLifespan
	}

	items := recommend.Rank(snap.catalog.Products(), recommend.Request{
		Category:        body.Category,
		RequiredMetrics: required,
		Options:         opts,
	})

	if body.Limit > 0 && body.Limit < len(items) {
		items = items[:body.Limit]
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

// coerceWeight converts a JSON weight value to a float64. Numbers and
// numeric strings are accepted; anything else falls back to def.
func coerceWeight(v interface{}, def float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f
		}
	}
	return def
}
