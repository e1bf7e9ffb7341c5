// Package recommend ranks scored products for the recommendation API.
//
// Ranking is a pure function over a product list: filter by category,
// score with caller-supplied weights, drop products that fail a required
// metric, then stable-sort by total score descending so equal totals keep
// their catalog order.
package recommend

import (
	"sort"
	"strings"

	"ecorank/internal/catalog"
	"ecorank/internal/scoring"
)

// Metric identifiers accepted in filter requests and profiles.
const (
	MetricHazardousSubstances = "hazardous_substances"
	MetricCircularity         = "circularity"
	MetricCertification       = "certification"
)

// Grade thresholds on the 0-100 scale. A required metric must reach
// ExcellentThreshold, so 79.99 is excluded.
const (
	ExcellentThreshold = 80.0
	PassThreshold      = 50.0
)

// MetricDefinition describes one metric for filter UIs.
type MetricDefinition struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Metrics returns the metric definitions in display order.
func Metrics() []MetricDefinition {
	return []MetricDefinition{
		{
			ID:          MetricHazardousSubstances,
			Label:       "Hazardous substances (VOC + substances of concern)",
			Description: "Emphasizes low VOC emissions and minimized substances of concern.",
		},
		{
			ID:          MetricCircularity,
			Label:       "Circularity & Lifetime (CLSI)",
			Description: "Combines recycled input, recyclability, lifetime, and reusability.",
		},
		{
			ID:          MetricCertification,
			Label:       "Certifications (LCA & third-party)",
			Description: "Rewards independent LCA and high-value environmental certifications.",
		},
	}
}

// IsMetric reports whether id names a known metric.
func IsMetric(id string) bool {
	switch id {
	case MetricHazardousSubstances, MetricCircularity, MetricCertification:
		return true
	}
	return false
}

// GradeLabel maps a score to its display grade. A nil score reads
// "Missing data", which only the hazardous metric can produce.
func GradeLabel(score *float64) string {
	switch {
	case score == nil:
		return "Missing data"
	case *score >= ExcellentThreshold:
		return "Excellent"
	case *score >= PassThreshold:
		return "Pass"
	default:
		return "Fail"
	}
}

// Request carries the ranking parameters. The zero value ranks the whole
// catalog with default scoring options.
type Request struct {
	// Category keeps only products listing this category name,
	// exact match. Empty means no category filter.
	Category string
	// RequiredMetrics name metrics that must score at least
	// ExcellentThreshold. Unknown names are ignored. A required
	// hazardous-substances metric excludes products whose hazardous
	// score is unknown.
	RequiredMetrics []string
	// Options are passed to the scoring engine unchanged.
	Options scoring.Options
}

// Item pairs a catalog record with its scores.
type Item struct {
	Product scoring.Product
	Scores  scoring.ScoreSet
}

// Rank filters, scores, and sorts the product list. The input slice is
// never modified.
func Rank(products []scoring.Product, req Request) []Item {
	category := strings.TrimSpace(req.Category)

	items := make([]Item, 0, len(products))
	for _, p := range products {
		if category != "" && !hasCategory(p, category) {
			continue
		}
		set := scoring.ScoreProduct(p, req.Options)
		if !meetsRequired(set, req.RequiredMetrics) {
			continue
		}
		items = append(items, Item{Product: p, Scores: set})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Scores.Total > items[j].Scores.Total
	})
	return items
}

func hasCategory(p scoring.Product, name string) bool {
	for _, c := range catalog.CategoryNames(p) {
		if c == name {
			return true
		}
	}
	return false
}

func meetsRequired(set scoring.ScoreSet, required []string) bool {
	for _, metric := range required {
		switch metric {
		case MetricHazardousSubstances:
			if set.HazardousSubstances == nil || *set.HazardousSubstances < ExcellentThreshold {
				return false
			}
		case MetricCircularity:
			if set.Circularity < ExcellentThreshold {
				return false
			}
		case MetricCertification:
			if set.Certification < ExcellentThreshold {
				return false
			}
		}
	}
	return true
}
