package recommend

import (
	"testing"

	"ecorank/internal/scoring"
)

func product(name, category string, fields scoring.Product) scoring.Product {
	p := scoring.Product{
		"product_name": name,
		"product_categories": []any{
			map[string]any{"category_name": category},
		},
	}
	for k, v := range fields {
		p[k] = v
	}
	return p
}

// strongProduct scores 100/100/0 under default weights (total 80).
func strongProduct(name, category string) scoring.Product {
	return product(name, category, scoring.Product{
		scoring.FieldVOC:             "Yes - No Emissions",
		scoring.FieldSubstances:      "No",
		scoring.FieldRecycledContent: "100",
		scoring.FieldRecyclable:      "100",
		scoring.FieldLifespan:        40.0,
		scoring.FieldReusable:        "Yes",
	})
}

func names(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Product["product_name"].(string)
	}
	return out
}

func TestRankSortsByTotalDescending(t *testing.T) {
	products := []scoring.Product{
		product("weak", "Flooring", scoring.Product{
			scoring.FieldVOC:        "High Emissions",
			scoring.FieldSubstances: "Yes",
		}),
		strongProduct("strong", "Flooring"),
		product("middle", "Flooring", scoring.Product{
			scoring.FieldVOC:        "Low Emissions",
			scoring.FieldSubstances: "No",
		}),
	}

	items := Rank(products, Request{})
	got := names(items)
	want := []string{"strong", "middle", "weak"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
	if items[0].Scores.Total <= items[1].Scores.Total {
		t.Errorf("totals not descending: %v then %v", items[0].Scores.Total, items[1].Scores.Total)
	}
}

func TestRankStableForEqualTotals(t *testing.T) {
	products := []scoring.Product{
		strongProduct("first", "Flooring"),
		strongProduct("second", "Flooring"),
		strongProduct("third", "Flooring"),
	}
	items := Rank(products, Request{})
	got := names(items)
	want := []string{"first", "second", "third"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("equal totals reordered: %v", got)
		}
	}
}

func TestRankCategoryFilter(t *testing.T) {
	products := []scoring.Product{
		strongProduct("floor", "Flooring"),
		strongProduct("wall", "Cladding"),
		strongProduct("both", "Flooring"),
	}

	items := Rank(products, Request{Category: "Flooring"})
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	for _, it := range items {
		if name := it.Product["product_name"]; name == "wall" {
			t.Errorf("category filter leaked %v", name)
		}
	}

	if items := Rank(products, Request{Category: "  "}); len(items) != 3 {
		t.Errorf("blank category should not filter, got %d items", len(items))
	}
	if items := Rank(products, Request{Category: "Roofing"}); len(items) != 0 {
		t.Errorf("unknown category matched %d items", len(items))
	}
}

func TestRankRequiredMetricThreshold(t *testing.T) {
	// CLSI 79.99: material 0.99975, lifetime neutral, reuse 1.
	justUnder := product("under", "Flooring", scoring.Product{
		scoring.FieldRecycledContent: "99.975",
		scoring.FieldRecyclable:      "99.975",
		scoring.FieldReusable:        "Yes",
	})
	// CLSI exactly 80.
	atThreshold := product("at", "Flooring", scoring.Product{
		scoring.FieldRecycledContent: "100",
		scoring.FieldRecyclable:      "100",
		scoring.FieldReusable:        "Yes",
	})

	items := Rank([]scoring.Product{justUnder, atThreshold}, Request{
		RequiredMetrics: []string{MetricCircularity},
	})
	if len(items) != 1 || items[0].Product["product_name"] != "at" {
		t.Fatalf("threshold filter kept %v, want only 'at'", names(items))
	}
	if items[0].Scores.Circularity != 80 {
		t.Errorf("kept circularity = %v, want 80", items[0].Scores.Circularity)
	}
}

func TestRankRequiredHazardousExcludesUnknown(t *testing.T) {
	unknown := product("unknown", "Flooring", scoring.Product{
		scoring.FieldRecycledContent: "100",
	})
	known := strongProduct("known", "Flooring")

	all := Rank([]scoring.Product{unknown, known}, Request{})
	if len(all) != 2 {
		t.Fatalf("unfiltered len = %d, want 2", len(all))
	}

	required := Rank([]scoring.Product{unknown, known}, Request{
		RequiredMetrics: []string{MetricHazardousSubstances},
	})
	if len(required) != 1 || required[0].Product["product_name"] != "known" {
		t.Errorf("required hazardous kept %v, want only 'known'", names(required))
	}
}

func TestRankIgnoresUnknownMetrics(t *testing.T) {
	products := []scoring.Product{strongProduct("a", "Flooring")}
	items := Rank(products, Request{RequiredMetrics: []string{"embodied_carbon", ""}})
	if len(items) != 1 {
		t.Errorf("unknown required metric filtered products: %d items", len(items))
	}
}

func TestRankAppliesOptions(t *testing.T) {
	p := strongProduct("a", "Flooring")
	def := Rank([]scoring.Product{p}, Request{})
	weighted := Rank([]scoring.Product{p}, Request{
		Options: scoring.Options{
			Weights: scoring.Weights{HazardousSubstances: 1},
		},
	})
	// hazardous 100 alone vs the default blend
	if weighted[0].Scores.Total != 100 {
		t.Errorf("weighted total = %v, want 100", weighted[0].Scores.Total)
	}
	if def[0].Scores.Total == weighted[0].Scores.Total {
		t.Error("custom weights had no effect")
	}
}

func TestGradeLabel(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	tests := []struct {
		name  string
		score *float64
		want  string
	}{
		{"nil", nil, "Missing data"},
		{"excellent boundary", f(80), "Excellent"},
		{"just under excellent", f(79.99), "Pass"},
		{"pass boundary", f(50), "Pass"},
		{"just under pass", f(49.99), "Fail"},
		{"zero", f(0), "Fail"},
		{"top", f(100), "Excellent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GradeLabel(tt.score); got != tt.want {
				t.Errorf("GradeLabel(%v) = %q, want %q", tt.score, got, tt.want)
			}
		})
	}
}

func TestMetrics(t *testing.T) {
	defs := Metrics()
	if len(defs) != 3 {
		t.Fatalf("len = %d, want 3", len(defs))
	}
	wantIDs := []string{MetricHazardousSubstances, MetricCircularity, MetricCertification}
	for i, want := range wantIDs {
		if defs[i].ID != want {
			t.Errorf("Metrics()[%d].ID = %q, want %q", i, defs[i].ID, want)
		}
		if defs[i].Label == "" || defs[i].Description == "" {
			t.Errorf("metric %q missing label or description", want)
		}
		if !IsMetric(want) {
			t.Errorf("IsMetric(%q) = false", want)
		}
	}
	if IsMetric("embodied_carbon") {
		t.Error("IsMetric accepted an unknown id")
	}
}
