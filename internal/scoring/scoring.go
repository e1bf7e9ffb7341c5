// Package scoring implements the sustainability scoring model for
// building-material products.
//
// Three independent sub-scores are computed from a product record and
// combined into a weighted total:
//
//   - hazardous substances (VOC emissions tier + substances of concern)
//   - circularity & lifetime index, CLSI (recycled input, recyclable
//     output, lifespan ratio, reusability)
//   - certification value (third-party certifications + independent LCA)
//
// Missing or malformed inputs never abort scoring. Each sub-scorer applies
// its own missing-data policy: the hazardous score excludes an unknown half
// entirely and may itself be unknown, the circularity index substitutes a
// neutral midpoint so it always yields a number, and the certification
// score simply counts nothing for absent inputs. The per-field policies
// are deliberate domain choices and must not be unified.
//
// All scoring is pure and synchronous: no I/O, no shared state, bounded
// constant time per product.
package scoring

// Weights controls how the three sub-scores combine into the total.
// Weights are applied as-is; they are not required to sum to 1 and are
// never normalized. The zero value is treated as unset and replaced by
// DefaultWeights.
type Weights struct {
	HazardousSubstances float64 `json:"hazardous_substances"`
	Circularity         float64 `json:"circularity"`
	Certification       float64 `json:"certification"`
}

// DefaultWeights returns the standard 0.4/0.4/0.2 weighting.
func DefaultWeights() Weights {
	return Weights{
		HazardousSubstances: 0.4,
		Circularity:         0.4,
		Certification:       0.2,
	}
}

// IsZero reports whether no weight has been set.
func (w Weights) IsZero() bool {
	return w.HazardousSubstances == 0 && w.Circularity == 0 && w.Certification == 0
}

// Options bundles the tunable scoring parameters. The zero value scores
// with DefaultWeights and DefaultReferenceLifespan.
type Options struct {
	Weights           Weights
	ReferenceLifespan float64
}

// DefaultOptions returns the standard scoring parameters.
func DefaultOptions() Options {
	return Options{
		Weights:           DefaultWeights(),
		ReferenceLifespan: DefaultReferenceLifespan,
	}
}

func (o Options) withDefaults() Options {
	if o.Weights.IsZero() {
		o.Weights = DefaultWeights()
	}
	if o.ReferenceLifespan <= 0 {
		o.ReferenceLifespan = DefaultReferenceLifespan
	}
	return o
}

// ScoreSet holds the derived scores for one product. HazardousSubstances
// is nil when both of its inputs were unknown; the other scores are always
// present. All values are rounded to 2 decimals and lie in [0, 100] for
// well-formed input.
type ScoreSet struct {
	HazardousSubstances *float64           `json:"hazardous_substances_score"`
	HazardousMissing    HazardousMissing   `json:"hazardous_substances_score_missing"`
	Circularity         float64            `json:"circularity_lifespan_score"`
	CircularityMissing  CircularityMissing `json:"circularity_lifespan_score_missing"`
	Certification       float64            `json:"certification_score"`
	Total               float64            `json:"total_score"`
}

// Names of the derived fields injected into annotated records.
const (
	FieldHazardousScore     = "hazardous_substances_score"
	FieldHazardousMissing   = "hazardous_substances_score_missing"
	FieldCircularityScore   = "circularity_lifespan_score"
	FieldCircularityMissing = "circularity_lifespan_score_missing"
	FieldCertificationScore = "certification_score"
	FieldTotalScore         = "total_score"
)

// ScoreProduct runs the three sub-scorers and combines them into a total.
// A nil hazardous score counts as 0 toward the total while staying nil in
// the returned set.
func ScoreProduct(p Product, opts Options) ScoreSet {
	opts = opts.withDefaults()

	hazardous, hazardousMissing := ScoreHazardousSubstances(p)
	circularity, circularityMissing := ScoreCircularity(p, opts.ReferenceLifespan)
	certification := ScoreCertifications(p)

	hazardousForTotal := 0.0
	if hazardous != nil {
		hazardousForTotal = *hazardous
	}

	total := hazardousForTotal*opts.Weights.HazardousSubstances +
		circularity*opts.Weights.Circularity +
		certification*opts.Weights.Certification

	return ScoreSet{
		HazardousSubstances: hazardous,
		HazardousMissing:    hazardousMissing,
		Circularity:         circularity,
		CircularityMissing:  circularityMissing,
		Certification:       certification,
		Total:               round2(total),
	}
}

// Annotate returns a shallow copy of the product with the six derived
// fields added. The input record is never mutated; unknown fields pass
// through untouched. A nil hazardous score is written as an explicit null.
func Annotate(p Product, s ScoreSet) Product {
	out := make(Product, len(p)+6)
	for k, v := range p {
		out[k] = v
	}

	if s.HazardousSubstances != nil {
		out[FieldHazardousScore] = *s.HazardousSubstances
	} else {
		out[FieldHazardousScore] = nil
	}
	out[FieldHazardousMissing] = s.HazardousMissing
	out[FieldCircularityScore] = s.Circularity
	out[FieldCircularityMissing] = s.CircularityMissing
	out[FieldCertificationScore] = s.Certification
	out[FieldTotalScore] = s.Total
	return out
}

// Enrich scores a product and returns the annotated copy in one step.
func Enrich(p Product, opts Options) Product {
	return Annotate(p, ScoreProduct(p, opts))
}
