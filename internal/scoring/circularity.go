package scoring

import "math"

// DefaultReferenceLifespan is the lifespan baseline in years against
// which a product's expected lifespan is judged. 20 suits general
// building materials; structural products often warrant 25-30.
const DefaultReferenceLifespan = 20.0

// Fixed internal blend of the circularity components. These are part of
// the index definition and are not caller-tunable.
const (
	weightMaterial = 0.4
	weightLifetime = 0.4
	weightReuse    = 0.2

	neutralComponent = 0.5
)

// CircularityMissing flags which circularity inputs carried no usable
// value and were replaced by the neutral midpoint.
type CircularityMissing struct {
	RecycledContent bool `json:"recycled_content_missing"`
	Recyclable      bool `json:"recyclable_missing"`
	Lifespan        bool `json:"lifespan_missing"`
	Reusable        bool `json:"reusable_missing"`
}

// Any reports whether at least one input was missing.
func (m CircularityMissing) Any() bool {
	return m.RecycledContent || m.Recyclable || m.Lifespan || m.Reusable
}

// ScoreCircularity computes the circularity & lifetime index (CLSI) on a
// 0-100 scale. The index blends three components:
//
//   - material circularity: the mean of recycled input share and
//     recyclable output share, or whichever of the two is known
//   - lifetime utility: expected lifespan over referenceLifespan,
//     capped at 1
//   - reuse preference: "Yes" 1.0, "Unsure" 0.5, anything else 0.0
//
// A component with no usable data is replaced by the neutral midpoint
// 0.5 and flagged, so the index always yields a number. Percentages
// above 100 and negative lifespans are taken at face value, which can
// push the index outside 0-100; source data is expected to be sane.
func ScoreCircularity(p Product, referenceLifespan float64) (float64, CircularityMissing) {
	var missing CircularityMissing

	recycledIn, recycledInOK := ParsePercentage(p[FieldRecycledContent])
	if recycledInOK {
		recycledIn /= 100
	} else {
		missing.RecycledContent = true
	}

	recyclableOut, recyclableOutOK := ParsePercentage(p[FieldRecyclable])
	if recyclableOutOK {
		recyclableOut /= 100
	} else {
		missing.Recyclable = true
	}

	var lifetime float64
	lifespanYears, lifespanOK := ParsePercentage(p[FieldLifespan])
	if lifespanOK {
		lifetime = math.Min(1, lifespanYears/referenceLifespan)
	} else {
		missing.Lifespan = true
	}

	var reuse float64
	reuseKnown := true
	switch p.stringField(FieldReusable) {
	case "":
		reuseKnown = false
		missing.Reusable = true
	case "Yes":
		reuse = 1
	case "Unsure":
		reuse = 0.5
	default: // "No" and anything unrecognized
		reuse = 0
	}

	var material float64
	materialKnown := true
	switch {
	case recycledInOK && recyclableOutOK:
		material = (recycledIn + recyclableOut) / 2
	case recycledInOK:
		material = recycledIn
	case recyclableOutOK:
		material = recyclableOut
	default:
		materialKnown = false
	}

	if !materialKnown {
		material = neutralComponent
	}
	if !lifespanOK {
		lifetime = neutralComponent
	}
	if !reuseKnown {
		reuse = neutralComponent
	}

	index := weightMaterial*material + weightLifetime*lifetime + weightReuse*reuse
	return round2(100 * index), missing
}
