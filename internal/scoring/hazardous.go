package scoring

import "strings"

// HazardousMissing flags which half of the hazardous-substances inputs
// carried no usable answer.
type HazardousMissing struct {
	VOC        bool `json:"voc_missing"`
	Substances bool `json:"substances_missing"`
}

// Any reports whether at least one input was missing.
func (m HazardousMissing) Any() bool {
	return m.VOC || m.Substances
}

// ScoreHazardousSubstances scores the volatile_organic_compounds and
// substances_of_concern fields, each worth half of a 0-100 score.
//
// VOC answers are matched case-insensitively by emission tier: text
// containing "no emissions" earns 2 of 2 points, "low emissions" 1,
// "high emissions" 0, checked in that order. The substances answer must
// match exactly: "No" earns the full second half, "Yes" earns nothing.
//
// A half with no recognized answer contributes zero, and when both
// halves are unknown the score itself is nil rather than 0. "Unsure"
// and empty substances answers are flagged as missing data; any other
// unrecognized answer scores nothing without raising a flag.
func ScoreHazardousSubstances(p Product) (*float64, HazardousMissing) {
	var missing HazardousMissing

	voc := p.stringField(FieldVOC)
	vocLower := strings.ToLower(voc)
	var vocPoints float64
	vocKnown := true
	switch {
	case strings.Contains(vocLower, "no emissions") || voc == "Yes - No Emissions":
		vocPoints = 2
	case strings.Contains(vocLower, "low emissions") || voc == "Yes - Low Emissions":
		vocPoints = 1
	case strings.Contains(vocLower, "high emissions"):
		vocPoints = 0
	default:
		vocKnown = false
		missing.VOC = true
	}

	var substancePoints float64
	substancesKnown := false
	switch p.stringField(FieldSubstances) {
	case "No":
		substancePoints = 1
		substancesKnown = true
	case "Yes":
		substancesKnown = true
	case "Unsure", "":
		missing.Substances = true
	}

	if !vocKnown && !substancesKnown {
		return nil, missing
	}
	var score float64
	if vocKnown {
		score += vocPoints / 2 * 50
	}
	if substancesKnown {
		score += substancePoints * 50
	}
	score = round2(score)
	return &score, missing
}
