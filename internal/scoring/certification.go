package scoring

import "strings"

// HighValueCertKeywords marks certification schemes with strict
// third-party verification. A certification whose name contains any of
// these, case-insensitively, counts as high-value. The GreenTag entries
// use an en dash, matching how the scheme writes its own rate names.
var HighValueCertKeywords = []string{
	"Environmental Product Declaration",
	"EPD",
	"Cradle to Cradle",
	"C2C",
	"Declare label",
	"GreenTag – Green Rate",
	"GreenTag – Health Rate",
	"GreenTag – LCA Rate",
	"GECA",
	"GREENGUARD",
	"Health Product Declaration",
	"HPD",
	"SCS Indoor Advantage",
}

// Certification point schedule: up to two high-value certifications at
// 2 points, up to three others at 1 point, plus 2 for an independent
// LCA. 9 raw points scale to 100.
const (
	highValueCertCap    = 2
	highValueCertPoints = 2
	otherCertCap        = 3
	otherCertPoints     = 1
	independentLCABonus = 2
	maxCertPoints       = 9
)

// ScoreCertifications scores the product's certification portfolio on a
// 0-100 scale. Blank certification names are skipped, extra entries past
// the caps earn nothing, and the independent_lca bonus requires the
// exact answer "Yes". Products with no certification data score 0.
func ScoreCertifications(p Product) float64 {
	var highValue, other int
	for _, name := range p.CertificationNames() {
		if isHighValueCert(name) {
			highValue++
		} else {
			other++
		}
	}
	if highValue > highValueCertCap {
		highValue = highValueCertCap
	}
	if other > otherCertCap {
		other = otherCertCap
	}

	points := highValue*highValueCertPoints + other*otherCertPoints
	if p.stringField(FieldIndependentLCA) == "Yes" {
		points += independentLCABonus
	}
	return round2(float64(points) / maxCertPoints * 100)
}

func isHighValueCert(name string) bool {
	lower := strings.ToLower(name)
	for _, keyword := range HighValueCertKeywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}
