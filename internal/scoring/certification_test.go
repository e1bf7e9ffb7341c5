package scoring

import (
	"reflect"
	"testing"
)

func certs(names ...string) []any {
	list := make([]any, 0, len(names))
	for _, n := range names {
		list = append(list, map[string]any{"certification": n})
	}
	return list
}

func TestScoreCertifications(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		want    float64
	}{
		{
			name:    "no certification data",
			product: Product{},
			want:    0,
		},
		{
			name:    "independent lca alone",
			product: Product{FieldIndependentLCA: "Yes"},
			want:    22.22,
		},
		{
			name:    "lca answer must match exactly",
			product: Product{FieldIndependentLCA: "yes"},
			want:    0,
		},
		{
			name:    "three other certifications",
			product: Product{FieldCertifications: certs("ISO 14001", "FSC", "PEFC")},
			want:    33.33,
		},
		{
			name: "one high value plus lca",
			product: Product{
				FieldCertifications: certs("Type III EPD registered"),
				FieldIndependentLCA: "Yes",
			},
			want: 44.44,
		},
		{
			name:    "two high value and one other",
			product: Product{FieldCertifications: certs("Cradle to Cradle Certified", "Declare label", "ISO 14001")},
			want:    55.56,
		},
		{
			name: "caps limit extra certifications",
			product: Product{
				FieldCertifications: certs(
					"EPD", "C2C", "HPD", "GECA",
					"ISO 14001", "ISO 9001", "FSC", "PEFC", "BREEAM",
				),
				FieldIndependentLCA: "Yes",
			},
			want: 100,
		},
		{
			name:    "greentag rate matched with en dash",
			product: Product{FieldCertifications: certs("Global GreenTag – Green Rate Level A")},
			want:    22.22,
		},
		{
			name:    "keyword match is case insensitive",
			product: Product{FieldCertifications: certs("greenguard gold")},
			want:    22.22,
		},
		{
			name:    "blank names skipped",
			product: Product{FieldCertifications: certs("", "   ", "  EPD  ")},
			want:    22.22,
		},
		{
			name:    "certifications not a list",
			product: Product{FieldCertifications: "EPD"},
			want:    0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScoreCertifications(tt.product); got != tt.want {
				t.Errorf("score = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCertificationNames(t *testing.T) {
	p := Product{
		FieldCertifications: []any{
			map[string]any{"certification": " EPD ", "issuer": "EPD Australasia"},
			map[string]any{"certification": ""},
			map[string]any{"note": "no name key"},
			"not an object",
			map[string]any{"certification": "FSC"},
		},
	}
	got := p.CertificationNames()
	want := []string{"EPD", "FSC"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CertificationNames() = %v, want %v", got, want)
	}

	typed := Product{
		FieldCertifications: []map[string]any{
			{"certification": "GECA"},
		},
	}
	if got := typed.CertificationNames(); !reflect.DeepEqual(got, []string{"GECA"}) {
		t.Errorf("CertificationNames() = %v, want [GECA]", got)
	}

	if got := (Product{}).CertificationNames(); got != nil {
		t.Errorf("CertificationNames() on empty product = %v, want nil", got)
	}
}
