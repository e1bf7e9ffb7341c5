package scoring

import "testing"

func TestScoreHazardousSubstances(t *testing.T) {
	tests := []struct {
		name        string
		product     Product
		want        float64
		wantNil     bool
		wantMissing HazardousMissing
	}{
		{
			name:    "no emissions and no substances",
			product: Product{FieldVOC: "Yes - No Emissions", FieldSubstances: "No"},
			want:    100,
		},
		{
			name:    "low emissions and no substances",
			product: Product{FieldVOC: "Yes - Low Emissions", FieldSubstances: "No"},
			want:    75,
		},
		{
			name:    "high emissions and substances present",
			product: Product{FieldVOC: "High Emissions", FieldSubstances: "Yes"},
			want:    0,
		},
		{
			name:    "case insensitive voc match",
			product: Product{FieldVOC: "certified NO EMISSIONS product", FieldSubstances: "No"},
			want:    100,
		},
		{
			name:    "no emissions wins over low in combined answer",
			product: Product{FieldVOC: "No emissions (previously low emissions)", FieldSubstances: "No"},
			want:    100,
		},
		{
			name:        "voc only covers its half",
			product:     Product{FieldVOC: "Low Emissions"},
			want:        25,
			wantMissing: HazardousMissing{Substances: true},
		},
		{
			name:        "substances only covers its half",
			product:     Product{FieldSubstances: "No"},
			want:        50,
			wantMissing: HazardousMissing{VOC: true},
		},
		{
			name:        "both unknown yields nil",
			product:     Product{},
			wantNil:     true,
			wantMissing: HazardousMissing{VOC: true, Substances: true},
		},
		{
			name:        "unsure substances flagged",
			product:     Product{FieldVOC: "No Emissions", FieldSubstances: "Unsure"},
			want:        50,
			wantMissing: HazardousMissing{Substances: true},
		},
		{
			name:        "unrecognized substances answer not flagged",
			product:     Product{FieldVOC: "No Emissions", FieldSubstances: "Mostly"},
			want:        50,
			wantMissing: HazardousMissing{},
		},
		{
			name:        "whitespace answers",
			product:     Product{FieldVOC: "   ", FieldSubstances: "  No  "},
			want:        50,
			wantMissing: HazardousMissing{VOC: true},
		},
		{
			name:        "non-string fields treated as unanswered",
			product:     Product{FieldVOC: 3, FieldSubstances: nil},
			wantNil:     true,
			wantMissing: HazardousMissing{VOC: true, Substances: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, missing := ScoreHazardousSubstances(tt.product)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("score = %v, want nil", *got)
				}
			} else {
				if got == nil {
					t.Fatalf("score = nil, want %v", tt.want)
				}
				if *got != tt.want {
					t.Errorf("score = %v, want %v", *got, tt.want)
				}
			}
			if missing != tt.wantMissing {
				t.Errorf("missing = %+v, want %+v", missing, tt.wantMissing)
			}
		})
	}
}
