package scoring

import "testing"

func TestScoreCircularity(t *testing.T) {
	tests := []struct {
		name        string
		product     Product
		reference   float64
		want        float64
		wantMissing CircularityMissing
	}{
		{
			name: "all components known and perfect",
			product: Product{
				FieldRecycledContent: "100",
				FieldRecyclable:      "100",
				FieldLifespan:        40.0,
				FieldReusable:        "Yes",
			},
			want: 100,
		},
		{
			name:    "all components missing scores neutral",
			product: Product{},
			want:    50,
			wantMissing: CircularityMissing{
				RecycledContent: true,
				Recyclable:      true,
				Lifespan:        true,
				Reusable:        true,
			},
		},
		{
			name: "single known percentage carries material component",
			product: Product{
				FieldRecycledContent: "76",
				FieldLifespan:        "10",
				FieldReusable:        "No",
			},
			want:        50.4,
			wantMissing: CircularityMissing{Recyclable: true},
		},
		{
			name: "lifetime capped at reference lifespan",
			product: Product{
				FieldRecycledContent: "0",
				FieldRecyclable:      "0",
				FieldLifespan:        "200",
				FieldReusable:        "No",
			},
			want: 40,
		},
		{
			name: "unsure reuse counts half",
			product: Product{
				FieldRecycledContent: "0",
				FieldRecyclable:      "0",
				FieldLifespan:        0.0,
				FieldReusable:        "Unsure",
			},
			want: 10,
		},
		{
			name:        "lifespan only with custom reference",
			product:     Product{FieldLifespan: 10.0},
			reference:   40,
			want:        40,
			wantMissing: CircularityMissing{RecycledContent: true, Recyclable: true, Reusable: true},
		},
		{
			name:        "negative lifespan taken at face value",
			product:     Product{FieldLifespan: -20.0},
			want:        -10,
			wantMissing: CircularityMissing{RecycledContent: true, Recyclable: true, Reusable: true},
		},
		{
			name: "prose percentages treated as missing",
			product: Product{
				FieldRecycledContent: "Unknown",
				FieldRecyclable:      "50",
				FieldLifespan:        "20 years",
				FieldReusable:        "Maybe",
			},
			// material 0.5, lifetime neutral, reuse 0
			want:        40,
			wantMissing: CircularityMissing{RecycledContent: true, Lifespan: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reference := tt.reference
			if reference == 0 {
				reference = DefaultReferenceLifespan
			}
			got, missing := ScoreCircularity(tt.product, reference)
			if got != tt.want {
				t.Errorf("score = %v, want %v", got, tt.want)
			}
			if missing != tt.wantMissing {
				t.Errorf("missing = %+v, want %+v", missing, tt.wantMissing)
			}
		})
	}
}
