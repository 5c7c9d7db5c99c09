package ocr

import (
	"math"
	"testing"
)

func TestMeanConfidence(t *testing.T) {
	tests := []struct {
		name  string
		words []Word
		want  *float64
	}{
		{
			name:  "empty list is unknown, not zero",
			words: nil,
			want:  nil,
		},
		{
			name: "mean rounded to two decimals",
			words: []Word{
				{Text: "Total", Confidence: 0.9},
				{Text: "Tippable", Confidence: 0.8},
				{Text: "Hours", Confidence: 0.96},
			},
			want: floatPtr(0.89),
		},
		{
			name:  "single word",
			words: []Word{{Text: "12345", Confidence: 0.425}},
			want:  floatPtr(0.43),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MeanConfidence(tt.words)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("MeanConfidence = %v, want %v", got, tt.want)
			}
			if got != nil && math.Abs(*got-*tt.want) > 1e-9 {
				t.Errorf("MeanConfidence = %v, want %v", *got, *tt.want)
			}
		})
	}
}

func floatPtr(v float64) *float64 { return &v }
