// ABOUTME: Unit tests for cosine similarity
// ABOUTME: Covers symmetry, self-similarity, orthogonality, and error cases
package vector

import (
	"errors"
	"math"
	"testing"

	"github.com/tweetsmith/tweetsmith/internal/models"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a        []float64
		b        []float64
		expected float64
		delta    float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1.0, 1e-9},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0.0, 1e-9},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1.0, 1e-9},
		{"45 degrees", []float64{1, 0}, []float64{1, 1}, math.Sqrt2 / 2, 1e-9},
		{"zero vector a", []float64{0, 0, 0}, []float64{1, 2, 3}, 0.0, 0},
		{"zero vector b", []float64{1, 2, 3}, []float64{0, 0, 0}, 0.0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CosineSimilarity(tt.a, tt.b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.expected) > tt.delta {
				t.Errorf("CosineSimilarity = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCosineSimilarity_Symmetric(t *testing.T) {
	a := []float64{0.3, -1.2, 4.5, 0.01}
	b := []float64{2.2, 0.9, -0.4, 1.7}

	ab, err := CosineSimilarity(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ba, err := CosineSimilarity(b, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ab != ba {
		t.Errorf("not symmetric: cos(a,b)=%v, cos(b,a)=%v", ab, ba)
	}
}

func TestCosineSimilarity_DimensionMismatch(t *testing.T) {
	_, err := CosineSimilarity([]float64{1, 2}, []float64{1, 2, 3})
	if !errors.Is(err, models.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}
