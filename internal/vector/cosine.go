// ABOUTME: Cosine similarity between embedding vectors
// ABOUTME: Dimension mismatch is a hard error; zero vectors score 0
package vector

import (
	"fmt"
	"math"

	"github.com/tweetsmith/tweetsmith/internal/models"
)

// CosineSimilarity computes dot(a,b) / (‖a‖·‖b‖), in [-1,1].
// Vectors of different lengths fail with ErrDimensionMismatch.
// If either vector is all-zero the similarity is defined as 0 rather
// than NaN, since a zero embedding carries no direction to compare.
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", models.ErrDimensionMismatch, len(a), len(b))
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
