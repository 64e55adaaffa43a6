package embedding

import "math"

// Cosine returns the cosine similarity between two vectors. A zero-norm
// vector on either side yields 0.0.
func Cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}
	return dot / denom
}

// Score computes clamped cosine similarities between query and each
// candidate, preserving candidate order. Scores are clipped to [0, 1].
func Score(query []float64, candidates [][]float64) []float64 {
	scores := make([]float64, len(candidates))
	for i, candidate := range candidates {
		scores[i] = Clamp01(Cosine(query, candidate))
	}
	return scores
}

// Clamp01 clips v to the [0, 1] range.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
