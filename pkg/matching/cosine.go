package matching

import "math"

// CosineSimilarity returns the cosine of the angle between two vectors in
// [-1,1], or false when either vector is missing, zero-length, mismatched,
// or degenerate. A false here means "similarity unavailable", which callers
// must keep distinct from a true low similarity.
func CosineSimilarity(a, b []float32) (float64, bool) {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0, false
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, false
	}

	cos := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	// Rounding can nudge the result a hair outside [-1,1].
	return math.Max(-1, math.Min(1, cos)), true
}

// RescaleCosine maps a cosine similarity from [-1,1] onto [0,1]. This is the
// convention every component score uses before aggregation.
func RescaleCosine(cos float64) float64 {
	return clamp01((cos + 1) / 2)
}
