package score

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Clamp forces a raw dimension score into [0,20]. The second return
// reports whether clamping changed the value.
func Clamp(v float64) (float64, bool) {
	if v < MinDimension {
		return MinDimension, true
	}
	if v > MaxDimension {
		return MaxDimension, true
	}
	return v, false
}

// ComputeOverall computes the weighted overall score from clamped
// dimension scores: each dimension is normalized to 0-10 (divide by 2)
// and dotted with the weight vector. Result is rounded to 2 decimals.
func ComputeOverall(breakdown map[Dimension]DimensionScore) float64 {
	normed := make([]float64, len(Dimensions))
	weights := make([]float64, len(Dimensions))
	for i, d := range Dimensions {
		normed[i] = breakdown[d].Score / 2.0
		weights[i] = Weights[d]
	}
	overall := floats.Dot(normed, weights)
	return math.Round(overall*100) / 100
}
