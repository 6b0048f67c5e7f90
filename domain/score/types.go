// Package score holds the five-dimension scoring model used by the
// evaluation pipeline. Dimension scores live on a 0-20 scale; the
// weighted overall score is normalized to 0-10.
package score

// Dimension identifies one of the five rated axes.
type Dimension string

const (
	DimMarket   Dimension = "market"
	DimProduct  Dimension = "product"
	DimTeam     Dimension = "team"
	DimTraction Dimension = "traction"
	DimRisk     Dimension = "risk"
)

// Dimensions lists the axes in weighting order.
var Dimensions = []Dimension{DimMarket, DimProduct, DimTeam, DimTraction, DimRisk}

// Weights sum to 1.0. Team carries the highest weight.
var Weights = map[Dimension]float64{
	DimMarket:   0.20,
	DimProduct:  0.25,
	DimTeam:     0.30,
	DimTraction: 0.15,
	DimRisk:     0.10,
}

const (
	// MinDimension and MaxDimension bound a raw dimension score.
	MinDimension = 0.0
	MaxDimension = 20.0
)

// DimensionScore pairs a rated value with the model's reasoning.
type DimensionScore struct {
	Score     float64 `json:"score"`
	Reasoning string  `json:"reasoning"`
}

// Report is the validated output of the scoring stage.
type Report struct {
	StartupName string                       `json:"startup_name"`
	Overall     float64                      `json:"overall_score"`
	Weights     map[Dimension]float64        `json:"weights"`
	Breakdown   map[Dimension]DimensionScore `json:"breakdown"`
	Model       string                       `json:"model,omitempty"`
}

// DimensionOn10 returns a dimension score normalized to the 0-10 scale,
// the scale the critique fallback thresholds are written against.
func (r Report) DimensionOn10(d Dimension) float64 {
	return r.Breakdown[d].Score / 2.0
}
