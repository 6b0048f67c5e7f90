// Package benchmark defines the peer-comparison model and the shared
// numeric-string parser used to normalize metric values.
package benchmark

import "strings"

// Position is the overall ranking label relative to the sector.
type Position string

const (
	PositionBelowAverage Position = "Below Average"
	PositionAverage      Position = "Average"
	PositionAboveAverage Position = "Above Average"
)

// ParsePosition coerces free-form model output into the closed set,
// defaulting anything unrecognized to Average.
func ParsePosition(raw string) (Position, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "below average":
		return PositionBelowAverage, true
	case "average":
		return PositionAverage, true
	case "above average":
		return PositionAboveAverage, true
	default:
		return PositionAverage, false
	}
}

// MetricComparison compares one startup metric against the sector.
// The Numeric twins carry parsed forms of the display values; nil means
// the value was not parseable as a number.
type MetricComparison struct {
	Metric          string   `json:"metric"`
	StartupValue    string   `json:"startup_value"`
	SectorAvg       string   `json:"sector_avg"`
	Percentile      int      `json:"percentile"`
	Insight         string   `json:"insight"`
	StartupValueNum *float64 `json:"startup_value_numeric"`
	SectorAvgNum    *float64 `json:"sector_avg_numeric"`
}

// Report is the validated benchmark output. Comparisons is never empty.
type Report struct {
	Industry        string             `json:"industry"`
	Comparisons     []MetricComparison `json:"comparisons"`
	OverallPosition Position           `json:"overall_position"`
	Summary         string             `json:"summary"`
	AnalyzedAt      string             `json:"analyzed_at,omitempty"`
	Model           string             `json:"model,omitempty"`
}

// ClampPercentile forces a percentile into [0,100]; the second return
// reports whether clamping changed the value.
func ClampPercentile(p int) (int, bool) {
	if p < 0 {
		return 0, true
	}
	if p > 100 {
		return 100, true
	}
	return p, false
}
