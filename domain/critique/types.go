// Package critique defines the red-flag model produced by the VC
// critique stage, with the closed severity and risk enumerations shared
// by the validator and the rule-based fallback.
package critique

import "strings"

// Severity grades a single red flag.
type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// NormalizeSeverity coerces free-form model output into the closed set.
// Model responses sometimes emit "critical"; that collapses into High.
// Anything unrecognized defaults to Medium.
func NormalizeSeverity(raw string) Severity {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "low":
		return SeverityLow
	case "medium", "moderate":
		return SeverityMedium
	case "high", "critical":
		return SeverityHigh
	default:
		return SeverityMedium
	}
}

// RiskLevel is the overall risk label for a critique.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
)

// ParseRiskLevel coerces free-form model output into the closed set.
// The false return means the value was unrecognized and the caller
// should infer a level from flag severities instead.
func ParseRiskLevel(raw string) (RiskLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "low", "low_risk":
		return RiskLow, true
	case "moderate", "moderate_risk", "medium":
		return RiskModerate, true
	case "high", "high_risk", "very_high_risk":
		return RiskHigh, true
	default:
		return "", false
	}
}

// RedFlag is one investor concern.
type RedFlag struct {
	Issue    string   `json:"issue"`
	Severity Severity `json:"severity"`
	Reason   string   `json:"reason"`
}

const (
	// MinFlags and MaxFlags bound the flag count of a model-produced
	// critique. The rule-based fallback may produce fewer.
	MinFlags = 3
	MaxFlags = 5
)

// Report is the validated critique output.
type Report struct {
	RedFlags   []RedFlag `json:"red_flags"`
	RiskLevel  RiskLevel `json:"overall_risk_level"`
	Summary    string    `json:"summary"`
	RuleBased  bool      `json:"rule_based,omitempty"`
	AnalyzedAt string    `json:"analyzed_at,omitempty"`
}

// InferRiskLevel derives an overall risk label from the worst flag
// severity present.
func InferRiskLevel(flags []RedFlag) RiskLevel {
	worst := RiskLow
	for _, f := range flags {
		switch f.Severity {
		case SeverityHigh:
			return RiskHigh
		case SeverityMedium:
			worst = RiskModerate
		}
	}
	return worst
}
