package critique

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSeverity(t *testing.T) {
	tests := []struct {
		in   string
		want Severity
	}{
		{"low", SeverityLow},
		{"Low", SeverityLow},
		{"MEDIUM", SeverityMedium},
		{"high", SeverityHigh},
		{"critical", SeverityHigh},
		{"severe", SeverityMedium},
		{"", SeverityMedium},
		{"  High  ", SeverityHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeSeverity(tt.in), "input %q", tt.in)
	}
}

func TestParseRiskLevel(t *testing.T) {
	tests := []struct {
		in   string
		want RiskLevel
		ok   bool
	}{
		{"Low", RiskLow, true},
		{"low_risk", RiskLow, true},
		{"moderate_risk", RiskModerate, true},
		{"Moderate", RiskModerate, true},
		{"high_risk", RiskHigh, true},
		{"very_high_risk", RiskHigh, true},
		{"catastrophic", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseRiskLevel(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		if ok {
			assert.Equal(t, tt.want, got, "input %q", tt.in)
		}
	}
}

func TestInferRiskLevel(t *testing.T) {
	assert.Equal(t, RiskLow, InferRiskLevel(nil))
	assert.Equal(t, RiskLow, InferRiskLevel([]RedFlag{
		{Severity: SeverityLow},
	}))
	assert.Equal(t, RiskModerate, InferRiskLevel([]RedFlag{
		{Severity: SeverityLow}, {Severity: SeverityMedium},
	}))
	assert.Equal(t, RiskHigh, InferRiskLevel([]RedFlag{
		{Severity: SeverityMedium}, {Severity: SeverityHigh}, {Severity: SeverityLow},
	}))
}
