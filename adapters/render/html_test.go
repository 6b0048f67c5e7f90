package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venturelens/domain/benchmark"
	"venturelens/domain/critique"
	"venturelens/domain/evaluation"
	"venturelens/domain/narrative"
	"venturelens/domain/report"
	"venturelens/domain/score"
	"venturelens/domain/startup"
)

func sampleResult() *evaluation.Result {
	return &evaluation.Result{
		EvaluationID: "eval-123",
		Startup:      &startup.Record{Name: "Acme Robotics", Sector: "Robotics", Stage: "Series A"},
		Score: &score.Report{
			StartupName: "Acme Robotics",
			Overall:     7.25,
			Weights:     score.Weights,
			Breakdown: map[score.Dimension]score.DimensionScore{
				score.DimMarket:   {Score: 15, Reasoning: "Large addressable market"},
				score.DimProduct:  {Score: 14, Reasoning: "Working prototype"},
				score.DimTeam:     {Score: 16, Reasoning: "Experienced founders"},
				score.DimTraction: {Score: 12, Reasoning: "Early pilots"},
				score.DimRisk:     {Score: 13, Reasoning: "Hardware margins"},
			},
		},
		Critique: &critique.Report{
			RedFlags: []critique.RedFlag{
				{Issue: "Capital intensity", Severity: critique.SeverityHigh, Reason: "Hardware production requires heavy upfront spend"},
				{Issue: "Single customer", Severity: critique.SeverityMedium, Reason: "Revenue concentrated in one pilot"},
				{Issue: "Long sales cycle", Severity: critique.SeverityLow, Reason: "Industrial buyers move slowly"},
			},
			RiskLevel: critique.RiskHigh,
			Summary:   "Execution risk dominates.",
		},
		Narrative: &narrative.Report{
			Vision:          "Robots for every warehouse.",
			Differentiation: "Cheaper arms.",
			Timing:          "Labor shortage.",
			Tagline:         "Automation that pays for itself.",
		},
		Benchmark: &benchmark.Report{
			Industry:        "Robotics",
			OverallPosition: benchmark.PositionAboveAverage,
			Comparisons: []benchmark.MetricComparison{
				{Metric: "ARR", StartupValue: "$1.5M", SectorAvg: "$1.0M", Percentile: 70, Insight: "Ahead of peers"},
			},
			Summary: "Above the pack on revenue.",
		},
		Artifact:    &report.Artifact{ReportID: "rep-1"},
		CompletedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestHTMLRendererRendersAllSections(t *testing.T) {
	r, err := NewHTMLRenderer()
	require.NoError(t, err)

	commentary := &report.Commentary{
		ExecutiveSummary: "Acme builds **robotic arms**.",
		KeyHighlights:    []string{"Strong team", "Early revenue"},
		InvestmentThesis: "Buy the dip.",
		RiskSummary:      "Watch the burn.",
		Recommendation:   "Proceed with Caution",
	}

	out, err := r.Render(sampleResult(), commentary)
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "Acme Robotics")
	assert.Contains(t, html, "7.25")
	assert.Contains(t, html, "Capital intensity")
	assert.Contains(t, html, "Automation that pays for itself.")
	assert.Contains(t, html, "Robotics")
	assert.Contains(t, html, "<strong>robotic arms</strong>")
	assert.Contains(t, html, "Proceed with Caution")
	assert.Contains(t, html, "rep-1")
}

func TestHTMLRendererNilCommentary(t *testing.T) {
	r, err := NewHTMLRenderer()
	require.NoError(t, err)

	out, err := r.Render(sampleResult(), nil)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Acme Robotics")
}

func TestHTMLRendererRejectsEmptyResult(t *testing.T) {
	r, err := NewHTMLRenderer()
	require.NoError(t, err)

	_, err = r.Render(nil, nil)
	assert.Error(t, err)
}
