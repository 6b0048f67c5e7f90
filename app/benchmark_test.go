package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venturelens/adapters/llm"
	"venturelens/domain/benchmark"
	"venturelens/internal/errors"
)

const goodBenchmarkResponse = `{
	"industry": "Robotics",
	"comparisons": [
		{"metric": "ARR", "startup_value": "$1.5M", "sector_avg": "$1.0M", "percentile": 70, "insight": "Ahead of peers"},
		{"metric": "Growth", "startup_value": "40%", "sector_avg": "25%", "percentile": 130, "insight": "Fast"},
		{"metric": "Team size", "startup_value": "unknown", "sector_avg": "12", "percentile": "n/a", "insight": "Thin data"}
	],
	"overall_position": "Above Average",
	"summary": "Ahead on revenue."
}`

func TestBenchmarkHappyPath(t *testing.T) {
	s := NewBenchmarkStage(&llm.MockModelClient{Responses: []string{goodBenchmarkResponse}}, nil, testLogger())

	rep, err := s.Analyze(context.Background(), testRecord())
	require.NoError(t, err)

	assert.Equal(t, "Robotics", rep.Industry)
	assert.Equal(t, benchmark.PositionAboveAverage, rep.OverallPosition)
	require.Len(t, rep.Comparisons, 3)

	arr := rep.Comparisons[0]
	require.NotNil(t, arr.StartupValueNum)
	assert.InDelta(t, 1_500_000, *arr.StartupValueNum, 1e-9)
	require.NotNil(t, arr.SectorAvgNum)
	assert.InDelta(t, 1_000_000, *arr.SectorAvgNum, 1e-9)
	assert.Equal(t, 70, arr.Percentile)

	// Percentile over 100 clamps.
	assert.Equal(t, 100, rep.Comparisons[1].Percentile)

	// Unparseable values leave the numeric twins nil and get the
	// midpoint percentile.
	thin := rep.Comparisons[2]
	assert.Nil(t, thin.StartupValueNum)
	assert.Equal(t, 50, thin.Percentile)
}

func TestBenchmarkEmptyComparisonsFails(t *testing.T) {
	resp := `{"industry": "x", "comparisons": [], "overall_position": "Average", "summary": "s"}`
	s := NewBenchmarkStage(&llm.MockModelClient{Responses: []string{resp}}, nil, testLogger())

	_, err := s.Analyze(context.Background(), testRecord())
	require.Error(t, err)
	assert.Equal(t, errors.CodeSchemaValidation, errors.GetCode(err))
}

func TestBenchmarkMissingTopKeyFails(t *testing.T) {
	resp := `{"industry": "x", "comparisons": [{"metric":"m","startup_value":"1","sector_avg":"2","percentile":50,"insight":"i"}], "summary": "s"}`
	s := NewBenchmarkStage(&llm.MockModelClient{Responses: []string{resp}}, nil, testLogger())

	_, err := s.Analyze(context.Background(), testRecord())
	require.Error(t, err)
	assert.Equal(t, errors.CodeSchemaValidation, errors.GetCode(err))
	assert.Contains(t, err.Error(), "overall_position")
}

func TestBenchmarkMissingComparisonKeyFails(t *testing.T) {
	resp := `{"industry": "x", "comparisons": [{"metric":"m","startup_value":"1","percentile":50,"insight":"i"}], "overall_position": "Average", "summary": "s"}`
	s := NewBenchmarkStage(&llm.MockModelClient{Responses: []string{resp}}, nil, testLogger())

	_, err := s.Analyze(context.Background(), testRecord())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sector_avg")
}

func TestBenchmarkInvalidPositionDefaults(t *testing.T) {
	resp := `{"industry": "x", "comparisons": [{"metric":"m","startup_value":"1","sector_avg":"2","percentile":50,"insight":"i"}], "overall_position": "stellar", "summary": "s"}`
	s := NewBenchmarkStage(&llm.MockModelClient{Responses: []string{resp}}, nil, testLogger())

	rep, err := s.Analyze(context.Background(), testRecord())
	require.NoError(t, err)
	assert.Equal(t, benchmark.PositionAverage, rep.OverallPosition)
}

func TestBenchmarkUnavailable(t *testing.T) {
	s := NewBenchmarkStage(&llm.MockModelClient{Unavailable: true}, nil, testLogger())

	_, err := s.Analyze(context.Background(), testRecord())
	require.Error(t, err)
	assert.Equal(t, errors.CodeStageUnavailable, errors.GetCode(err))
}
