package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venturelens/adapters/llm"
)

func testQuickInput() *QuickInput {
	return &QuickInput{
		StartupName: "Acme Robotics",
		Idea:        "Affordable robotic arms for mid-size warehouses",
		Team:        "Two founders with robotics backgrounds",
		Traction:    "Early pilots with three warehouses",
		Market:      "Industrial automation",
	}
}

func TestQuickScoreModelPath(t *testing.T) {
	resp := `{"idea": 8, "team": 7, "traction": 6, "market": 9}`
	q := NewQuickScorer(&llm.MockModelClient{Responses: []string{resp}}, testLogger())

	result, err := q.Score(context.Background(), testQuickInput())
	require.NoError(t, err)

	assert.Equal(t, methodModel, result.Method)
	// 8*.25 + 7*.30 + 6*.25 + 9*.20 = 7.4
	assert.InDelta(t, 7.4, result.OverallScore, 1e-9)
	assert.Equal(t, "Strong potential, worth pursuing", result.Recommendation)
	assert.GreaterOrEqual(t, result.Confidence, 0.5)
	assert.LessOrEqual(t, result.Confidence, 0.95)
}

func TestQuickScoreKeywordFallback(t *testing.T) {
	q := NewQuickScorer(&llm.MockModelClient{Unavailable: true}, testLogger())

	in := testQuickInput()
	in.Traction = "We have $2M ARR with strong revenue growth from paying customers"
	in.Team = "Serial founder with an exited company and deep experience"

	result, err := q.Score(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, methodKeyword, result.Method)
	assert.Greater(t, result.Scores["traction"], result.Scores["idea"])
	assert.GreaterOrEqual(t, result.Confidence, 0.5)
	assert.LessOrEqual(t, result.Confidence, confidenceMock)
}

func TestQuickScoreMissingDimensionFallsBack(t *testing.T) {
	resp := `{"idea": 8, "team": 7}`
	q := NewQuickScorer(&llm.MockModelClient{Responses: []string{resp}}, testLogger())

	result, err := q.Score(context.Background(), testQuickInput())
	require.NoError(t, err)
	assert.Equal(t, methodKeyword, result.Method)
}

func TestQuickScoreClampsModelValues(t *testing.T) {
	resp := `{"idea": 14, "team": -2, "traction": 5, "market": 5}`
	q := NewQuickScorer(&llm.MockModelClient{Responses: []string{resp}}, testLogger())

	result, err := q.Score(context.Background(), testQuickInput())
	require.NoError(t, err)
	assert.Equal(t, 10.0, result.Scores["idea"])
	assert.Equal(t, 0.0, result.Scores["team"])
}

func TestQuickScoreRejectsEmptyInput(t *testing.T) {
	q := NewQuickScorer(&llm.MockModelClient{}, testLogger())

	_, err := q.Score(context.Background(), nil)
	assert.Error(t, err)

	_, err = q.Score(context.Background(), &QuickInput{StartupName: "Acme"})
	assert.Error(t, err)
}

func TestQuickConfidenceBounds(t *testing.T) {
	// Identical scores keep the full method base.
	assert.InDelta(t, confidenceModel, quickConfidence([]float64{5, 5, 5, 5}, methodModel), 1e-9)

	// Wildly dispersed scores still respect the floor.
	c := quickConfidence([]float64{0, 10, 0, 10}, methodKeyword)
	assert.GreaterOrEqual(t, c, 0.5)
	assert.LessOrEqual(t, c, 0.95)
}
