package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venturelens/adapters/llm"
	"venturelens/adapters/render"
	"venturelens/domain/evaluation"
	"venturelens/internal/errors"
	"venturelens/ports"
)

const goodCommentaryResponse = `{
	"executive_summary": "Acme builds robots.",
	"key_highlights": ["Strong team"],
	"investment_thesis": "Buy.",
	"risk_summary": "Burn.",
	"recommendation": "Promising"
}`

func newTestPipeline(t *testing.T, model ports.ModelClient) *Pipeline {
	t.Helper()
	renderer, err := render.NewHTMLRenderer()
	require.NoError(t, err)

	logger := testLogger()
	return NewPipeline(
		NewIngestionStage(model, nil, logger),
		NewScoringStage(model, logger),
		NewCritiqueStage(model, nil, logger),
		NewNarrativeStage(model, nil, time.Hour, logger),
		NewBenchmarkStage(model, nil, logger),
		NewReportStage(model, renderer, render.NewWorkbookWriter(), t.TempDir(), "", logger),
		logger,
	)
}

func TestPipelineRunEndToEnd(t *testing.T) {
	mock := &llm.MockModelClient{Responses: []string{
		goodIngestionResponse,
		goodScoreResponse,
		goodCritiqueResponse,
		goodNarrativeResponse,
		goodBenchmarkResponse,
		goodCommentaryResponse,
	}}
	p := newTestPipeline(t, mock)

	result, err := p.Run(context.Background(), PipelineInput{Text: "Acme Robotics builds robotic arms."})
	require.NoError(t, err)

	assert.NotEmpty(t, result.EvaluationID)
	require.NotNil(t, result.Startup)
	assert.Equal(t, "Acme Robotics", result.Startup.Name)
	require.NotNil(t, result.Score)
	assert.InDelta(t, 7.2, result.Score.Overall, 1e-9)
	require.NotNil(t, result.Critique)
	require.NotNil(t, result.Narrative)
	require.NotNil(t, result.Benchmark)
	require.NotNil(t, result.Artifact)
	assert.NotEmpty(t, result.Artifact.ReportID)
	assert.False(t, result.CompletedAt.IsZero())

	assert.Len(t, mock.Requests, 6)
}

func TestPipelineStopsAtScoringFailure(t *testing.T) {
	mock := &llm.MockModelClient{Responses: []string{
		goodIngestionResponse,
		`{"market": {"score": "broken"}}`,
	}}
	p := newTestPipeline(t, mock)

	_, err := p.Run(context.Background(), PipelineInput{Text: "Acme Robotics builds robotic arms."})
	require.Error(t, err)
	assert.Equal(t, errors.CodeStageFailed, errors.GetCode(err))
	assert.Contains(t, err.Error(), "scoring stage failed")
	// No stage past scoring runs.
	assert.Len(t, mock.Requests, 2)
}

func TestPipelineUnavailableModel(t *testing.T) {
	p := newTestPipeline(t, &llm.MockModelClient{Unavailable: true})

	// Ingestion degrades heuristically; scoring is the first hard stop.
	_, err := p.Run(context.Background(), PipelineInput{Text: "Acme Robotics builds robotic arms."})
	require.Error(t, err)
	assert.Equal(t, errors.CodeStageUnavailable, errors.GetCode(err))
}

func TestPipelineRejectsEmptyInput(t *testing.T) {
	p := newTestPipeline(t, &llm.MockModelClient{})

	_, err := p.Run(context.Background(), PipelineInput{})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestPipelineStageAvailability(t *testing.T) {
	p := newTestPipeline(t, &llm.MockModelClient{Unavailable: true})

	availability := p.StageAvailability()
	assert.False(t, availability[evaluation.StageScoring])
	assert.False(t, availability[evaluation.StageNarrative])
	// Report artifacts render without a model.
	assert.True(t, availability[evaluation.StageReport])
}
