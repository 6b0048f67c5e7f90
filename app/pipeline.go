package app

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"venturelens/domain/evaluation"
	"venturelens/domain/startup"
	"venturelens/internal"
	"venturelens/internal/errors"
	"venturelens/ports"
)

// PipelineInput selects the ingestion source for a run. Exactly one of
// Text, URL, Record, or Deck should be set.
type PipelineInput struct {
	Text   string
	URL    string
	Record *startup.Record
	Deck   *ports.Attachment
}

// Pipeline runs the six evaluation stages in order. A stage failure
// stops the run and is reported with the failing stage attached.
type Pipeline struct {
	ingestion *IngestionStage
	scoring   *ScoringStage
	critique  *CritiqueStage
	narrative *NarrativeStage
	benchmark *BenchmarkStage
	report    *ReportStage
	logger    *internal.Logger
}

func NewPipeline(
	ingestion *IngestionStage,
	scoring *ScoringStage,
	critique *CritiqueStage,
	narrative *NarrativeStage,
	benchmark *BenchmarkStage,
	report *ReportStage,
	logger *internal.Logger,
) *Pipeline {
	return &Pipeline{
		ingestion: ingestion,
		scoring:   scoring,
		critique:  critique,
		narrative: narrative,
		benchmark: benchmark,
		report:    report,
		logger:    logger.WithComponent("pipeline"),
	}
}

// StageAvailability reports, per stage, whether its dependencies are in
// place. Used by the health endpoint.
func (p *Pipeline) StageAvailability() map[evaluation.Stage]bool {
	return map[evaluation.Stage]bool{
		evaluation.StageIngestion: p.ingestion.Available(),
		evaluation.StageScoring:   p.scoring.Available(),
		evaluation.StageCritique:  p.critique.Available(),
		evaluation.StageNarrative: p.narrative.Available(),
		evaluation.StageBenchmark: p.benchmark.Available(),
		evaluation.StageReport:    p.report.Available(),
	}
}

// Run executes a full evaluation. Errors carry the failing stage so
// callers can report exactly where the run stopped.
func (p *Pipeline) Run(ctx context.Context, input PipelineInput) (*evaluation.Result, error) {
	result := &evaluation.Result{
		EvaluationID: uuid.NewString(),
		StartedAt:    time.Now().UTC(),
	}

	rec, err := p.ingest(ctx, input)
	if err != nil {
		return nil, p.fail(evaluation.StageIngestion, err)
	}
	result.Startup = rec
	p.logger.Info("evaluation %s ingested %s", result.EvaluationID, rec.DisplayName())

	if !p.scoring.Available() {
		return nil, p.fail(evaluation.StageScoring, errors.StageUnavailable(string(evaluation.StageScoring)))
	}
	scores, err := p.scoring.Score(ctx, rec)
	if err != nil {
		return nil, p.fail(evaluation.StageScoring, err)
	}
	result.Score = scores
	p.logger.Info("evaluation %s scored %.2f/10", result.EvaluationID, scores.Overall)

	if !p.critique.Available() {
		return nil, p.fail(evaluation.StageCritique, errors.StageUnavailable(string(evaluation.StageCritique)))
	}
	crit, err := p.critique.Analyze(ctx, rec, scores)
	if err != nil {
		return nil, p.fail(evaluation.StageCritique, err)
	}
	result.Critique = crit

	if !p.narrative.Available() {
		return nil, p.fail(evaluation.StageNarrative, errors.StageUnavailable(string(evaluation.StageNarrative)))
	}
	narr, err := p.narrative.Generate(ctx, rec)
	if err != nil {
		return nil, p.fail(evaluation.StageNarrative, err)
	}
	result.Narrative = narr

	if !p.benchmark.Available() {
		return nil, p.fail(evaluation.StageBenchmark, errors.StageUnavailable(string(evaluation.StageBenchmark)))
	}
	bench, err := p.benchmark.Analyze(ctx, rec)
	if err != nil {
		return nil, p.fail(evaluation.StageBenchmark, err)
	}
	result.Benchmark = bench

	result.CompletedAt = time.Now().UTC()
	if _, err := p.report.Build(ctx, result); err != nil {
		return nil, p.fail(evaluation.StageReport, err)
	}

	p.logger.Info("evaluation %s complete, report %s", result.EvaluationID, result.Artifact.ReportID)
	return result, nil
}

func (p *Pipeline) ingest(ctx context.Context, input PipelineInput) (*startup.Record, error) {
	switch {
	case input.Record != nil:
		return p.ingestion.FromRecord(input.Record)
	case strings.TrimSpace(input.URL) != "":
		return p.ingestion.FromURL(ctx, input.URL)
	case input.Deck != nil:
		return p.ingestion.FromDeck(ctx, input.Deck)
	case strings.TrimSpace(input.Text) != "":
		return p.ingestion.FromText(ctx, input.Text)
	default:
		return nil, errors.InvalidInput("evaluation needs text, a URL, a structured record, or a pitch deck")
	}
}

func (p *Pipeline) fail(stage evaluation.Stage, err error) error {
	p.logger.Error("%s stage failed: %v", stage, err)
	switch errors.GetCode(err) {
	case errors.CodeStageUnavailable, errors.CodeInvalidInput:
		// These carry their own HTTP semantics; wrapping would bury them.
		return err
	}
	return errors.StageFailed(string(stage), err)
}
