package evaluation

import (
	"time"

	"venturelens/domain/benchmark"
	"venturelens/domain/critique"
	"venturelens/domain/narrative"
	"venturelens/domain/report"
	"venturelens/domain/score"
	"venturelens/domain/startup"
)

// Stage identifies one step of the evaluation pipeline. Stages run in the
// order listed and a failure stops the run at the failing stage.
type Stage string

const (
	StageIngestion Stage = "ingestion"
	StageScoring   Stage = "scoring"
	StageCritique  Stage = "critique"
	StageNarrative Stage = "narrative"
	StageBenchmark Stage = "benchmark"
	StageReport    Stage = "report"
)

// Stages in pipeline order.
var Stages = []Stage{
	StageIngestion,
	StageScoring,
	StageCritique,
	StageNarrative,
	StageBenchmark,
	StageReport,
}

// Result carries the output of every completed stage of one run.
type Result struct {
	EvaluationID string            `json:"evaluation_id"`
	Startup      *startup.Record   `json:"startup"`
	Score        *score.Report     `json:"score"`
	Critique     *critique.Report  `json:"critique"`
	Narrative    *narrative.Report `json:"narrative"`
	Benchmark    *benchmark.Report `json:"benchmark"`
	Artifact     *report.Artifact  `json:"report"`
	StartedAt    time.Time         `json:"started_at"`
	CompletedAt  time.Time         `json:"completed_at"`
}
