package ports

import (
	"context"

	"venturelens/domain/benchmark"
	"venturelens/domain/critique"
)

// CritiqueLog persists critique outcomes for later review. Recording is
// best effort: a failed write never fails the stage that produced the
// critique.
type CritiqueLog interface {
	RecordCritique(ctx context.Context, startupName string, rep *critique.Report) error
}

// BenchmarkLog persists benchmark outcomes for later review, with the
// same best-effort contract as CritiqueLog.
type BenchmarkLog interface {
	RecordBenchmark(ctx context.Context, startupName string, rep *benchmark.Report) error
}
