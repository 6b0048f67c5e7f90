package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"

	"venturelens/domain/benchmark"
	"venturelens/internal/errors"
)

const benchmarkSchema = `
CREATE TABLE IF NOT EXISTS benchmark_log (
	id               BIGSERIAL PRIMARY KEY,
	startup_name     TEXT NOT NULL,
	industry         TEXT NOT NULL,
	overall_position TEXT NOT NULL,
	comparisons      JSONB NOT NULL,
	summary          TEXT NOT NULL,
	analyzed_at      TIMESTAMPTZ NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// BenchmarkLogRepository implements ports.BenchmarkLog for PostgreSQL
type BenchmarkLogRepository struct {
	db *sqlx.DB
}

// NewBenchmarkLogRepository creates the repository and ensures its table exists.
func NewBenchmarkLogRepository(ctx context.Context, db *sqlx.DB) (*BenchmarkLogRepository, error) {
	if _, err := db.ExecContext(ctx, benchmarkSchema); err != nil {
		return nil, errors.Wrap(err, "failed to create benchmark_log table")
	}
	return &BenchmarkLogRepository{db: db}, nil
}

// RecordBenchmark appends one benchmark outcome to the audit log.
func (r *BenchmarkLogRepository) RecordBenchmark(ctx context.Context, startupName string, rep *benchmark.Report) error {
	comparisons, err := json.Marshal(rep.Comparisons)
	if err != nil {
		return errors.Wrap(err, "failed to encode comparisons")
	}

	analyzedAt := time.Now()
	if ts, err := time.Parse(time.RFC3339, rep.AnalyzedAt); err == nil {
		analyzedAt = ts
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO benchmark_log (startup_name, industry, overall_position, comparisons, summary, analyzed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, startupName, rep.Industry, rep.OverallPosition, comparisons, rep.Summary, analyzedAt)
	if err != nil {
		return errors.WithCode(errors.CodeDatabaseError, err)
	}
	return nil
}
