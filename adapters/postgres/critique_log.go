package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"

	"venturelens/domain/critique"
	"venturelens/internal/errors"
)

const critiqueSchema = `
CREATE TABLE IF NOT EXISTS critique_log (
	id           BIGSERIAL PRIMARY KEY,
	startup_name TEXT NOT NULL,
	risk_level   TEXT NOT NULL,
	flag_count   INT NOT NULL,
	rule_based   BOOLEAN NOT NULL,
	red_flags    JSONB NOT NULL,
	summary      TEXT NOT NULL,
	analyzed_at  TIMESTAMPTZ NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// CritiqueLogRepository implements ports.CritiqueLog for PostgreSQL
type CritiqueLogRepository struct {
	db *sqlx.DB
}

// NewCritiqueLogRepository creates the repository and ensures its table exists.
func NewCritiqueLogRepository(ctx context.Context, db *sqlx.DB) (*CritiqueLogRepository, error) {
	if _, err := db.ExecContext(ctx, critiqueSchema); err != nil {
		return nil, errors.Wrap(err, "failed to create critique_log table")
	}
	return &CritiqueLogRepository{db: db}, nil
}

// RecordCritique appends one critique outcome to the audit log.
func (r *CritiqueLogRepository) RecordCritique(ctx context.Context, startupName string, rep *critique.Report) error {
	flags, err := json.Marshal(rep.RedFlags)
	if err != nil {
		return errors.Wrap(err, "failed to encode red flags")
	}

	analyzedAt := time.Now()
	if ts, err := time.Parse(time.RFC3339, rep.AnalyzedAt); err == nil {
		analyzedAt = ts
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO critique_log (startup_name, risk_level, flag_count, rule_based, red_flags, summary, analyzed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, startupName, rep.RiskLevel, len(rep.RedFlags), rep.RuleBased, flags, rep.Summary, analyzedAt)
	if err != nil {
		return errors.WithCode(errors.CodeDatabaseError, err)
	}
	return nil
}
