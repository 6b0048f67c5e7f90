package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"venturelens/domain/score"
	"venturelens/domain/startup"
	"venturelens/internal"
	"venturelens/internal/errors"
	"venturelens/ports"
)

// ScoringStage rates a startup on the five weighted dimensions.
type ScoringStage struct {
	model  ports.ModelClient
	logger *internal.Logger
}

func NewScoringStage(model ports.ModelClient, logger *internal.Logger) *ScoringStage {
	return &ScoringStage{
		model:  model,
		logger: logger.WithComponent("scoring"),
	}
}

func (s *ScoringStage) Available() bool {
	return s.model.Available()
}

// Score produces a validated score report. A missing or non-numeric
// dimension in the model output fails the stage; out-of-range values
// are clamped and logged.
func (s *ScoringStage) Score(ctx context.Context, rec *startup.Record) (*score.Report, error) {
	if !s.model.Available() {
		return nil, errors.StageUnavailable("scoring")
	}

	raw, err := s.model.Generate(ctx, ports.ModelRequest{Prompt: buildScoringPrompt(rec)})
	if err != nil {
		return nil, errors.Wrap(err, "scoring model call failed")
	}

	var payload map[string]struct {
		Score     any    `json:"score"`
		Reasoning string `json:"reasoning"`
	}
	if err := decodeModelJSON(raw, &payload); err != nil {
		return nil, err
	}

	breakdown := make(map[score.Dimension]score.DimensionScore, len(score.Dimensions))
	for _, dim := range score.Dimensions {
		entry, ok := payload[string(dim)]
		if !ok {
			return nil, errors.New(errors.CodeScoreExtraction,
				fmt.Sprintf("scoring response is missing the %s dimension", dim))
		}
		value, ok := numericScore(entry.Score)
		if !ok {
			return nil, errors.New(errors.CodeScoreExtraction,
				fmt.Sprintf("scoring response has a non-numeric %s score", dim))
		}
		clamped, changed := score.Clamp(value)
		if changed {
			s.logger.Warn("%s score %.2f outside [%.0f,%.0f], clamped", dim, value, score.MinDimension, score.MaxDimension)
		}
		breakdown[dim] = score.DimensionScore{Score: clamped, Reasoning: entry.Reasoning}
	}

	return &score.Report{
		StartupName: rec.DisplayName(),
		Overall:     score.ComputeOverall(breakdown),
		Weights:     score.Weights,
		Breakdown:   breakdown,
		Model:       s.model.Model(),
	}, nil
}

// numericScore accepts JSON numbers plus strings that parse as one, so
// a cosmetically quoted score does not fail the stage. Anything else is
// an extraction failure.
func numericScore(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
