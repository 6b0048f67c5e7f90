package app

import (
	"context"
	"fmt"
	"time"

	"venturelens/domain/critique"
	"venturelens/domain/score"
	"venturelens/domain/startup"
	"venturelens/internal"
	"venturelens/internal/errors"
	"venturelens/ports"
)

// CritiqueStage surfaces red flags and an overall risk label. When the
// model output fails validation the stage falls back to rule-based
// critique derived from the score report.
type CritiqueStage struct {
	model  ports.ModelClient
	log    ports.CritiqueLog
	logger *internal.Logger
}

func NewCritiqueStage(model ports.ModelClient, log ports.CritiqueLog, logger *internal.Logger) *CritiqueStage {
	return &CritiqueStage{
		model:  model,
		log:    log,
		logger: logger.WithComponent("critique"),
	}
}

func (s *CritiqueStage) Available() bool {
	return s.model.Available()
}

// Analyze critiques the startup. scores may be nil; the rule-based
// fallback then produces a generic critique.
func (s *CritiqueStage) Analyze(ctx context.Context, rec *startup.Record, scores *score.Report) (*critique.Report, error) {
	if !s.model.Available() {
		return nil, errors.StageUnavailable("critique")
	}

	rep, err := s.modelCritique(ctx, rec)
	if err != nil {
		s.logger.Warn("model critique rejected, using rule-based fallback: %v", err)
		rep = RuleBasedCritique(rec, scores)
	}

	s.record(ctx, rec.DisplayName(), rep)
	return rep, nil
}

func (s *CritiqueStage) modelCritique(ctx context.Context, rec *startup.Record) (*critique.Report, error) {
	raw, err := s.model.Generate(ctx, ports.ModelRequest{Prompt: buildCritiquePrompt(rec)})
	if err != nil {
		return nil, errors.Wrap(err, "critique model call failed")
	}

	var payload struct {
		RedFlags []struct {
			Issue    string `json:"issue"`
			Severity string `json:"severity"`
			Reason   string `json:"reason"`
		} `json:"red_flags"`
		OverallRiskLevel string `json:"overall_risk_level"`
		Summary          string `json:"summary"`
	}
	if err := decodeModelJSON(raw, &payload); err != nil {
		return nil, err
	}

	if len(payload.RedFlags) < critique.MinFlags || len(payload.RedFlags) > critique.MaxFlags {
		return nil, errors.New(errors.CodeSchemaValidation,
			fmt.Sprintf("critique produced %d red flags, expected %d to %d",
				len(payload.RedFlags), critique.MinFlags, critique.MaxFlags))
	}

	flags := make([]critique.RedFlag, 0, len(payload.RedFlags))
	for _, f := range payload.RedFlags {
		flags = append(flags, critique.RedFlag{
			Issue:    f.Issue,
			Severity: critique.NormalizeSeverity(f.Severity),
			Reason:   f.Reason,
		})
	}

	risk, ok := critique.ParseRiskLevel(payload.OverallRiskLevel)
	if !ok {
		risk = critique.InferRiskLevel(flags)
	}

	return &critique.Report{
		RedFlags:   flags,
		RiskLevel:  risk,
		Summary:    payload.Summary,
		AnalyzedAt: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// record persists the critique when a log is wired. Failures are logged
// and swallowed.
func (s *CritiqueStage) record(ctx context.Context, name string, rep *critique.Report) {
	if s.log == nil {
		return
	}
	if err := s.log.RecordCritique(ctx, name, rep); err != nil {
		s.logger.Warn("failed to record critique for %s: %v", name, err)
	}
}

// ruleThreshold is the 0-10 scale score below which a dimension raises
// a rule-based red flag.
const ruleThreshold = 3.0

var ruleFlagText = map[score.Dimension]struct {
	issue  string
	reason string
}{
	score.DimMarket:   {"Weak market opportunity", "The addressable market looks too small or poorly defined to support venture-scale returns."},
	score.DimProduct:  {"Unproven product", "The product shows little evidence of differentiation or readiness."},
	score.DimTeam:     {"Team gaps", "The founding team lacks the experience or completeness the venture demands."},
	score.DimTraction: {"Insufficient traction", "Customer and revenue signals are too weak for the claimed stage."},
	score.DimRisk:     {"Elevated execution risk", "Structural risks threaten the startup's ability to execute."},
}

// RuleBasedCritique derives red flags from low dimension scores without
// a model. It is the fallback path when model critique fails validation.
func RuleBasedCritique(rec *startup.Record, scores *score.Report) *critique.Report {
	var flags []critique.RedFlag

	if scores != nil {
		for _, dim := range score.Dimensions {
			if len(flags) >= critique.MaxFlags {
				break
			}
			on10 := scores.DimensionOn10(dim)
			if on10 >= ruleThreshold {
				continue
			}
			text := ruleFlagText[dim]
			severity := critique.SeverityMedium
			if on10 < ruleThreshold/2 {
				severity = critique.SeverityHigh
			}
			flags = append(flags, critique.RedFlag{
				Issue:    text.issue,
				Severity: severity,
				Reason:   text.reason,
			})
		}
	}

	if len(flags) == 0 {
		flags = append(flags, critique.RedFlag{
			Issue:    "Limited diligence signal",
			Severity: critique.SeverityLow,
			Reason:   "Automated critique could not be completed; treat this profile as under-reviewed.",
		})
	}

	return &critique.Report{
		RedFlags:   flags,
		RiskLevel:  critique.InferRiskLevel(flags),
		Summary:    fmt.Sprintf("Rule-based critique of %s derived from dimension scores.", rec.DisplayName()),
		RuleBased:  true,
		AnalyzedAt: time.Now().UTC().Format(time.RFC3339),
	}
}
