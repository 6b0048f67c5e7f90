package app

import (
	"context"
	"math"
	"strings"

	"github.com/montanaflynn/stats"

	"venturelens/internal"
	"venturelens/internal/errors"
	"venturelens/ports"
)

// QuickInput is the request contract of the standalone scoring
// endpoint: one free-text field per rated dimension plus an optional
// startup name.
type QuickInput struct {
	StartupName string `json:"startup_name"`
	Idea        string `json:"idea"`
	Team        string `json:"team"`
	Traction    string `json:"traction"`
	Market      string `json:"market"`
}

// Empty reports whether no dimension field carries text.
func (in QuickInput) Empty() bool {
	return strings.TrimSpace(in.Idea) == "" &&
		strings.TrimSpace(in.Team) == "" &&
		strings.TrimSpace(in.Traction) == "" &&
		strings.TrimSpace(in.Market) == ""
}

// QuickScore is the lightweight four-dimension assessment served by the
// standalone scoring endpoint. Dimensions are rated 0-10.
type QuickScore struct {
	Scores         map[string]float64 `json:"scores"`
	OverallScore   float64            `json:"overall_score"`
	Recommendation string             `json:"recommendation"`
	Confidence     float64            `json:"confidence"`
	Method         string             `json:"analysis_method"`
}

// quickDimensions and quickWeights define the four-axis contract. This
// is intentionally separate from the pipeline's five-dimension scoring.
var quickDimensions = []string{"idea", "team", "traction", "market"}

var quickWeights = map[string]float64{
	"idea":     0.25,
	"team":     0.30,
	"traction": 0.25,
	"market":   0.20,
}

const (
	methodModel     = "llm"
	methodKeyword   = "keyword"
	confidenceModel = 0.85
	confidenceMock  = 0.65
)

// QuickScorer produces quick scores with a keyword-based fallback when
// no model is reachable.
type QuickScorer struct {
	model  ports.ModelClient
	logger *internal.Logger
}

func NewQuickScorer(model ports.ModelClient, logger *internal.Logger) *QuickScorer {
	return &QuickScorer{
		model:  model,
		logger: logger.WithComponent("quickscore"),
	}
}

// Score rates the pitch on the four quick dimensions. Model failures
// degrade to keyword scoring rather than failing the request.
func (q *QuickScorer) Score(ctx context.Context, in *QuickInput) (*QuickScore, error) {
	if in == nil || in.Empty() {
		return nil, errors.InvalidInput("provide at least one of idea, team, traction, or market")
	}

	if q.model != nil && q.model.Available() {
		if result, err := q.modelScore(ctx, in); err == nil {
			return result, nil
		} else {
			q.logger.Warn("model quick score failed, using keyword scoring: %v", err)
		}
	}

	return q.keywordScore(in), nil
}

func (q *QuickScorer) modelScore(ctx context.Context, in *QuickInput) (*QuickScore, error) {
	raw, err := q.model.Generate(ctx, ports.ModelRequest{Prompt: buildQuickScorePrompt(in)})
	if err != nil {
		return nil, err
	}

	var payload map[string]float64
	if err := decodeModelJSON(raw, &payload); err != nil {
		return nil, err
	}

	scores := make(map[string]float64, len(quickDimensions))
	for _, dim := range quickDimensions {
		v, ok := payload[dim]
		if !ok {
			return nil, errors.New(errors.CodeScoreExtraction, "quick score response is missing "+dim)
		}
		scores[dim] = clamp10(v)
	}

	return q.assemble(scores, methodModel), nil
}

// keywordScore rates each dimension by signal words in its field. It is
// crude on purpose: a stable floor when the model is out.
func (q *QuickScorer) keywordScore(in *QuickInput) *QuickScore {
	scores := map[string]float64{
		"idea":     keywordRating(in.Idea, []string{"unique", "novel", "patent", "first", "platform", "ai"}),
		"team":     keywordRating(in.Team, []string{"founder", "phd", "serial", "exited", "experience", "ex-"}),
		"traction": keywordRating(in.Traction, []string{"revenue", "arr", "users", "growth", "customers", "paying"}),
		"market":   keywordRating(in.Market, []string{"billion", "growing", "tam", "global", "underserved", "expanding"}),
	}
	return q.assemble(scores, methodKeyword)
}

func (q *QuickScorer) assemble(scores map[string]float64, method string) *QuickScore {
	var overall float64
	values := make([]float64, 0, len(quickDimensions))
	for _, dim := range quickDimensions {
		overall += scores[dim] * quickWeights[dim]
		values = append(values, scores[dim])
	}
	overall = math.Round(overall*100) / 100

	return &QuickScore{
		Scores:         scores,
		OverallScore:   overall,
		Recommendation: quickRecommendation(overall),
		Confidence:     quickConfidence(values, method),
		Method:         method,
	}
}

func quickRecommendation(overall float64) string {
	switch {
	case overall >= 8.0:
		return "Excellent investment opportunity"
	case overall >= 6.5:
		return "Strong potential, worth pursuing"
	case overall >= 5.0:
		return "Moderate potential, needs deeper diligence"
	case overall >= 3.5:
		return "Weak signals, significant concerns"
	default:
		return "Not investable in current form"
	}
}

// quickConfidence scales a per-method base by score dispersion: widely
// scattered dimension scores earn less confidence. Bounded to
// [0.5, 0.95].
func quickConfidence(values []float64, method string) float64 {
	base := confidenceMock
	if method == methodModel {
		base = confidenceModel
	}

	variance, err := stats.Variance(values)
	if err != nil {
		variance = 0
	}

	confidence := base * math.Max(0.9, 1.0-variance/20.0)
	confidence = math.Min(confidence, 0.95)
	confidence = math.Max(confidence, 0.5)
	return math.Round(confidence*100) / 100
}

func keywordRating(text string, signals []string) float64 {
	lowered := strings.ToLower(text)
	score := 4.0
	for _, signal := range signals {
		if strings.Contains(lowered, signal) {
			score += 1.0
		}
	}
	if strings.TrimSpace(text) == "" {
		score = 3.0
	}
	return clamp10(score)
}

func clamp10(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}
