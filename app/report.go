package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"venturelens/adapters/render"
	"venturelens/domain/critique"
	"venturelens/domain/evaluation"
	"venturelens/domain/report"
	"venturelens/domain/score"
	"venturelens/internal"
	"venturelens/internal/errors"
	"venturelens/ports"
)

// ReportStage turns a completed evaluation into downloadable artifacts:
// an HTML report and an Excel workbook.
type ReportStage struct {
	model    ports.ModelClient
	renderer *render.HTMLRenderer
	workbook *render.WorkbookWriter
	dir      string
	baseURL  string
	logger   *internal.Logger
}

func NewReportStage(model ports.ModelClient, renderer *render.HTMLRenderer, workbook *render.WorkbookWriter, dir, baseURL string, logger *internal.Logger) *ReportStage {
	return &ReportStage{
		model:    model,
		renderer: renderer,
		workbook: workbook,
		dir:      dir,
		baseURL:  baseURL,
		logger:   logger.WithComponent("report"),
	}
}

// Available is true whenever artifacts can be written. Commentary
// degrades to the deterministic fallback without a model.
func (s *ReportStage) Available() bool {
	return s.renderer != nil
}

// Build writes the report artifacts for result and fills in
// result.Artifact.
func (s *ReportStage) Build(ctx context.Context, result *evaluation.Result) (*report.Artifact, error) {
	if result == nil || result.Startup == nil {
		return nil, errors.InvalidInput("evaluation result is incomplete")
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create reports directory")
	}

	reportID := uuid.NewString()
	artifact := &report.Artifact{
		ReportID:     reportID,
		HTMLPath:     filepath.Join(s.dir, reportID+".html"),
		WorkbookPath: filepath.Join(s.dir, reportID+".xlsx"),
		DownloadURL:  s.downloadURL(reportID),
		GeneratedAt:  time.Now().UTC(),
	}
	result.Artifact = artifact

	commentary := s.commentary(ctx, result)

	html, err := s.renderer.Render(result, commentary)
	if err != nil {
		return nil, errors.Wrap(err, "report rendering failed")
	}
	if err := os.WriteFile(artifact.HTMLPath, html, 0o644); err != nil {
		return nil, errors.Wrap(err, "failed to write report html")
	}

	if s.workbook != nil {
		if err := s.workbook.Write(artifact.WorkbookPath, result); err != nil {
			// The HTML report stands on its own; a workbook failure
			// loses only the spreadsheet export.
			s.logger.Warn("workbook export failed for %s: %v", reportID, err)
			artifact.WorkbookPath = ""
		}
	}

	return artifact, nil
}

// Lookup resolves a report ID to its HTML file path. IDs must be UUIDs,
// which also keeps path traversal out of the reports directory.
func (s *ReportStage) Lookup(reportID string) (string, error) {
	if _, err := uuid.Parse(reportID); err != nil {
		return "", errors.InvalidInput("report id must be a UUID")
	}
	path := filepath.Join(s.dir, reportID+".html")
	if _, err := os.Stat(path); err != nil {
		return "", errors.NotFound("report")
	}
	return path, nil
}

func (s *ReportStage) downloadURL(reportID string) string {
	base := strings.TrimRight(s.baseURL, "/")
	return base + "/evaluate/reports/" + reportID
}

// commentary asks the model for report prose and falls back to the
// deterministic writer on any failure.
func (s *ReportStage) commentary(ctx context.Context, result *evaluation.Result) *report.Commentary {
	if s.model == nil || !s.model.Available() {
		return FallbackCommentary(result)
	}

	summary := map[string]any{
		"startup":   result.Startup,
		"score":     result.Score,
		"critique":  result.Critique,
		"narrative": result.Narrative,
		"benchmark": result.Benchmark,
	}

	raw, err := s.model.Generate(ctx, ports.ModelRequest{Prompt: buildCommentaryPrompt(compactJSON(summary))})
	if err != nil {
		s.logger.Warn("commentary model call failed, using fallback: %v", err)
		return FallbackCommentary(result)
	}

	var c report.Commentary
	if err := decodeModelJSON(raw, &c); err != nil {
		s.logger.Warn("commentary response unusable, using fallback: %v", err)
		return FallbackCommentary(result)
	}
	if strings.TrimSpace(c.ExecutiveSummary) == "" || strings.TrimSpace(c.Recommendation) == "" {
		s.logger.Warn("commentary response incomplete, using fallback")
		return FallbackCommentary(result)
	}
	return &c
}

// FallbackCommentary writes report prose from the structured results
// alone. It is deterministic for a given evaluation result.
func FallbackCommentary(result *evaluation.Result) *report.Commentary {
	name := result.Startup.DisplayName()

	var overall float64
	if result.Score != nil {
		overall = result.Score.Overall
	}

	c := &report.Commentary{
		ExecutiveSummary: fmt.Sprintf("%s is a %s-stage company in the %s sector. The evaluation pipeline scored it %.2f out of 10 overall.",
			name, result.Startup.StageOrDefault(), result.Startup.SectorOrDefault(), overall),
		Recommendation: recommendationBand(overall),
		RuleBased:      true,
	}

	if result.Score != nil {
		for _, dim := range topDimensions(result.Score, 2) {
			c.KeyHighlights = append(c.KeyHighlights,
				fmt.Sprintf("Strongest dimension: %s at %.1f/10", dim, result.Score.DimensionOn10(dim)))
		}
	}
	if result.Narrative != nil {
		c.InvestmentThesis = result.Narrative.Vision + " " + result.Narrative.Differentiation
	} else {
		c.InvestmentThesis = "No narrative was generated for this evaluation."
	}
	if result.Critique != nil {
		c.RiskSummary = fmt.Sprintf("Overall risk is rated %s across %d identified red flags. %s",
			result.Critique.RiskLevel, len(result.Critique.RedFlags), highestSeveritySummary(result.Critique))
	} else {
		c.RiskSummary = "No critique was generated for this evaluation."
	}

	return c
}

func recommendationBand(overall float64) string {
	switch {
	case overall >= 8.0:
		return "Strong Candidate"
	case overall >= 6.5:
		return "Promising"
	case overall >= 5.0:
		return "Proceed with Caution"
	case overall >= 3.5:
		return "Significant Concerns"
	default:
		return "Not Recommended"
	}
}

func topDimensions(rep *score.Report, n int) []score.Dimension {
	dims := make([]score.Dimension, len(score.Dimensions))
	copy(dims, score.Dimensions)
	sort.SliceStable(dims, func(i, j int) bool {
		return rep.Breakdown[dims[i]].Score > rep.Breakdown[dims[j]].Score
	})
	if n > len(dims) {
		n = len(dims)
	}
	return dims[:n]
}

func highestSeveritySummary(rep *critique.Report) string {
	for _, f := range rep.RedFlags {
		if f.Severity == critique.SeverityHigh {
			return "Most pressing: " + f.Issue + "."
		}
	}
	if len(rep.RedFlags) > 0 {
		return "Most pressing: " + rep.RedFlags[0].Issue + "."
	}
	return ""
}
