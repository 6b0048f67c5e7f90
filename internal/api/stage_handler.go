package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"venturelens/app"
	"venturelens/domain/score"
	"venturelens/domain/startup"
	"venturelens/internal"
	"venturelens/internal/errors"
)

// StageHandler exposes individual pipeline stages as endpoints so
// callers can run one analysis without a full evaluation.
type StageHandler struct {
	ingestion *app.IngestionStage
	critique  *app.CritiqueStage
	narrative *app.NarrativeStage
	quick     *app.QuickScorer
	logger    *internal.Logger
}

func NewStageHandler(
	ingestion *app.IngestionStage,
	critique *app.CritiqueStage,
	narrative *app.NarrativeStage,
	quick *app.QuickScorer,
	logger *internal.Logger,
) *StageHandler {
	return &StageHandler{
		ingestion: ingestion,
		critique:  critique,
		narrative: narrative,
		quick:     quick,
		logger:    logger.WithComponent("api"),
	}
}

type ingestRequest struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// Ingest extracts a structured record from text or a URL.
func (h *StageHandler) Ingest(c *gin.Context) {
	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidInput("request body must be JSON with a text or url field"))
		return
	}

	var (
		rec *startup.Record
		err error
	)
	switch {
	case strings.TrimSpace(req.URL) != "":
		rec, err = h.ingestion.FromURL(c.Request.Context(), req.URL)
	case strings.TrimSpace(req.Text) != "":
		rec, err = h.ingestion.FromText(c.Request.Context(), req.Text)
	default:
		err = errors.InvalidInput("provide a text or url field")
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// critiqueRequest carries the startup record plus an optional score
// report so the rule-based fallback can inspect dimension thresholds.
type critiqueRequest struct {
	startup.Record
	ScoreReport *score.Report `json:"score_report"`
}

// Critique runs the critique stage over a submitted record.
func (h *StageHandler) Critique(c *gin.Context) {
	var req critiqueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidInput("request body is not a critique request: "+err.Error()))
		return
	}
	if strings.TrimSpace(req.Name) == "" && strings.TrimSpace(req.Description) == "" {
		respondError(c, errors.InvalidInput("startup record needs at least a name or a description"))
		return
	}
	if !h.critique.Available() {
		respondError(c, errors.StageUnavailable("critique"))
		return
	}
	rep, err := h.critique.Analyze(c.Request.Context(), &req.Record, req.ScoreReport)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// Narrative runs the narrative stage over a submitted record.
func (h *StageHandler) Narrative(c *gin.Context) {
	rec, ok := bindRecord(c)
	if !ok {
		return
	}
	if !h.narrative.Available() {
		respondError(c, errors.StageUnavailable("narrative"))
		return
	}
	rep, err := h.narrative.Generate(c.Request.Context(), rec)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// CachedNarrative returns the cached narrative for a cache key, 404 on
// a miss.
func (h *StageHandler) CachedNarrative(c *gin.Context) {
	rep, ok, err := h.narrative.Cached(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		respondError(c, errors.NotFound("cached narrative"))
		return
	}
	c.JSON(http.StatusOK, rep)
}

// InvalidateNarrative drops the cached narrative for a cache key.
func (h *StageHandler) InvalidateNarrative(c *gin.Context) {
	if err := h.narrative.Invalidate(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invalidated": c.Param("id")})
}

// QuickScore runs the standalone four-dimension assessment. The body
// carries free-text idea/team/traction/market fields and an optional
// startup_name, a separate contract from the pipeline's scoring stage.
func (h *StageHandler) QuickScore(c *gin.Context) {
	var in app.QuickInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, errors.InvalidInput("request body must be JSON with idea, team, traction, and market fields"))
		return
	}
	result, err := h.quick.Score(c.Request.Context(), &in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func bindRecord(c *gin.Context) (*startup.Record, bool) {
	var rec startup.Record
	if err := c.ShouldBindJSON(&rec); err != nil {
		respondError(c, errors.InvalidInput("request body is not a startup record: "+err.Error()))
		return nil, false
	}
	if strings.TrimSpace(rec.Name) == "" && strings.TrimSpace(rec.Description) == "" {
		respondError(c, errors.InvalidInput("startup record needs at least a name or a description"))
		return nil, false
	}
	return &rec, true
}
