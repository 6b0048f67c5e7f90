package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"venturelens/app"
	"venturelens/internal"
	"venturelens/internal/pitchdeck"
)

// Server wires the HTTP surface over the evaluation pipeline.
type Server struct {
	router *gin.Engine
}

// NewServer builds the router with all routes registered.
func NewServer(
	pipeline *app.Pipeline,
	ingestion *app.IngestionStage,
	critiqueStage *app.CritiqueStage,
	narrativeStage *app.NarrativeStage,
	reportStage *app.ReportStage,
	quickScorer *app.QuickScorer,
	deckAnalyzer *pitchdeck.Analyzer,
	evaluateTimeout time.Duration,
	logger *internal.Logger,
) *Server {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	evaluate := NewEvaluateHandler(pipeline, reportStage, evaluateTimeout, logger)
	stages := NewStageHandler(ingestion, critiqueStage, narrativeStage, quickScorer, logger)
	deck := NewPitchdeckHandler(deckAnalyzer, logger)

	router.GET("/health", evaluate.Health)
	router.GET("/evaluate/health", evaluate.PipelineHealth)

	router.POST("/evaluate", evaluate.Evaluate)
	router.GET("/evaluate/reports/:report_id", evaluate.DownloadReport)

	router.POST("/score", stages.QuickScore)
	router.POST("/ingest", stages.Ingest)
	router.POST("/critique", stages.Critique)
	router.POST("/narrative", stages.Narrative)
	router.GET("/narrative/cache/:id", stages.CachedNarrative)
	router.DELETE("/narrative/cache/:id", stages.InvalidateNarrative)

	router.POST("/analyze-pitchdeck", deck.AnalyzeUpload)
	router.POST("/analyze-pitchdeck-path", deck.AnalyzePath)

	return &Server{router: router}
}

// Run blocks serving HTTP on the given port.
func (s *Server) Run(port string) error {
	return s.router.Run(":" + port)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func requestLogger(logger *internal.Logger) gin.HandlerFunc {
	log := logger.WithComponent("http")
	return func(c *gin.Context) {
		c.Next()
		log.Info("%s %s -> %d", c.Request.Method, c.Request.URL.Path, c.Writer.Status())
	}
}
