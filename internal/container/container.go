package container

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"venturelens/adapters/cache"
	"venturelens/adapters/fetch"
	"venturelens/adapters/llm"
	"venturelens/adapters/postgres"
	"venturelens/adapters/render"
	"venturelens/app"
	"venturelens/internal"
	"venturelens/internal/api"
	"venturelens/internal/config"
	"venturelens/internal/errors"
	"venturelens/internal/pitchdeck"
	"venturelens/ports"
)

// fetchTimeout bounds URL ingestion page downloads.
const fetchTimeout = 30 * time.Second

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure
	DB    *sqlx.DB
	Cache ports.NarrativeCache
	Model ports.ModelClient

	// Pipeline stages
	Ingestion *app.IngestionStage
	Scoring   *app.ScoringStage
	Critique  *app.CritiqueStage
	Narrative *app.NarrativeStage
	Benchmark *app.BenchmarkStage
	Report    *app.ReportStage
	Pipeline  *app.Pipeline

	// Standalone services
	QuickScorer  *app.QuickScorer
	DeckAnalyzer *pitchdeck.Analyzer

	Server *api.Server
}

// New wires every dependency from configuration. Optional backends
// (Postgres, Redis) degrade to no-op or in-memory substitutes.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, errors.ConfigInvalid("config cannot be nil")
	}

	c := &Container{
		Config: cfg,
		Logger: internal.NewDefaultLogger(),
	}

	model, err := llm.NewGeminiClient(ctx, llm.Config{
		APIKey:          cfg.AI.GeminiKey,
		Model:           cfg.AI.Model,
		MaxOutputTokens: cfg.AI.MaxOutputTokens,
		Temperature:     cfg.AI.Temperature,
		Timeout:         cfg.AI.Timeout,
	})
	if err != nil {
		return nil, err
	}
	c.Model = model
	if !model.Available() {
		c.Logger.Warn("GEMINI_API_KEY is not set, model-backed stages will report unavailable")
	}

	c.Cache = c.buildCache(ctx)
	critiqueLog, benchmarkLog := c.buildAuditLogs(ctx)

	renderer, err := render.NewHTMLRenderer()
	if err != nil {
		return nil, err
	}

	fetcher := fetch.NewHTTPPageFetcher(fetchTimeout)

	c.Ingestion = app.NewIngestionStage(c.Model, fetcher, c.Logger)
	c.Scoring = app.NewScoringStage(c.Model, c.Logger)
	c.Critique = app.NewCritiqueStage(c.Model, critiqueLog, c.Logger)
	c.Narrative = app.NewNarrativeStage(c.Model, c.Cache, cfg.Cache.NarrativeTTL, c.Logger)
	c.Benchmark = app.NewBenchmarkStage(c.Model, benchmarkLog, c.Logger)
	c.Report = app.NewReportStage(c.Model, renderer, render.NewWorkbookWriter(), cfg.Reports.Dir, cfg.Reports.BaseURL, c.Logger)

	c.Pipeline = app.NewPipeline(c.Ingestion, c.Scoring, c.Critique, c.Narrative, c.Benchmark, c.Report, c.Logger)
	c.QuickScorer = app.NewQuickScorer(c.Model, c.Logger)
	c.DeckAnalyzer = pitchdeck.NewAnalyzer(c.Model, c.Logger)

	c.Server = api.NewServer(c.Pipeline, c.Ingestion, c.Critique, c.Narrative, c.Report, c.QuickScorer, c.DeckAnalyzer, cfg.Server.EvaluateTimeout, c.Logger)

	return c, nil
}

func (c *Container) buildCache(ctx context.Context) ports.NarrativeCache {
	if c.Config.Cache.RedisAddr == "" {
		c.Logger.Info("REDIS_ADDR is not set, using in-memory narrative cache")
		return cache.NewMemoryNarrativeCache()
	}
	redisCache, err := cache.NewRedisNarrativeCache(ctx, c.Config.Cache.RedisAddr, c.Config.Cache.RedisPassword, c.Config.Cache.RedisDB)
	if err != nil {
		c.Logger.Warn("redis unavailable, using in-memory narrative cache: %v", err)
		return cache.NewMemoryNarrativeCache()
	}
	return redisCache
}

func (c *Container) buildAuditLogs(ctx context.Context) (ports.CritiqueLog, ports.BenchmarkLog) {
	if c.Config.Database.URL == "" {
		c.Logger.Info("DATABASE_URL is not set, critique and benchmark logging disabled")
		return nil, nil
	}

	db, err := postgres.Connect(ctx, c.Config.Database.URL, c.Config.Database.MaxOpenConns, c.Config.Database.ConnectTimeout)
	if err != nil {
		c.Logger.Warn("postgres unavailable, critique and benchmark logging disabled: %v", err)
		return nil, nil
	}
	c.DB = db

	critiqueLog, err := postgres.NewCritiqueLogRepository(ctx, db)
	if err != nil {
		c.Logger.Warn("critique log setup failed: %v", err)
		critiqueLog = nil
	}
	benchmarkLog, err := postgres.NewBenchmarkLogRepository(ctx, db)
	if err != nil {
		c.Logger.Warn("benchmark log setup failed: %v", err)
		benchmarkLog = nil
	}

	// Typed nils must not leak into the interface fields.
	var cl ports.CritiqueLog
	if critiqueLog != nil {
		cl = critiqueLog
	}
	var bl ports.BenchmarkLog
	if benchmarkLog != nil {
		bl = benchmarkLog
	}
	return cl, bl
}

// Close releases infrastructure connections.
func (c *Container) Close() {
	if c.DB != nil {
		c.DB.Close()
	}
	if closer, ok := c.Cache.(interface{ Close() error }); ok {
		closer.Close()
	}
}
