package app

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"venturelens/domain/narrative"
	"venturelens/domain/startup"
	"venturelens/internal"
	"venturelens/internal/errors"
	"venturelens/ports"
)

// NarrativeStage generates the four-part investor narrative with a
// cache-aside layer. Concurrent requests for the same startup share one
// generation via singleflight.
type NarrativeStage struct {
	model  ports.ModelClient
	cache  ports.NarrativeCache
	ttl    time.Duration
	group  singleflight.Group
	logger *internal.Logger
}

func NewNarrativeStage(model ports.ModelClient, cache ports.NarrativeCache, ttl time.Duration, logger *internal.Logger) *NarrativeStage {
	return &NarrativeStage{
		model:  model,
		cache:  cache,
		ttl:    ttl,
		logger: logger.WithComponent("narrative"),
	}
}

func (s *NarrativeStage) Available() bool {
	return s.model.Available()
}

// CacheKey derives the cache identity for a startup.
func CacheKey(rec *startup.Record) string {
	key := strings.ToLower(strings.TrimSpace(rec.DisplayName()))
	return strings.Join(strings.Fields(key), "-")
}

// Generate returns the narrative for rec, serving from cache when a
// fresh entry exists. Cache failures never fail the stage.
func (s *NarrativeStage) Generate(ctx context.Context, rec *startup.Record) (*narrative.Report, error) {
	if !s.model.Available() {
		return nil, errors.StageUnavailable("narrative")
	}

	key := CacheKey(rec)
	if rep := s.fromCache(ctx, key); rep != nil {
		return rep, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		// Re-check under the flight: a concurrent caller may have
		// filled the cache while this one waited.
		if rep := s.fromCache(ctx, key); rep != nil {
			return rep, nil
		}
		rep, err := s.generate(ctx, rec)
		if err != nil {
			return nil, err
		}
		s.toCache(ctx, key, rep)
		return rep, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*narrative.Report), nil
}

// Invalidate removes the cached narrative for a cache key.
func (s *NarrativeStage) Invalidate(ctx context.Context, key string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, key)
}

// Cached returns the cached narrative for a key without generating.
func (s *NarrativeStage) Cached(ctx context.Context, key string) (*narrative.Report, bool, error) {
	if s.cache == nil {
		return nil, false, nil
	}
	return s.cache.Get(ctx, key)
}

func (s *NarrativeStage) generate(ctx context.Context, rec *startup.Record) (*narrative.Report, error) {
	raw, err := s.model.Generate(ctx, ports.ModelRequest{Prompt: buildNarrativePrompt(rec)})
	if err != nil {
		return nil, errors.Wrap(err, "narrative model call failed")
	}

	var payload struct {
		VisionStatement string `json:"vision_statement"`
		Differentiation string `json:"differentiation"`
		MarketTiming    string `json:"market_timing"`
		Tagline         string `json:"tagline"`
	}
	if err := decodeModelJSON(raw, &payload); err != nil {
		return nil, err
	}

	missing := missingNarrativeParts(payload.VisionStatement, payload.Differentiation, payload.MarketTiming, payload.Tagline)
	if len(missing) > 0 {
		return nil, errors.New(errors.CodeSchemaValidation,
			"narrative response is missing: "+strings.Join(missing, ", "))
	}

	return &narrative.Report{
		Vision:          payload.VisionStatement,
		Differentiation: payload.Differentiation,
		Timing:          payload.MarketTiming,
		Tagline:         narrative.TruncateTagline(payload.Tagline),
		GeneratedAt:     time.Now().UTC().Format(time.RFC3339),
		Model:           s.model.Model(),
	}, nil
}

func missingNarrativeParts(vision, differentiation, timing, tagline string) []string {
	var missing []string
	if strings.TrimSpace(vision) == "" {
		missing = append(missing, "vision_statement")
	}
	if strings.TrimSpace(differentiation) == "" {
		missing = append(missing, "differentiation")
	}
	if strings.TrimSpace(timing) == "" {
		missing = append(missing, "market_timing")
	}
	if strings.TrimSpace(tagline) == "" {
		missing = append(missing, "tagline")
	}
	return missing
}

func (s *NarrativeStage) fromCache(ctx context.Context, key string) *narrative.Report {
	if s.cache == nil {
		return nil
	}
	rep, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("narrative cache read failed for %s: %v", key, err)
		return nil
	}
	if !ok {
		return nil
	}
	s.logger.Debug("narrative cache hit for %s", key)
	return rep
}

func (s *NarrativeStage) toCache(ctx context.Context, key string, rep *narrative.Report) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, rep, s.ttl); err != nil {
		s.logger.Warn("narrative cache write failed for %s: %v", key, err)
	}
}
