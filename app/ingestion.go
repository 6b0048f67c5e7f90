package app

import (
	"context"
	"strings"

	"venturelens/domain/startup"
	"venturelens/internal"
	"venturelens/internal/errors"
	"venturelens/ports"
)

// IngestionStage turns raw text, a web page, or structured JSON into a
// normalized startup record.
type IngestionStage struct {
	model   ports.ModelClient
	fetcher ports.PageFetcher
	logger  *internal.Logger
}

func NewIngestionStage(model ports.ModelClient, fetcher ports.PageFetcher, logger *internal.Logger) *IngestionStage {
	return &IngestionStage{
		model:   model,
		fetcher: fetcher,
		logger:  logger.WithComponent("ingestion"),
	}
}

// Available reports whether model-backed extraction can run. The stage
// still works without a model via heuristic extraction.
func (s *IngestionStage) Available() bool {
	return s.model.Available()
}

// FromText extracts a structured record from free-form text, falling
// back to heuristic extraction when the model cannot help.
func (s *IngestionStage) FromText(ctx context.Context, text string) (*startup.Record, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.InvalidInput("ingestion text is empty")
	}

	if !s.model.Available() {
		s.logger.Warn("model unavailable, using heuristic extraction")
		return heuristicExtract(text), nil
	}

	raw, err := s.model.Generate(ctx, ports.ModelRequest{Prompt: buildIngestionPrompt(text)})
	if err != nil {
		s.logger.Warn("model extraction failed, using heuristic extraction: %v", err)
		return heuristicExtract(text), nil
	}

	var rec startup.Record
	if err := decodeModelJSON(raw, &rec); err != nil {
		s.logger.Warn("model response unusable, using heuristic extraction: %v", err)
		return heuristicExtract(text), nil
	}

	if strings.TrimSpace(rec.Name) == "" {
		rec.Name = guessName(text)
	}
	if strings.TrimSpace(rec.Description) == "" {
		rec.Description = firstSentence(text)
	}
	rec.Source = startup.SourceMeta{SourceType: "text", ContentLength: len(text)}
	return &rec, nil
}

// FromURL fetches the page at url and extracts a record from its text.
func (s *IngestionStage) FromURL(ctx context.Context, url string) (*startup.Record, error) {
	if s.fetcher == nil {
		return nil, errors.StageUnavailable("ingestion")
	}
	text, err := s.fetcher.FetchText(ctx, url)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to ingest %s", url)
	}

	rec, err := s.FromText(ctx, text)
	if err != nil {
		return nil, err
	}
	rec.Source = startup.SourceMeta{SourceType: "url", URL: url, ContentLength: len(text)}
	return rec, nil
}

// FromDeck extracts a record from an uploaded pitch deck by sending the
// document to the model alongside the extraction prompt. Deck ingestion
// has no heuristic fallback: without a model it is unavailable.
func (s *IngestionStage) FromDeck(ctx context.Context, deck *ports.Attachment) (*startup.Record, error) {
	if deck == nil || len(deck.Data) == 0 {
		return nil, errors.InvalidInput("pitch deck is empty")
	}
	if !s.model.Available() {
		return nil, errors.StageUnavailable("ingestion")
	}

	raw, err := s.model.Generate(ctx, ports.ModelRequest{
		Prompt:     buildIngestionPrompt("(see the attached pitch deck)"),
		Attachment: deck,
	})
	if err != nil {
		return nil, errors.Wrap(err, "pitch deck extraction failed")
	}

	var rec startup.Record
	if err := decodeModelJSON(raw, &rec); err != nil {
		return nil, err
	}
	rec.Source = startup.SourceMeta{SourceType: "pdf", ContentLength: len(deck.Data)}
	return &rec, nil
}

// FromRecord validates an already-structured record submitted as JSON.
func (s *IngestionStage) FromRecord(rec *startup.Record) (*startup.Record, error) {
	if rec == nil {
		return nil, errors.InvalidInput("startup record is required")
	}
	if strings.TrimSpace(rec.Name) == "" && strings.TrimSpace(rec.Description) == "" {
		return nil, errors.InvalidInput("startup record needs at least a name or a description")
	}
	if rec.Source.SourceType == "" {
		rec.Source = startup.SourceMeta{SourceType: "json"}
	}
	return rec, nil
}

// heuristicExtract builds a minimal record from raw text without a model.
func heuristicExtract(text string) *startup.Record {
	return &startup.Record{
		Name:        guessName(text),
		Description: firstSentence(text),
		Source:      startup.SourceMeta{SourceType: "text", ContentLength: len(text)},
	}
}

// guessName takes the first non-empty line, trimmed to a plausible
// name length.
func guessName(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if idx := strings.IndexAny(line, ".!?"); idx > 0 && idx < len(line)-1 {
			line = line[:idx]
		}
		const maxNameLen = 80
		if len(line) > maxNameLen {
			line = strings.TrimSpace(line[:maxNameLen])
		}
		return line
	}
	return ""
}

func firstSentence(text string) string {
	flat := strings.Join(strings.Fields(text), " ")
	if idx := strings.IndexAny(flat, ".!?"); idx > 0 {
		return flat[:idx+1]
	}
	const maxDescLen = 300
	if len(flat) > maxDescLen {
		return flat[:maxDescLen]
	}
	return flat
}
