package pitchdeck

import (
	"context"
	"fmt"
	"math"
	"strings"

	"venturelens/adapters/llm"
	"venturelens/internal"
	"venturelens/internal/errors"
	"venturelens/ports"
)

// Analyzer classifies deck slides with the model when it can, and with
// keyword matching when it cannot.
type Analyzer struct {
	model  ports.ModelClient
	logger *internal.Logger
}

func NewAnalyzer(model ports.ModelClient, logger *internal.Logger) *Analyzer {
	return &Analyzer{
		model:  model,
		logger: logger.WithComponent("pitchdeck"),
	}
}

// Analyze segments the deck text and produces the slide-by-slide
// assessment plus the missing-slide report.
func (a *Analyzer) Analyze(ctx context.Context, text string) (*Analysis, error) {
	segments := SegmentSlides(text)
	if len(segments) == 0 {
		return nil, errors.InvalidInput("pitch deck text is empty")
	}

	slides := make([]Slide, len(segments))
	method := "extractive"
	modelUsable := a.model != nil && a.model.Available()
	if modelUsable {
		method = "llm"
	}

	for i, segment := range segments {
		slide := Slide{Index: i + 1}
		if modelUsable {
			classified, err := a.classifyWithModel(ctx, segment)
			if err != nil {
				a.logger.Warn("slide %d classification failed, using extractive fallback: %v", i+1, err)
				modelUsable = false
				method = "extractive"
			} else {
				slide.Type = classified.Type
				slide.Summary = classified.Summary
			}
		}
		if slide.Type == "" {
			slide.Type = ClassifySlide(segment)
			slide.Summary = ExtractiveSummary(segment)
		}
		slides[i] = slide
	}

	found := make(map[SlideType]bool, len(slides))
	for _, s := range slides {
		found[s.Type] = true
	}

	var missing []SlideType
	for _, st := range StandardSlides {
		if !found[st] && !optionalSlides[st] {
			missing = append(missing, st)
		}
	}

	essentialFound := 0
	for _, st := range EssentialSlides {
		if found[st] {
			essentialFound++
		}
	}
	completeness := math.Round(float64(essentialFound)/float64(len(EssentialSlides))*100) / 100

	return &Analysis{
		TotalSlides:   len(slides),
		Slides:        slides,
		MissingSlides: missing,
		Completeness:  completeness,
		Method:        method,
	}, nil
}

func (a *Analyzer) classifyWithModel(ctx context.Context, segment string) (*Slide, error) {
	prompt := fmt.Sprintf(`Classify this pitch deck slide and summarize it in one sentence.

Valid types: Title, Problem, Solution, Market, Product, Business Model, Traction, Competition, Team, Financials, Ask, Roadmap, Contact, Unknown.

Slide text:
---
%s
---

Respond with JSON only: {"type": "", "summary": ""}`, segment)

	raw, err := a.model.Generate(ctx, ports.ModelRequest{Prompt: prompt})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Type    string `json:"type"`
		Summary string `json:"summary"`
	}
	if err := llm.DecodeJSON(raw, &payload); err != nil {
		return nil, err
	}

	st := normalizeSlideType(payload.Type)
	summary := strings.TrimSpace(payload.Summary)
	if summary == "" {
		summary = ExtractiveSummary(segment)
	}
	return &Slide{Type: st, Summary: summary}, nil
}

func normalizeSlideType(raw string) SlideType {
	cleaned := strings.TrimSpace(raw)
	for _, st := range StandardSlides {
		if strings.EqualFold(cleaned, string(st)) {
			return st
		}
	}
	return SlideUnknown
}

// slideSignals maps each slide type to its telltale words, checked in
// StandardSlides order so earlier deck sections win ties.
var slideSignals = map[SlideType][]string{
	SlideTitle:         {"pitch deck", "confidential", "presents"},
	SlideProblem:       {"problem", "pain", "challenge", "struggle", "broken"},
	SlideSolution:      {"solution", "we solve", "our approach", "how it works"},
	SlideMarket:        {"market", "tam", "sam", "som", "billion", "opportunity"},
	SlideProduct:       {"product", "platform", "features", "demo", "technology"},
	SlideBusinessModel: {"business model", "revenue model", "pricing", "subscription", "monetization"},
	SlideTraction:      {"traction", "growth", "users", "revenue", "arr", "mrr", "customers"},
	SlideCompetition:   {"competition", "competitors", "competitive", "landscape", "alternatives"},
	SlideTeam:          {"team", "founder", "ceo", "cto", "advisors"},
	SlideFinancials:    {"financials", "projections", "forecast", "p&l", "burn"},
	SlideAsk:           {"raising", "funding", "investment", "use of funds", "ask"},
	SlideRoadmap:       {"roadmap", "milestones", "timeline", "next steps", "vision"},
	SlideContact:       {"contact", "email", "thank you", "@", "reach us"},
}

// ClassifySlide labels a slide by keyword matching; the type with the
// most hits wins.
func ClassifySlide(text string) SlideType {
	lowered := strings.ToLower(text)
	best := SlideUnknown
	bestHits := 0
	for _, st := range StandardSlides {
		hits := 0
		for _, signal := range slideSignals[st] {
			if strings.Contains(lowered, signal) {
				hits++
			}
		}
		if hits > bestHits {
			best = st
			bestHits = hits
		}
	}
	return best
}

// summaryLimit bounds extractive summaries.
const summaryLimit = 150

// ExtractiveSummary returns the slide's leading text, cut at a word
// boundary.
func ExtractiveSummary(text string) string {
	flat := strings.Join(strings.Fields(text), " ")
	if len(flat) <= summaryLimit {
		return flat
	}
	cut := flat[:summaryLimit]
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}
