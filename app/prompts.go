package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"venturelens/domain/startup"
)

// startupContext renders the record as labeled lines for prompt bodies.
// Empty fields are omitted so the model is not steered by blanks.
func startupContext(rec *startup.Record) string {
	fields := []struct {
		label string
		value string
	}{
		{"Name", rec.Name},
		{"Description", rec.Description},
		{"Problem", rec.Problem},
		{"Solution", rec.Solution},
		{"Traction", rec.Traction},
		{"Team", rec.Team},
		{"Market", rec.Market},
		{"Business Model", rec.BusinessModel},
		{"Competition", rec.Competition},
		{"Funding", rec.Funding},
		{"Stage", rec.Stage},
		{"Technology", rec.Technology},
		{"Sector", rec.Sector},
	}

	var sb strings.Builder
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			continue
		}
		fmt.Fprintf(&sb, "%s: %s\n", f.label, f.value)
	}
	return sb.String()
}

func buildIngestionPrompt(text string) string {
	return fmt.Sprintf(`Extract structured startup information from the following text.

Respond with a JSON object using exactly these keys (use an empty string when the text gives no answer):
{
  "startup_name": "",
  "description": "",
  "problem": "",
  "solution": "",
  "traction": "",
  "team": "",
  "market": "",
  "business_model": "",
  "competition": "",
  "funding": "",
  "stage": "",
  "technology": "",
  "sector": ""
}

Text:
---
%s
---

Respond with JSON only.`, text)
}

func buildScoringPrompt(rec *startup.Record) string {
	return fmt.Sprintf(`You are a venture analyst. Score the startup below on five dimensions, each from 0 to 20.

Dimensions: market, product, team, traction, risk. For risk, a higher score means lower risk.

Startup:
%s
Respond with a JSON object shaped exactly like:
{
  "market": {"score": 0, "reasoning": ""},
  "product": {"score": 0, "reasoning": ""},
  "team": {"score": 0, "reasoning": ""},
  "traction": {"score": 0, "reasoning": ""},
  "risk": {"score": 0, "reasoning": ""}
}

Respond with JSON only.`, startupContext(rec))
}

func buildCritiquePrompt(rec *startup.Record) string {
	return fmt.Sprintf(`You are a skeptical venture partner. Identify the most serious red flags for the startup below.

Startup:
%s
Respond with a JSON object shaped exactly like:
{
  "red_flags": [
    {"issue": "", "severity": "Low|Medium|High", "reason": ""}
  ],
  "overall_risk_level": "Low|Moderate|High",
  "summary": ""
}

List between 3 and 5 red flags. Respond with JSON only.`, startupContext(rec))
}

func buildNarrativePrompt(rec *startup.Record) string {
	return fmt.Sprintf(`You are a storytelling expert for venture pitches. Craft an investor narrative for the startup below.

Startup:
%s
Respond with a JSON object shaped exactly like:
{
  "vision_statement": "",
  "differentiation": "",
  "market_timing": "",
  "tagline": ""
}

Keep the tagline under 100 characters. Respond with JSON only.`, startupContext(rec))
}

func buildBenchmarkPrompt(rec *startup.Record) string {
	return fmt.Sprintf(`You are a market analyst. Compare the startup below against typical %s sector benchmarks for its stage.

Startup:
%s
Respond with a JSON object shaped exactly like:
{
  "industry": "",
  "comparisons": [
    {"metric": "", "startup_value": "", "sector_avg": "", "percentile": 50, "insight": ""}
  ],
  "overall_position": "Below Average|Average|Above Average",
  "summary": ""
}

Include at least 3 comparisons with concrete values. Respond with JSON only.`, rec.SectorOrDefault(), startupContext(rec))
}

func buildQuickScorePrompt(in *QuickInput) string {
	fields := []struct {
		label string
		value string
	}{
		{"Name", in.StartupName},
		{"Idea", in.Idea},
		{"Team", in.Team},
		{"Traction", in.Traction},
		{"Market", in.Market},
	}

	var sb strings.Builder
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			continue
		}
		fmt.Fprintf(&sb, "%s: %s\n", f.label, f.value)
	}

	return fmt.Sprintf(`You are a venture analyst doing a rapid screen. Rate the startup below from 0 to 10 on each of: idea, team, traction, market.

Startup:
%s
Respond with a JSON object shaped exactly like:
{"idea": 0, "team": 0, "traction": 0, "market": 0}

Respond with JSON only.`, sb.String())
}

func buildCommentaryPrompt(summaryJSON []byte) string {
	return fmt.Sprintf(`You are writing the narrative sections of an investment evaluation report. Base your commentary strictly on the analysis below.

Analysis:
%s

Respond with a JSON object shaped exactly like:
{
  "executive_summary": "",
  "key_highlights": ["", ""],
  "investment_thesis": "",
  "risk_summary": "",
  "recommendation": ""
}

Markdown is allowed inside the string values. Respond with JSON only.`, summaryJSON)
}

// compactJSON is a prompt helper that tolerates marshal failures by
// returning an empty object.
func compactJSON(v any) []byte {
	raw, err := json.Marshal(v)
	if err != nil {
		return []byte("{}")
	}
	return raw
}
