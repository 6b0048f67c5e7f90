package llm

import (
	"encoding/json"
	"strings"

	"venturelens/internal/errors"
)

// ExtractJSON locates a markdown code fence anywhere in model output and
// returns the JSON candidate inside it. The first ```json fence wins over
// the first bare ``` fence; surrounding prose is discarded; text without
// a fence passes through trimmed.
func ExtractJSON(raw string) string {
	content := strings.TrimSpace(raw)

	if idx := strings.Index(content, "```json"); idx >= 0 {
		return strings.TrimSpace(fenceBody(content[idx+len("```json"):]))
	}
	if idx := strings.Index(content, "```"); idx >= 0 {
		body := fenceBody(content[idx+len("```"):])
		// A bare fence may still carry a language tag on its first line.
		if nl := strings.IndexByte(body, '\n'); nl >= 0 && !strings.ContainsAny(body[:nl], "{[") {
			body = body[nl+1:]
		}
		return strings.TrimSpace(body)
	}
	return content
}

// fenceBody cuts a fenced block at its closing fence, or runs to the end
// of the text when the model never closed it.
func fenceBody(s string) string {
	if end := strings.Index(s, "```"); end >= 0 {
		return s[:end]
	}
	return s
}

// DecodeJSON extracts the JSON candidate from raw model output and
// unmarshals it into out. Unparseable output becomes a
// MALFORMED_RESPONSE error carrying a bounded snippet of the raw text.
func DecodeJSON(raw string, out any) error {
	candidate := ExtractJSON(raw)
	if err := json.Unmarshal([]byte(candidate), out); err != nil {
		return errors.MalformedResponse(raw, err)
	}
	return nil
}
