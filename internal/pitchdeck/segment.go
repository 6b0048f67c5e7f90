// Package pitchdeck analyzes pitch deck text: it segments the document
// into slides, classifies each slide, and reports which standard slides
// are missing.
package pitchdeck

import "strings"

// chunkSize is the fallback slide length when the text carries no
// slide separators at all.
const chunkSize = 1000

// SegmentSlides splits deck text into per-slide chunks. Form feeds win
// over blank-line runs; a separator-free wall of text is bucketed into
// fixed-size chunks.
func SegmentSlides(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	if strings.Contains(text, "\f") {
		return cleanParts(strings.Split(text, "\f"))
	}
	if strings.Contains(text, "\n\n\n") {
		return cleanParts(strings.Split(text, "\n\n\n"))
	}

	var chunks []string
	runes := []rune(text)
	for start := 0; start < len(runes); start += chunkSize {
		end := start + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
	}
	return chunks
}

func cleanParts(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
