// Package narrative defines the four-part investor narrative.
package narrative

import "unicode/utf8"

// MaxTaglineLen bounds the tagline; longer taglines are truncated to
// exactly this many characters ending in an ellipsis.
const MaxTaglineLen = 100

// Report is the validated narrative output. All four parts are
// required; a partial narrative is not a valid deliverable.
type Report struct {
	Vision          string `json:"vision"`
	Differentiation string `json:"differentiation"`
	Timing          string `json:"timing"`
	Tagline         string `json:"tagline"`
	GeneratedAt     string `json:"generated_at,omitempty"`
	Model           string `json:"model,omitempty"`
}

// TruncateTagline enforces the tagline length bound. A tagline over the
// limit is cut so the result is exactly MaxTaglineLen runes, the last
// being the ellipsis marker.
func TruncateTagline(s string) string {
	if utf8.RuneCountInString(s) <= MaxTaglineLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:MaxTaglineLen-1]) + "…"
}
