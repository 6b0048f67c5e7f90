package startup

import "strings"

// Record is the structured startup profile produced by ingestion.
// It is immutable once produced for a pipeline run: stages read it,
// none of them write it back.
type Record struct {
	Name          string `json:"startup_name"`
	Description   string `json:"description"`
	Problem       string `json:"problem"`
	Solution      string `json:"solution"`
	Traction      string `json:"traction"`
	Team          string `json:"team"`
	Market        string `json:"market"`
	BusinessModel string `json:"business_model"`
	Competition   string `json:"competition"`
	Funding       string `json:"funding"`
	Stage         string `json:"stage"`
	Technology    string `json:"technology"`
	Sector        string `json:"sector"`

	Source SourceMeta `json:"_metadata,omitempty"`
}

// SourceMeta records where a profile came from.
type SourceMeta struct {
	SourceType    string `json:"source_type,omitempty"` // "text", "pdf", "url", "json"
	FileName      string `json:"file_name,omitempty"`
	URL           string `json:"url,omitempty"`
	TotalSlides   int    `json:"total_slides,omitempty"`
	ContentLength int    `json:"content_length,omitempty"`
}

// DisplayName resolves a presentable startup name.
func (r Record) DisplayName() string {
	if n := strings.TrimSpace(r.Name); n != "" {
		return n
	}
	return "Unnamed Startup"
}

// SectorOrDefault resolves the industry sector, defaulting to Technology.
func (r Record) SectorOrDefault() string {
	if s := strings.TrimSpace(r.Sector); s != "" {
		return s
	}
	return "Technology"
}

// StageOrDefault resolves the funding stage, defaulting to Seed.
func (r Record) StageOrDefault() string {
	if s := strings.TrimSpace(r.Stage); s != "" {
		return s
	}
	return "Seed"
}
