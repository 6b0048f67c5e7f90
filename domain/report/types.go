package report

import "time"

// Commentary is the model-written investor framing that accompanies the
// quantitative sections of a report.
type Commentary struct {
	ExecutiveSummary string   `json:"executive_summary"`
	KeyHighlights    []string `json:"key_highlights"`
	InvestmentThesis string   `json:"investment_thesis"`
	RiskSummary      string   `json:"risk_summary"`
	Recommendation   string   `json:"recommendation"`
	RuleBased        bool     `json:"rule_based,omitempty"`
}

// Artifact identifies a rendered report on disk and how to retrieve it.
type Artifact struct {
	ReportID     string    `json:"report_id"`
	HTMLPath     string    `json:"-"`
	WorkbookPath string    `json:"-"`
	DownloadURL  string    `json:"download_url"`
	GeneratedAt  time.Time `json:"generated_at"`
}
