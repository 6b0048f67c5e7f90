package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venturelens/adapters/llm"
	"venturelens/adapters/render"
	"venturelens/app"
	"venturelens/internal"
	"venturelens/internal/pitchdeck"
)

const (
	ingestionResponse = `{"startup_name": "Acme Robotics", "description": "Robotic arms.", "sector": "Robotics"}`
	scoreResponse     = `{
		"market": {"score": 15, "reasoning": "r"},
		"product": {"score": 14, "reasoning": "r"},
		"team": {"score": 16, "reasoning": "r"},
		"traction": {"score": 12, "reasoning": "r"},
		"risk": {"score": 13, "reasoning": "r"}
	}`
	critiqueResponse = `{
		"red_flags": [
			{"issue": "A", "severity": "High", "reason": "r"},
			{"issue": "B", "severity": "Medium", "reason": "r"},
			{"issue": "C", "severity": "Low", "reason": "r"}
		],
		"overall_risk_level": "High",
		"summary": "s"
	}`
	narrativeResponse = `{"vision_statement": "v", "differentiation": "d", "market_timing": "m", "tagline": "t"}`
	benchmarkResponse = `{
		"industry": "Robotics",
		"comparisons": [{"metric": "ARR", "startup_value": "$1M", "sector_avg": "$2M", "percentile": 40, "insight": "i"}],
		"overall_position": "Average",
		"summary": "s"
	}`
	commentaryResponse = `{"executive_summary": "e", "key_highlights": ["h"], "investment_thesis": "t", "risk_summary": "r", "recommendation": "Promising"}`
)

func newTestServer(t *testing.T, model *llm.MockModelClient) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := internal.NewLogger(internal.LogLevelError)
	renderer, err := render.NewHTMLRenderer()
	require.NoError(t, err)

	ingestion := app.NewIngestionStage(model, nil, logger)
	scoring := app.NewScoringStage(model, logger)
	critiqueStage := app.NewCritiqueStage(model, nil, logger)
	narrativeStage := app.NewNarrativeStage(model, nil, time.Hour, logger)
	benchmarkStage := app.NewBenchmarkStage(model, nil, logger)
	reportStage := app.NewReportStage(model, renderer, render.NewWorkbookWriter(), t.TempDir(), "", logger)
	pipeline := app.NewPipeline(ingestion, scoring, critiqueStage, narrativeStage, benchmarkStage, reportStage, logger)

	return NewServer(
		pipeline,
		ingestion,
		critiqueStage,
		narrativeStage,
		reportStage,
		app.NewQuickScorer(model, logger),
		pitchdeck.NewAnalyzer(model, logger),
		time.Minute,
		logger,
	)
}

func doJSON(srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, &llm.MockModelClient{})
	w := doJSON(srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPipelineHealthDegraded(t *testing.T) {
	srv := newTestServer(t, &llm.MockModelClient{Unavailable: true})
	w := doJSON(srv, http.MethodGet, "/evaluate/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status string          `json:"status"`
		Stages map[string]bool `json:"stages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.False(t, body.Stages["scoring"])
	assert.True(t, body.Stages["report"])
}

func TestEvaluateEndToEnd(t *testing.T) {
	model := &llm.MockModelClient{Responses: []string{
		scoreResponse, critiqueResponse, narrativeResponse, benchmarkResponse, commentaryResponse,
	}}
	srv := newTestServer(t, model)

	w := doJSON(srv, http.MethodPost, "/evaluate", map[string]string{
		"startup_name": "Acme Robotics",
		"description":  "Robotic arms.",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result struct {
		EvaluationID string `json:"evaluation_id"`
		Report       struct {
			ReportID    string `json:"report_id"`
			DownloadURL string `json:"download_url"`
		} `json:"report"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.NotEmpty(t, result.EvaluationID)
	require.NotEmpty(t, result.Report.ReportID)

	// The rendered report is downloadable.
	dl := doJSON(srv, http.MethodGet, "/evaluate/reports/"+result.Report.ReportID, nil)
	assert.Equal(t, http.StatusOK, dl.Code)
	assert.Contains(t, dl.Body.String(), "Acme Robotics")
}

func TestEvaluateUnavailableStageReturns503(t *testing.T) {
	srv := newTestServer(t, &llm.MockModelClient{Unavailable: true})

	w := doJSON(srv, http.MethodPost, "/evaluate", map[string]string{
		"startup_name": "Acme Robotics",
		"description":  "Robotic arms.",
	})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestEvaluateMultipartText(t *testing.T) {
	model := &llm.MockModelClient{Responses: []string{
		ingestionResponse, scoreResponse, critiqueResponse, narrativeResponse, benchmarkResponse, commentaryResponse,
	}}
	srv := newTestServer(t, model)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("text", "Acme Robotics builds robotic arms."))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/evaluate", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestEvaluateMultipartFormFields(t *testing.T) {
	model := &llm.MockModelClient{Responses: []string{
		scoreResponse, critiqueResponse, narrativeResponse, benchmarkResponse, commentaryResponse,
	}}
	srv := newTestServer(t, model)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("startup_name", "Acme Robotics"))
	require.NoError(t, mw.WriteField("description", "Robotic arms."))
	require.NoError(t, mw.WriteField("traction", "120 customers"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/evaluate", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Acme Robotics")
}

func TestEvaluateRejectsEmptyMultipart(t *testing.T) {
	srv := newTestServer(t, &llm.MockModelClient{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/evaluate", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportInvalidID(t *testing.T) {
	srv := newTestServer(t, &llm.MockModelClient{})
	w := doJSON(srv, http.MethodGet, "/evaluate/reports/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuickScoreEndpoint(t *testing.T) {
	model := &llm.MockModelClient{Responses: []string{`{"idea": 8, "team": 7, "traction": 6, "market": 9}`}}
	srv := newTestServer(t, model)

	// The documented body carries the four text fields; startup_name is
	// optional.
	w := doJSON(srv, http.MethodPost, "/score", map[string]string{
		"idea":     "AI healthcare cost reduction platform",
		"team":     "2 ex-Google engineers, 10 years ML",
		"traction": "50 customers, $50K MRR, 20% MoM growth",
		"market":   "$50B TAM, 15% CAGR",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body app.QuickScore
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.InDelta(t, 7.4, body.OverallScore, 1e-9)
}

func TestQuickScoreRejectsEmptyBody(t *testing.T) {
	srv := newTestServer(t, &llm.MockModelClient{})
	w := doJSON(srv, http.MethodPost, "/score", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCritiqueEndpointUnavailable(t *testing.T) {
	srv := newTestServer(t, &llm.MockModelClient{Unavailable: true})
	w := doJSON(srv, http.MethodPost, "/critique", map[string]string{"startup_name": "Acme"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCritiqueEndpointFallbackUsesScoreReport(t *testing.T) {
	// Unparseable model output forces the rule-based path; the submitted
	// score report drives its dimension thresholds.
	model := &llm.MockModelClient{Responses: []string{"I cannot produce JSON today."}}
	srv := newTestServer(t, model)

	w := doJSON(srv, http.MethodPost, "/critique", map[string]any{
		"startup_name": "Acme Robotics",
		"description":  "Robotic arms.",
		"score_report": map[string]any{
			"startup_name":  "Acme Robotics",
			"overall_score": 4.1,
			"breakdown": map[string]any{
				"market":   map[string]any{"score": 16},
				"product":  map[string]any{"score": 15},
				"team":     map[string]any{"score": 2},
				"traction": map[string]any{"score": 4},
				"risk":     map[string]any{"score": 18},
			},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var rep struct {
		RedFlags []struct {
			Issue    string `json:"issue"`
			Severity string `json:"severity"`
		} `json:"red_flags"`
		RuleBased bool `json:"rule_based"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))
	assert.True(t, rep.RuleBased)

	issues := make(map[string]string, len(rep.RedFlags))
	for _, f := range rep.RedFlags {
		issues[f.Issue] = f.Severity
	}
	assert.Equal(t, "High", issues["Team gaps"])
	assert.Equal(t, "Medium", issues["Insufficient traction"])
	assert.NotContains(t, issues, "Limited diligence signal")
}

func TestNarrativeCacheEndpoints(t *testing.T) {
	srv := newTestServer(t, &llm.MockModelClient{})

	// No cache backend is wired in this test server, so lookups miss.
	w := doJSON(srv, http.MethodGet, "/narrative/cache/acme", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(srv, http.MethodDelete, "/narrative/cache/acme", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAnalyzePitchdeckText(t *testing.T) {
	srv := newTestServer(t, &llm.MockModelClient{Unavailable: true})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("text", "The problem: labor is scarce\f Our team: CEO and CTO"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyze-pitchdeck", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var analysis pitchdeck.Analysis
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &analysis))
	assert.Equal(t, 2, analysis.TotalSlides)
	assert.Equal(t, "extractive", analysis.Method)
}

func TestAnalyzePitchdeckPathRejectsNonTxt(t *testing.T) {
	srv := newTestServer(t, &llm.MockModelClient{})
	w := doJSON(srv, http.MethodPost, "/analyze-pitchdeck-path", map[string]string{"path": "/tmp/deck.pdf"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIngestEndpoint(t *testing.T) {
	model := &llm.MockModelClient{Responses: []string{ingestionResponse}}
	srv := newTestServer(t, model)

	w := doJSON(srv, http.MethodPost, "/ingest", map[string]string{"text": "Acme Robotics builds robotic arms."})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Acme Robotics")

	w = doJSON(srv, http.MethodPost, "/ingest", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
