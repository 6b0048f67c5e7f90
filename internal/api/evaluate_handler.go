package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"venturelens/app"
	"venturelens/domain/startup"
	"venturelens/internal"
	"venturelens/internal/errors"
	"venturelens/ports"
)

// maxDeckBytes bounds uploaded pitch decks.
const maxDeckBytes = 20 << 20

// EvaluateHandler serves the full pipeline endpoints.
type EvaluateHandler struct {
	pipeline *app.Pipeline
	reports  *app.ReportStage
	timeout  time.Duration
	logger   *internal.Logger
}

func NewEvaluateHandler(pipeline *app.Pipeline, reports *app.ReportStage, timeout time.Duration, logger *internal.Logger) *EvaluateHandler {
	return &EvaluateHandler{
		pipeline: pipeline,
		reports:  reports,
		timeout:  timeout,
		logger:   logger.WithComponent("api"),
	}
}

// Evaluate runs the whole pipeline. The multipart form accepts one of:
// a "file" upload (PDF pitch deck), a "json_data" field holding a
// structured record, a "url" field, a "text" field, or loose startup
// fields (startup_name, description, market, team, traction).
func (h *EvaluateHandler) Evaluate(c *gin.Context) {
	input, err := h.parseInput(c)
	if err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	result, err := h.pipeline.Run(ctx, *input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *EvaluateHandler) parseInput(c *gin.Context) (*app.PipelineInput, error) {
	contentType := c.ContentType()

	if strings.HasPrefix(contentType, "multipart/form-data") {
		return h.parseMultipart(c)
	}

	// A plain JSON body is treated as a structured record.
	var rec startup.Record
	if err := c.ShouldBindJSON(&rec); err != nil {
		return nil, errors.InvalidInput("request body is not a startup record: " + err.Error())
	}
	return &app.PipelineInput{Record: &rec}, nil
}

func (h *EvaluateHandler) parseMultipart(c *gin.Context) (*app.PipelineInput, error) {
	if file, err := c.FormFile("file"); err == nil {
		if file.Size > maxDeckBytes {
			return nil, errors.InvalidInput("pitch deck exceeds the 20MB limit")
		}
		f, err := file.Open()
		if err != nil {
			return nil, errors.Wrap(err, "failed to open upload")
		}
		defer f.Close()
		data, err := io.ReadAll(io.LimitReader(f, maxDeckBytes))
		if err != nil {
			return nil, errors.Wrap(err, "failed to read upload")
		}
		mime := file.Header.Get("Content-Type")
		if mime == "" {
			mime = "application/pdf"
		}
		return &app.PipelineInput{Deck: &ports.Attachment{MIMEType: mime, Data: data}}, nil
	}

	if raw := strings.TrimSpace(c.PostForm("json_data")); raw != "" {
		var rec startup.Record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, errors.InvalidInput("json_data is not a startup record: " + err.Error())
		}
		return &app.PipelineInput{Record: &rec}, nil
	}

	if url := strings.TrimSpace(c.PostForm("url")); url != "" {
		return &app.PipelineInput{URL: url}, nil
	}
	if text := strings.TrimSpace(c.PostForm("text")); text != "" {
		return &app.PipelineInput{Text: text}, nil
	}

	if rec := recordFromForm(c); rec != nil {
		return &app.PipelineInput{Record: rec}, nil
	}

	return nil, errors.InvalidInput("provide a file upload, a url field, a text field, or startup form fields")
}

// recordFromForm assembles a structured record from loose multipart fields.
func recordFromForm(c *gin.Context) *startup.Record {
	rec := startup.Record{
		Name:        strings.TrimSpace(c.PostForm("startup_name")),
		Description: strings.TrimSpace(c.PostForm("description")),
		Market:      strings.TrimSpace(c.PostForm("market")),
		Team:        strings.TrimSpace(c.PostForm("team")),
		Traction:    strings.TrimSpace(c.PostForm("traction")),
	}
	if rec.Name == "" && rec.Description == "" {
		return nil
	}
	return &rec
}

// DownloadReport streams a rendered HTML report by ID.
func (h *EvaluateHandler) DownloadReport(c *gin.Context) {
	path, err := h.reports.Lookup(c.Param("report_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.File(path)
}

// Health is the liveness probe.
func (h *EvaluateHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// PipelineHealth reports per-stage availability.
func (h *EvaluateHandler) PipelineHealth(c *gin.Context) {
	availability := h.pipeline.StageAvailability()

	allUp := true
	stages := make(map[string]bool, len(availability))
	for stage, up := range availability {
		stages[string(stage)] = up
		if !up {
			allUp = false
		}
	}

	status := "ok"
	if !allUp {
		status = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{
		"status": status,
		"stages": stages,
	})
}
