package api

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"venturelens/internal"
	"venturelens/internal/errors"
	"venturelens/internal/pitchdeck"
)

// PitchdeckHandler serves deck structure analysis.
type PitchdeckHandler struct {
	analyzer *pitchdeck.Analyzer
	logger   *internal.Logger
}

func NewPitchdeckHandler(analyzer *pitchdeck.Analyzer, logger *internal.Logger) *PitchdeckHandler {
	return &PitchdeckHandler{
		analyzer: analyzer,
		logger:   logger.WithComponent("api"),
	}
}

// AnalyzeUpload analyzes deck text submitted either as a "file" upload
// (plain text export) or a "text" form field.
func (h *PitchdeckHandler) AnalyzeUpload(c *gin.Context) {
	text, err := h.uploadText(c)
	if err != nil {
		respondError(c, err)
		return
	}

	analysis, err := h.analyzer.Analyze(c.Request.Context(), text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

func (h *PitchdeckHandler) uploadText(c *gin.Context) (string, error) {
	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			return "", errors.Wrap(err, "failed to open upload")
		}
		defer f.Close()
		data, err := io.ReadAll(io.LimitReader(f, maxDeckBytes))
		if err != nil {
			return "", errors.Wrap(err, "failed to read upload")
		}
		return string(data), nil
	}
	if text := strings.TrimSpace(c.PostForm("text")); text != "" {
		return text, nil
	}
	return "", errors.InvalidInput("provide a file upload or a text field")
}

type pathRequest struct {
	Path string `json:"path" binding:"required"`
}

// AnalyzePath analyzes a deck text file already on the server's disk.
// Only .txt files are accepted.
func (h *PitchdeckHandler) AnalyzePath(c *gin.Context) {
	var req pathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidInput("request body must be JSON with a path field"))
		return
	}

	if filepath.Ext(req.Path) != ".txt" {
		respondError(c, errors.InvalidInput("only .txt files are supported"))
		return
	}

	data, err := os.ReadFile(req.Path)
	if err != nil {
		respondError(c, errors.NotFound("pitch deck file"))
		return
	}

	analysis, err := h.analyzer.Analyze(c.Request.Context(), string(data))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}
