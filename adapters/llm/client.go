package llm

import (
	"context"
	"strings"
	"time"

	"google.golang.org/genai"

	"venturelens/internal/errors"
	"venturelens/ports"
)

// Config holds Gemini client settings.
type Config struct {
	APIKey          string
	Model           string
	MaxOutputTokens int
	Temperature     float64
	Timeout         time.Duration
}

// GeminiClient implements ports.ModelClient against the Gemini API.
// A client built without an API key stays usable: Available reports
// false and Generate refuses to call out.
type GeminiClient struct {
	client *genai.Client
	config Config
}

// NewGeminiClient creates a Gemini-backed model client. When no API key
// is configured the returned client is a permanent unavailable stub.
func NewGeminiClient(ctx context.Context, config Config) (*GeminiClient, error) {
	if strings.TrimSpace(config.APIKey) == "" {
		return &GeminiClient{config: config}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create gemini client")
	}

	return &GeminiClient{client: client, config: config}, nil
}

func (c *GeminiClient) Available() bool {
	return c.client != nil
}

func (c *GeminiClient) Model() string {
	return c.config.Model
}

func (c *GeminiClient) Generate(ctx context.Context, req ports.ModelRequest) (string, error) {
	if c.client == nil {
		return "", errors.New(errors.CodeStageUnavailable, "gemini client is not configured")
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return "", errors.InvalidInput("prompt is empty")
	}

	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	parts := []*genai.Part{{Text: req.Prompt}}
	if req.Attachment != nil {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: req.Attachment.MIMEType,
				Data:     req.Attachment.Data,
			},
		})
	}

	contents := []*genai.Content{{Parts: parts, Role: "user"}}

	genConfig := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(c.config.Temperature)),
		MaxOutputTokens: int32(c.config.MaxOutputTokens),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.config.Model, contents, genConfig)
	if err != nil {
		return "", errors.ExternalServiceError("gemini", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", errors.New(errors.CodeExternalService, "gemini returned an empty response")
	}
	return text, nil
}
