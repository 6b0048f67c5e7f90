package fetch

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"venturelens/internal/errors"
)

// maxBodyBytes caps how much of a page is read during URL ingestion.
const maxBodyBytes = 2 << 20

// HTTPPageFetcher implements ports.PageFetcher over plain HTTP.
type HTTPPageFetcher struct {
	client *http.Client
}

func NewHTTPPageFetcher(timeout time.Duration) *HTTPPageFetcher {
	return &HTTPPageFetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// FetchText downloads the page and returns its visible text with
// whitespace collapsed. Script, style, and metadata content is dropped.
func (f *HTTPPageFetcher) FetchText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.Wrap(err, "failed to build page request")
	}
	req.Header.Set("User-Agent", "venturelens/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", errors.ExternalServiceError("page fetch", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errors.New(errors.CodeExternalService, "page fetch returned http "+resp.Status)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", errors.Wrap(err, "failed to parse page html")
	}

	text := ExtractVisibleText(doc)
	if text == "" {
		return "", errors.New(errors.CodeInvalidInput, "page contains no readable text")
	}
	return text, nil
}

// ExtractVisibleText walks the parsed document and joins its text nodes.
func ExtractVisibleText(doc *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "head":
				return
			}
		}
		if n.Type == html.TextNode {
			trimmed := strings.TrimSpace(n.Data)
			if trimmed != "" {
				sb.WriteString(trimmed)
				sb.WriteByte(' ')
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return strings.TrimSpace(sb.String())
}
