package ports

import "context"

// PageFetcher retrieves the readable text of a web page for URL-based
// ingestion.
type PageFetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}
