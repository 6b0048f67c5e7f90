package ports

import "context"

// Attachment is a binary payload sent alongside a prompt, such as an
// uploaded pitch deck.
type Attachment struct {
	MIMEType string
	Data     []byte
}

// ModelRequest describes one generation call.
type ModelRequest struct {
	Prompt     string
	Attachment *Attachment
}

// ModelClient defines the interface for text generation backends.
// Available reports whether the backend is configured; stages check it
// before doing any work.
type ModelClient interface {
	Available() bool
	Model() string
	Generate(ctx context.Context, req ModelRequest) (string, error)
}
