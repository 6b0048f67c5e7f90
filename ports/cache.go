package ports

import (
	"context"
	"time"

	"venturelens/domain/narrative"
)

// NarrativeCache stores generated narratives keyed by startup identity.
// Implementations must treat backend outages as recoverable: callers
// fall through to generation when Get fails.
type NarrativeCache interface {
	Get(ctx context.Context, key string) (*narrative.Report, bool, error)
	Set(ctx context.Context, key string, rep *narrative.Report, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
