package port

import (
	"context"
	"time"
)

// DuplicateStore tracks the last submission timestamp per duplicate key.
type DuplicateStore interface {
	LastSubmission(ctx context.Context, key string) (time.Time, bool, error)
	RecordSubmission(ctx context.Context, key string, at time.Time) error
	// Sweep removes every record older than the cutoff, regardless of key.
	Sweep(ctx context.Context, cutoff time.Time) error
}
