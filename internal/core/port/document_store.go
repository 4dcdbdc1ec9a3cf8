package port

import "context"

// Document is a raw record fetched from the document store.
type Document struct {
	ID   string
	Data map[string]any
}

// DocumentStore exposes the generic collection/id document interface the
// governance pipeline consumes. Implementations return
// repository.ErrNotFound for absent documents.
type DocumentStore interface {
	Get(ctx context.Context, collection, id string) (*Document, error)
	Add(ctx context.Context, collection string, data map[string]any) (string, error)
	Set(ctx context.Context, collection, id string, data map[string]any) error
}
