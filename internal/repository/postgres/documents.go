package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avdeev/module-certification/internal/core/port"
	"github.com/avdeev/module-certification/internal/repository"
)

// DocumentStore implements port.DocumentStore over a generic JSONB documents
// table keyed by (collection, id).
type DocumentStore struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewDocumentStore wires a PostgreSQL-backed document store.
func NewDocumentStore(pool *pgxpool.Pool) *DocumentStore {
	return &DocumentStore{exec: pool, builder: builder()}
}

// Get fetches a single document by collection and id.
func (s *DocumentStore) Get(ctx context.Context, collection, id string) (*port.Document, error) {
	stmt, args, err := s.builder.
		Select("data").
		From("documents").
		Where(squirrel.Eq{"collection": collection, "id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select document sql: %w", err)
	}

	var raw []byte
	if err := s.exec.QueryRow(ctx, stmt, args...).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("select document: %w", err)
	}

	data := make(map[string]any)
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode document data: %w", err)
	}

	return &port.Document{ID: id, Data: data}, nil
}

// Add inserts a new document with a generated id and returns the id.
func (s *DocumentStore) Add(ctx context.Context, collection string, data map[string]any) (string, error) {
	id := uuid.NewString()

	raw, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("encode document data: %w", err)
	}

	stmt, args, err := s.builder.
		Insert("documents").
		Columns("collection", "id", "data").
		Values(collection, id, raw).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build insert document sql: %w", err)
	}

	if _, err := s.exec.Exec(ctx, stmt, args...); err != nil {
		return "", fmt.Errorf("insert document: %w", err)
	}

	return id, nil
}

// Set writes the document under the given id, replacing any existing data.
func (s *DocumentStore) Set(ctx context.Context, collection, id string, data map[string]any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode document data: %w", err)
	}

	stmt, args, err := s.builder.
		Insert("documents").
		Columns("collection", "id", "data").
		Values(collection, id, raw).
		Suffix("ON CONFLICT (collection, id) DO UPDATE SET data = EXCLUDED.data").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert document sql: %w", err)
	}

	if _, err := s.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}

	return nil
}

var _ port.DocumentStore = (*DocumentStore)(nil)
