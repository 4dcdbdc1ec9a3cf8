package postgres

import (
	"context"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avdeev/module-certification/internal/core/domain"
	"github.com/avdeev/module-certification/internal/core/port"
)

// NoteRepository implements port.NoteRepository using PostgreSQL.
type NoteRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewNoteRepository wires a PostgreSQL-backed note repository.
func NewNoteRepository(pool *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{exec: pool, builder: builder()}
}

// List returns all notes, newest first.
func (r *NoteRepository) List(ctx context.Context) ([]domain.Note, error) {
	stmt, args, err := r.builder.
		Select("id", "title", "content", "status", "created_by", "created_at", "updated_at").
		From("notes").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select notes sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("select notes: %w", err)
	}
	defer rows.Close()

	var notes []domain.Note
	for rows.Next() {
		var note domain.Note
		if err := rows.Scan(
			&note.ID,
			&note.Title,
			&note.Content,
			&note.Status,
			&note.CreatedBy,
			&note.CreatedAt,
			&note.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}

	return notes, nil
}

// Create inserts a new note.
func (r *NoteRepository) Create(ctx context.Context, note domain.Note) error {
	stmt, args, err := r.builder.
		Insert("notes").
		Columns("id", "title", "content", "status", "created_by", "created_at", "updated_at").
		Values(note.ID, note.Title, note.Content, note.Status, note.CreatedBy, note.CreatedAt, note.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert note sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert note: %w", err)
	}

	return nil
}

var _ port.NoteRepository = (*NoteRepository)(nil)
