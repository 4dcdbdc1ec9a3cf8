package port

import (
	"context"

	"github.com/avdeev/module-certification/internal/core/domain"
)

// NoteRepository persists workspace notes.
type NoteRepository interface {
	List(ctx context.Context) ([]domain.Note, error)
	Create(ctx context.Context, note domain.Note) error
}
