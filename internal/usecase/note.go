package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avdeev/module-certification/internal/audit"
	"github.com/avdeev/module-certification/internal/core/domain"
	"github.com/avdeev/module-certification/internal/core/port"
	"github.com/avdeev/module-certification/internal/guard"
	"github.com/avdeev/module-certification/internal/validate"
)

// RequestMeta carries transport-level request attributes into the audit trail.
type RequestMeta struct {
	IPAddress string
}

// GuardLimits configures the abuse-guard budgets applied by the services.
// Zero values fall back to the guard package defaults.
type GuardLimits struct {
	MaxRequests     int
	Window          time.Duration
	DuplicateWindow time.Duration
}

// NoteService governs the workspace notes endpoints. Note operations are
// deliberately outside the certification-round gate: notes are working
// memory, not certified content.
type NoteService struct {
	authz  *AuthzService
	guard  *guard.Guard
	notes  port.NoteRepository
	audit  *audit.Recorder
	limits GuardLimits
	now    func() time.Time
}

// NewNoteService constructs a NoteService instance.
func NewNoteService(authz *AuthzService, g *guard.Guard, notes port.NoteRepository, recorder *audit.Recorder, limits GuardLimits) *NoteService {
	return &NoteService{
		authz:  authz,
		guard:  g,
		notes:  notes,
		audit:  recorder,
		limits: limits,
		now:    time.Now,
	}
}

// WithClock allows injection of a custom clock (primarily for testing).
func (s *NoteService) WithClock(now func() time.Time) *NoteService {
	if now != nil {
		s.now = now
	}
	return s
}

// ReadNotes returns all notes, newest first. Any authenticated active user
// may read; no role floor applies.
func (s *NoteService) ReadNotes(ctx context.Context, ident *domain.Identity) ([]domain.Note, error) {
	if _, err := s.authz.AuthorizeRequest(ctx, ident, AuthorizeOptions{}); err != nil {
		return nil, err
	}

	notes, err := s.notes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	return notes, nil
}

// CreateNote runs the full pipeline for a note submission: abuse guard,
// authorization, validation, persistence, audit. The guard runs only for
// identified callers so that an unauthenticated request still reports the
// authentication failure, not a rate-limit one.
func (s *NoteService) CreateNote(ctx context.Context, ident *domain.Identity, raw map[string]any, meta RequestMeta) (*domain.Note, error) {
	const action = "note.created"

	if ident != nil && ident.UID != "" {
		if err := s.guard.CheckRateLimit(ctx, ident.UID, action, s.limits.MaxRequests, s.limits.Window); err != nil {
			return nil, err
		}
		if content, ok := raw["content"].(string); ok && content != "" {
			if err := s.guard.CheckDuplicateContent(ctx, ident.UID, content, action, s.limits.DuplicateWindow); err != nil {
				return nil, err
			}
		}
	}

	result, err := s.authz.AuthorizeRequest(ctx, ident, AuthorizeOptions{})
	if err != nil {
		return nil, err
	}

	record, err := validate.NoteInput(raw)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	note := domain.Note{
		ID:        uuid.NewString(),
		Title:     record.Title,
		Content:   record.Content,
		Status:    domain.NoteStatusActive,
		CreatedBy: result.User.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.notes.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}

	s.audit.Record(ctx, domain.AuditEntry{
		Action:       action,
		UserID:       result.User.UserID,
		UserEmail:    result.User.Email,
		UserRole:     result.User.Role,
		ResourceType: "note",
		ResourceID:   note.ID,
		Details:      map[string]any{"title": note.Title},
		IPAddress:    meta.IPAddress,
	})

	return &note, nil
}
