package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/avdeev/module-certification/internal/core/domain"
	"github.com/avdeev/module-certification/internal/guard"
	"github.com/avdeev/module-certification/internal/validate"
)

func TestCreateNote(t *testing.T) {
	env := newTestEnv(t)

	note, err := env.noteSvc.CreateNote(context.Background(), ident("u-ops"), map[string]any{
		"title":   "  Migration checklist  ",
		"content": "Verify the module catalogue before the round closes.",
	}, RequestMeta{IPAddress: "203.0.113.7"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if note.Title != "Migration checklist" {
		t.Fatalf("expected trimmed title, got %q", note.Title)
	}
	if note.Status != domain.NoteStatusActive {
		t.Fatalf("expected active status, got %q", note.Status)
	}
	if note.CreatedBy != "u-ops" {
		t.Fatalf("expected creator u-ops, got %q", note.CreatedBy)
	}
	if !note.CreatedAt.Equal(env.clock.now) {
		t.Fatalf("expected clock timestamp, got %v", note.CreatedAt)
	}

	if len(env.notes.notes) != 1 {
		t.Fatalf("expected one persisted note, got %d", len(env.notes.notes))
	}
	if len(env.published.entries) != 1 {
		t.Fatalf("expected one audit entry, got %d", len(env.published.entries))
	}
	entry := env.published.entries[0]
	if entry.Action != "note.created" || entry.ResourceID != note.ID || entry.IPAddress != "203.0.113.7" {
		t.Fatalf("unexpected audit entry %+v", entry)
	}
}

func TestCreateNoteWithoutRound(t *testing.T) {
	// Notes are working memory, not certified content: no round gate.
	env := newTestEnv(t)

	if env.rounds.active != nil {
		t.Fatal("precondition: no active round")
	}

	_, err := env.noteSvc.CreateNote(context.Background(), ident("u-ops"), map[string]any{
		"title":   "Standup follow-ups",
		"content": "Collect the outstanding reviewer assignments.",
	}, RequestMeta{})
	if err != nil {
		t.Fatalf("expected note creation without a round, got %v", err)
	}
}

func TestCreateNoteValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// The title is validated before the content.
	_, err := env.noteSvc.CreateNote(ctx, ident("u-ops"), map[string]any{
		"title":   "Hi",
		"content": "short",
	}, RequestMeta{})

	var verr *validate.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Field != "Title" {
		t.Fatalf("expected Title cited first, got %q", verr.Field)
	}

	if len(env.notes.notes) != 0 {
		t.Fatal("rejected note must not be persisted")
	}
	if len(env.published.entries) != 0 {
		t.Fatal("rejected note must not be audited")
	}
}

func TestCreateNoteUnauthenticated(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.noteSvc.CreateNote(context.Background(), nil, map[string]any{
		"title":   "Valid title",
		"content": "Long enough content here.",
	}, RequestMeta{})
	if !errors.Is(err, ErrNoAuthentication) {
		t.Fatalf("expected ErrNoAuthentication, got %v", err)
	}
}

func TestCreateNoteRateLimited(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		raw := map[string]any{
			"title":   "Checklist entry",
			"content": time.Now().String() + " distinct content number " + string(rune('a'+i)),
		}
		if _, err := env.noteSvc.CreateNote(ctx, ident("u-ops"), raw, RequestMeta{}); err != nil {
			t.Fatalf("request %d unexpectedly rejected: %v", i+1, err)
		}
		env.clock.Advance(time.Second)
	}

	_, err := env.noteSvc.CreateNote(ctx, ident("u-ops"), map[string]any{
		"title":   "Checklist entry",
		"content": "one more distinct content body",
	}, RequestMeta{})
	if !errors.Is(err, guard.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestCreateNoteDuplicateSuppressed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	raw := map[string]any{
		"title":   "Checklist entry",
		"content": "Exactly the same body submitted twice in a row.",
	}

	if _, err := env.noteSvc.CreateNote(ctx, ident("u-ops"), raw, RequestMeta{}); err != nil {
		t.Fatalf("first submission rejected: %v", err)
	}

	env.clock.Advance(5 * time.Second)

	_, err := env.noteSvc.CreateNote(ctx, ident("u-ops"), raw, RequestMeta{})
	if !errors.Is(err, guard.ErrDuplicateSubmission) {
		t.Fatalf("expected ErrDuplicateSubmission, got %v", err)
	}
}

func TestReadNotes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.noteSvc.ReadNotes(ctx, nil); !errors.Is(err, ErrNoAuthentication) {
		t.Fatalf("expected ErrNoAuthentication, got %v", err)
	}

	env.notes.notes = []domain.Note{{ID: "n-1", Title: "Kept"}}

	notes, err := env.noteSvc.ReadNotes(ctx, ident("u-ops"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notes) != 1 || notes[0].ID != "n-1" {
		t.Fatalf("unexpected notes %+v", notes)
	}
}
