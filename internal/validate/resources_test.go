package validate

import (
	"testing"

	"github.com/avdeev/module-certification/internal/core/domain"
)

func TestModuleInputTitleTooShort(t *testing.T) {
	_, err := ModuleInput(map[string]any{
		"titleEn":       "ab",
		"descriptionEn": "1234567890",
	})

	verr := requireValidationError(t, err, "English Title")
	requireValidationError(t, err, "between 3 and 200")
	if verr.Field != "English Title" {
		t.Fatalf("expected field English Title, got %q", verr.Field)
	}
}

func TestModuleInputFirstErrorWins(t *testing.T) {
	// Both title and description are invalid; title is declared first.
	_, err := ModuleInput(map[string]any{
		"titleEn":       "",
		"descriptionEn": "short",
	})
	requireValidationError(t, err, "English Title is required")
}

func TestModuleInputValid(t *testing.T) {
	record, err := ModuleInput(map[string]any{
		"titleEn":       "Safety Fundamentals",
		"descriptionEn": "Covers the full safety baseline for operators.",
		"code":          "SF-101",
		"durationHours": 12.0,
		"level":         "beginner",
	})
	if err != nil {
		t.Fatalf("ModuleInput returned error: %v", err)
	}

	if record.TitleEn != "Safety Fundamentals" {
		t.Fatalf("unexpected title %q", record.TitleEn)
	}
	if record.Code == nil || *record.Code != "SF-101" {
		t.Fatalf("expected code SF-101, got %v", record.Code)
	}
	if record.DurationHours == nil || *record.DurationHours != 12 {
		t.Fatalf("expected duration 12, got %v", record.DurationHours)
	}
	if record.Level == nil || *record.Level != "beginner" {
		t.Fatalf("expected level beginner, got %v", record.Level)
	}
}

func TestModuleInputOptionalFieldsAbsent(t *testing.T) {
	record, err := ModuleInput(map[string]any{
		"titleEn":       "Safety Fundamentals",
		"descriptionEn": "Covers the full safety baseline for operators.",
	})
	if err != nil {
		t.Fatalf("ModuleInput returned error: %v", err)
	}
	if record.Code != nil || record.DurationHours != nil || record.Level != nil {
		t.Fatalf("expected optional fields nil, got %+v", record)
	}
}

func TestCertificationRoundInputDueBeforeStart(t *testing.T) {
	_, err := CertificationRoundInput(map[string]any{
		"name":      "Spring 2026",
		"startDate": "2026-04-01",
		"dueDate":   "2026-03-01",
	})
	requireValidationError(t, err, "Due date must be after start date")
}

func TestCertificationRoundInputDueEqualsStart(t *testing.T) {
	_, err := CertificationRoundInput(map[string]any{
		"name":      "Spring 2026",
		"startDate": "2026-04-01",
		"dueDate":   "2026-04-01",
	})
	requireValidationError(t, err, "Due date must be after start date")
}

func TestCertificationRoundInputValid(t *testing.T) {
	record, err := CertificationRoundInput(map[string]any{
		"name":      "Spring 2026",
		"startDate": "2026-04-01",
		"dueDate":   "2026-06-30",
		"status":    "active",
	})
	if err != nil {
		t.Fatalf("CertificationRoundInput returned error: %v", err)
	}

	if record.Status != domain.RoundStatusActive {
		t.Fatalf("expected active status, got %q", record.Status)
	}
	if !record.DueDate.After(record.StartDate) {
		t.Fatalf("expected due date after start date")
	}
}

func TestCertificationRoundInputDefaultStatus(t *testing.T) {
	record, err := CertificationRoundInput(map[string]any{
		"name":      "Spring 2026",
		"startDate": "2026-04-01",
		"dueDate":   "2026-06-30",
	})
	if err != nil {
		t.Fatalf("CertificationRoundInput returned error: %v", err)
	}
	if record.Status != domain.RoundStatusDraft {
		t.Fatalf("expected draft default, got %q", record.Status)
	}
}

func TestCommentInput(t *testing.T) {
	record, err := CommentInput(map[string]any{
		"resourceType": "module",
		"resourceId":   "mod-1",
		"text":         "Looks complete to me.",
	})
	if err != nil {
		t.Fatalf("CommentInput returned error: %v", err)
	}
	if record.Text != "Looks complete to me." {
		t.Fatalf("unexpected text %q", record.Text)
	}

	_, err = CommentInput(map[string]any{
		"resourceType": "webhook",
		"resourceId":   "mod-1",
		"text":         "hi",
	})
	requireValidationError(t, err, "Resource Type must be one of")
}

func TestUserInput(t *testing.T) {
	record, err := UserInput(map[string]any{
		"email":       "Ops@Example.com",
		"displayName": "Operations Desk",
		"role":        "operations",
	}, []string{"example.com"})
	if err != nil {
		t.Fatalf("UserInput returned error: %v", err)
	}

	if record.Email != "ops@example.com" {
		t.Fatalf("expected normalized email, got %q", record.Email)
	}
	if record.Role != domain.RoleOperations {
		t.Fatalf("expected operations role, got %q", record.Role)
	}
	if !record.Active {
		t.Fatalf("expected active default true")
	}

	_, err = UserInput(map[string]any{
		"email":       "ops@example.com",
		"displayName": "Operations Desk",
		"role":        "superuser",
	}, []string{"example.com"})
	requireValidationError(t, err, "Role must be one of")
}

func TestNoteInputTitleCheckedFirst(t *testing.T) {
	// Title (length 2) and content (length 5) both violate their minimums;
	// the title failure is reported.
	_, err := NoteInput(map[string]any{
		"title":   "Hi",
		"content": "short",
	})
	requireValidationError(t, err, "Title must be between 3 and 200 characters")
}

func TestNoteInputContentTooShort(t *testing.T) {
	_, err := NoteInput(map[string]any{
		"title":   "Valid Title",
		"content": "short",
	})
	requireValidationError(t, err, "Content must be between 10 and 10000 characters")
}

func TestNoteInputValid(t *testing.T) {
	record, err := NoteInput(map[string]any{
		"title":   "  Valid Title  ",
		"content": "Sufficiently long content.",
	})
	if err != nil {
		t.Fatalf("NoteInput returned error: %v", err)
	}
	if record.Title != "Valid Title" {
		t.Fatalf("expected trimmed title, got %q", record.Title)
	}
}
