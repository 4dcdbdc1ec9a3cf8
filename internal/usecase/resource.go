package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avdeev/module-certification/internal/audit"
	"github.com/avdeev/module-certification/internal/core/domain"
	"github.com/avdeev/module-certification/internal/core/port"
	"github.com/avdeev/module-certification/internal/guard"
	"github.com/avdeev/module-certification/internal/repository"
	"github.com/avdeev/module-certification/internal/validate"
)

// Document collections managed through the governance pipeline.
const (
	CollectionModules  = "modules"
	CollectionCourses  = "courses"
	CollectionComments = "comments"
)

// ResourceService governs the certified-content endpoints: modules, courses,
// certification rounds, comments, and user administration. All mutations run
// the same pipeline: abuse guard, authorization, validation, persistence,
// audit.
type ResourceService struct {
	authz          *AuthzService
	guard          *guard.Guard
	documents      port.DocumentStore
	rounds         port.RoundRepository
	users          port.UserProfileRepository
	audit          *audit.Recorder
	limits         GuardLimits
	allowedDomains []string
	now            func() time.Time
}

// NewResourceService constructs a ResourceService instance.
func NewResourceService(
	authz *AuthzService,
	g *guard.Guard,
	documents port.DocumentStore,
	rounds port.RoundRepository,
	users port.UserProfileRepository,
	recorder *audit.Recorder,
	limits GuardLimits,
	allowedDomains []string,
) *ResourceService {
	return &ResourceService{
		authz:          authz,
		guard:          g,
		documents:      documents,
		rounds:         rounds,
		users:          users,
		audit:          recorder,
		limits:         limits,
		allowedDomains: allowedDomains,
		now:            time.Now,
	}
}

// WithClock allows injection of a custom clock (primarily for testing).
func (s *ResourceService) WithClock(now func() time.Time) *ResourceService {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *ResourceService) checkRate(ctx context.Context, ident *domain.Identity, action string) error {
	if ident == nil || ident.UID == "" {
		return nil
	}
	return s.guard.CheckRateLimit(ctx, ident.UID, action, s.limits.MaxRequests, s.limits.Window)
}

// CreateModule creates a module document. Requires at least the programOwner
// role and an active certification round.
func (s *ResourceService) CreateModule(ctx context.Context, ident *domain.Identity, raw map[string]any, meta RequestMeta) (string, error) {
	const action = "module.created"

	if err := s.checkRate(ctx, ident, action); err != nil {
		return "", err
	}

	result, err := s.authz.AuthorizeRequest(ctx, ident, AuthorizeOptions{
		MinRole:            domain.RoleProgramOwner,
		RequireActiveRound: true,
	})
	if err != nil {
		return "", err
	}

	record, err := validate.ModuleInput(raw)
	if err != nil {
		return "", err
	}

	now := s.now().UTC()
	data := map[string]any{
		"titleEn":       record.TitleEn,
		"descriptionEn": record.DescriptionEn,
		"createdBy":     result.User.UserID,
		"createdAt":     now,
		"updatedAt":     now,
	}
	if record.Code != nil {
		data["code"] = *record.Code
	}
	if record.DurationHours != nil {
		data["durationHours"] = *record.DurationHours
	}
	if record.Level != nil {
		data["level"] = *record.Level
	}

	id, err := s.documents.Add(ctx, CollectionModules, data)
	if err != nil {
		return "", fmt.Errorf("create module: %w", err)
	}

	s.audit.Record(ctx, domain.AuditEntry{
		Action:       action,
		UserID:       result.User.UserID,
		UserEmail:    result.User.Email,
		UserRole:     result.User.Role,
		ResourceType: "module",
		ResourceID:   id,
		Details:      map[string]any{"titleEn": record.TitleEn},
		IPAddress:    meta.IPAddress,
	})

	return id, nil
}

// UpdateModule rewrites the mutable fields of an existing module. Requires at
// least programOwner, an active round, and ownership of the module; sysadmin
// bypasses the ownership check only.
func (s *ResourceService) UpdateModule(ctx context.Context, ident *domain.Identity, moduleID string, raw map[string]any, meta RequestMeta) error {
	const action = "module.updated"

	if err := s.checkRate(ctx, ident, action); err != nil {
		return err
	}

	result, err := s.authz.AuthorizeRequest(ctx, ident, AuthorizeOptions{
		MinRole:            domain.RoleProgramOwner,
		RequireActiveRound: true,
		Ownership: &OwnershipCheck{
			ResourceType: CollectionModules,
			ResourceID:   moduleID,
		},
	})
	if err != nil {
		return err
	}

	record, err := validate.ModuleInput(raw)
	if err != nil {
		return err
	}

	doc, err := s.documents.Get(ctx, CollectionModules, moduleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrResourceNotFound
		}
		return fmt.Errorf("fetch module: %w", err)
	}

	data := doc.Data
	data["titleEn"] = record.TitleEn
	data["descriptionEn"] = record.DescriptionEn
	if record.Code != nil {
		data["code"] = *record.Code
	}
	if record.DurationHours != nil {
		data["durationHours"] = *record.DurationHours
	}
	if record.Level != nil {
		data["level"] = *record.Level
	}
	data["updatedAt"] = s.now().UTC()

	if err := s.documents.Set(ctx, CollectionModules, moduleID, data); err != nil {
		return fmt.Errorf("update module: %w", err)
	}

	s.audit.Record(ctx, domain.AuditEntry{
		Action:       action,
		UserID:       result.User.UserID,
		UserEmail:    result.User.Email,
		UserRole:     result.User.Role,
		ResourceType: "module",
		ResourceID:   moduleID,
		Details:      map[string]any{"titleEn": record.TitleEn},
		IPAddress:    meta.IPAddress,
	})

	return nil
}

// CreateCourse creates a course document. Requires at least programOwner and
// an active round.
func (s *ResourceService) CreateCourse(ctx context.Context, ident *domain.Identity, raw map[string]any, meta RequestMeta) (string, error) {
	const action = "course.created"

	if err := s.checkRate(ctx, ident, action); err != nil {
		return "", err
	}

	result, err := s.authz.AuthorizeRequest(ctx, ident, AuthorizeOptions{
		MinRole:            domain.RoleProgramOwner,
		RequireActiveRound: true,
	})
	if err != nil {
		return "", err
	}

	record, err := validate.CourseInput(raw)
	if err != nil {
		return "", err
	}

	now := s.now().UTC()
	data := map[string]any{
		"titleEn":   record.TitleEn,
		"createdBy": result.User.UserID,
		"createdAt": now,
		"updatedAt": now,
	}
	if record.DescriptionEn != nil {
		data["descriptionEn"] = *record.DescriptionEn
	}
	if record.Code != nil {
		data["code"] = *record.Code
	}
	if record.ModuleID != nil {
		data["moduleId"] = *record.ModuleID
	}

	id, err := s.documents.Add(ctx, CollectionCourses, data)
	if err != nil {
		return "", fmt.Errorf("create course: %w", err)
	}

	s.audit.Record(ctx, domain.AuditEntry{
		Action:       action,
		UserID:       result.User.UserID,
		UserEmail:    result.User.Email,
		UserRole:     result.User.Role,
		ResourceType: "course",
		ResourceID:   id,
		Details:      map[string]any{"titleEn": record.TitleEn},
		IPAddress:    meta.IPAddress,
	})

	return id, nil
}

// CreateRound creates a certification round. Sysadmin only, and deliberately
// not gated on an active round: rounds must be creatable when none is open.
func (s *ResourceService) CreateRound(ctx context.Context, ident *domain.Identity, raw map[string]any, meta RequestMeta) (*domain.CertificationRound, error) {
	const action = "round.created"

	if err := s.checkRate(ctx, ident, action); err != nil {
		return nil, err
	}

	result, err := s.authz.AuthorizeRequest(ctx, ident, AuthorizeOptions{
		Roles: []domain.Role{domain.RoleSysadmin},
	})
	if err != nil {
		return nil, err
	}

	record, err := validate.CertificationRoundInput(raw)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	round := domain.CertificationRound{
		ID:        uuid.NewString(),
		Name:      record.Name,
		Status:    record.Status,
		StartDate: record.StartDate,
		DueDate:   record.DueDate,
		CreatedBy: result.User.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.rounds.Create(ctx, round); err != nil {
		return nil, fmt.Errorf("create round: %w", err)
	}

	s.audit.Record(ctx, domain.AuditEntry{
		Action:       action,
		UserID:       result.User.UserID,
		UserEmail:    result.User.Email,
		UserRole:     result.User.Role,
		ResourceType: "certification_round",
		ResourceID:   round.ID,
		Details:      map[string]any{"name": round.Name, "status": string(round.Status)},
		IPAddress:    meta.IPAddress,
	})

	return &round, nil
}

// ActiveRound returns the currently active certification round for any
// authenticated caller. ErrNoActiveRound signals that none is open.
func (s *ResourceService) ActiveRound(ctx context.Context, ident *domain.Identity) (*domain.CertificationRound, error) {
	if _, err := s.authz.AuthorizeRequest(ctx, ident, AuthorizeOptions{}); err != nil {
		return nil, err
	}
	return s.authz.RequireActiveRound(ctx)
}

// CreateComment attaches a comment to a resource. Open to every role, gated
// on an active round, and subject to duplicate suppression on the comment
// text.
func (s *ResourceService) CreateComment(ctx context.Context, ident *domain.Identity, raw map[string]any, meta RequestMeta) (string, error) {
	const action = "comment.created"

	if err := s.checkRate(ctx, ident, action); err != nil {
		return "", err
	}
	if ident != nil && ident.UID != "" {
		if text, ok := raw["text"].(string); ok && text != "" {
			if err := s.guard.CheckDuplicateContent(ctx, ident.UID, text, action, s.limits.DuplicateWindow); err != nil {
				return "", err
			}
		}
	}

	result, err := s.authz.AuthorizeRequest(ctx, ident, AuthorizeOptions{
		MinRole:            domain.RoleOperations,
		RequireActiveRound: true,
	})
	if err != nil {
		return "", err
	}

	record, err := validate.CommentInput(raw)
	if err != nil {
		return "", err
	}

	now := s.now().UTC()
	id, err := s.documents.Add(ctx, CollectionComments, map[string]any{
		"resourceType": record.ResourceType,
		"resourceId":   record.ResourceID,
		"text":         record.Text,
		"createdBy":    result.User.UserID,
		"createdAt":    now,
	})
	if err != nil {
		return "", fmt.Errorf("create comment: %w", err)
	}

	s.audit.Record(ctx, domain.AuditEntry{
		Action:       action,
		UserID:       result.User.UserID,
		UserEmail:    result.User.Email,
		UserRole:     result.User.Role,
		ResourceType: record.ResourceType,
		ResourceID:   record.ResourceID,
		Details:      map[string]any{"commentId": id},
		IPAddress:    meta.IPAddress,
	})

	return id, nil
}

// UpdateUser rewrites a stored user profile. Sysadmin only; user
// administration is not subject to the round gate.
func (s *ResourceService) UpdateUser(ctx context.Context, ident *domain.Identity, userID string, raw map[string]any, meta RequestMeta) error {
	const action = "user.updated"

	if err := s.checkRate(ctx, ident, action); err != nil {
		return err
	}

	result, err := s.authz.AuthorizeRequest(ctx, ident, AuthorizeOptions{
		Roles: []domain.Role{domain.RoleSysadmin},
	})
	if err != nil {
		return err
	}

	record, err := validate.UserInput(raw, s.allowedDomains)
	if err != nil {
		return err
	}

	profile, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrResourceNotFound
		}
		return fmt.Errorf("fetch user: %w", err)
	}

	profile.Email = record.Email
	profile.DisplayName = record.DisplayName
	profile.Role = record.Role
	profile.Active = record.Active
	profile.UpdatedAt = s.now().UTC()

	if err := s.users.Update(ctx, *profile); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrResourceNotFound
		}
		return fmt.Errorf("update user: %w", err)
	}

	s.audit.Record(ctx, domain.AuditEntry{
		Action:       action,
		UserID:       result.User.UserID,
		UserEmail:    result.User.Email,
		UserRole:     result.User.Role,
		ResourceType: "user",
		ResourceID:   userID,
		Details:      map[string]any{"role": string(record.Role), "active": record.Active},
		IPAddress:    meta.IPAddress,
	})

	return nil
}
