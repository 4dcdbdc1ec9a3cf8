package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdeev/module-certification/internal/core/domain"
	"github.com/avdeev/module-certification/internal/core/port"
	"github.com/avdeev/module-certification/internal/repository"
)

var (
	// ErrForbidden indicates the caller is authenticated but lacks privilege.
	ErrForbidden = errors.New("Forbidden: Insufficient permissions")
	// ErrNoActiveRound indicates the global mutation gate is closed.
	ErrNoActiveRound = errors.New("No active certification round. Changes are not allowed.")
	// ErrResourceNotFound indicates a referenced resource does not exist.
	ErrResourceNotFound = errors.New("Resource not found")
)

// defaultOwnerField is consulted when an ownership check names no field.
const defaultOwnerField = "createdBy"

// OwnershipCheck configures a resource ownership requirement.
type OwnershipCheck struct {
	ResourceType string
	ResourceID   string
	OwnerField   string
}

// AuthorizeOptions selects which checks AuthorizeRequest applies.
type AuthorizeOptions struct {
	// Roles, when non-empty, requires exact-set membership.
	Roles []domain.Role
	// MinRole, when set, requires at least that hierarchy level.
	MinRole domain.Role
	// RequireActiveRound gates the request on an active certification round.
	RequireActiveRound bool
	// Ownership, when set, requires the caller to own the resource.
	Ownership *OwnershipCheck
}

// AuthorizeResult carries the context produced by a successful authorization.
type AuthorizeResult struct {
	User        *domain.UserContext
	ActiveRound *domain.CertificationRound
}

// AuthzService composes authentication, role checks, the round gate, and
// ownership checks into request-level decisions.
type AuthzService struct {
	auth      *AuthService
	rounds    port.RoundRepository
	documents port.DocumentStore
}

// NewAuthzService constructs an AuthzService instance.
func NewAuthzService(auth *AuthService, rounds port.RoundRepository, documents port.DocumentStore) *AuthzService {
	return &AuthzService{auth: auth, rounds: rounds, documents: documents}
}

// RequireRole fails unless the caller's role is a member of the allowed set.
func (s *AuthzService) RequireRole(user *domain.UserContext, allowed ...domain.Role) error {
	for _, role := range allowed {
		if user.Role == role {
			return nil
		}
	}
	return ErrForbidden
}

// RequireMinRole fails unless the caller's role sits at or above the minimum
// hierarchy level. Unknown roles map to level 0 and never pass.
func (s *AuthzService) RequireMinRole(user *domain.UserContext, min domain.Role) error {
	if user.Role.Level() >= min.Level() && user.Role.Level() > 0 {
		return nil
	}
	return ErrForbidden
}

// RequireActiveRound queries for a round with active status. This is the
// sole global mutation gate and applies regardless of caller role.
func (s *AuthzService) RequireActiveRound(ctx context.Context) (*domain.CertificationRound, error) {
	round, err := s.rounds.Active(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoActiveRound
		}
		return nil, fmt.Errorf("query active round: %w", err)
	}
	return round, nil
}

// RequireOwnership fails unless the caller created the resource. Sysadmin
// bypasses unconditionally, without fetching the resource.
func (s *AuthzService) RequireOwnership(ctx context.Context, user *domain.UserContext, check OwnershipCheck) error {
	if user.Role == domain.RoleSysadmin {
		return nil
	}

	ownerField := check.OwnerField
	if ownerField == "" {
		ownerField = defaultOwnerField
	}

	doc, err := s.documents.Get(ctx, check.ResourceType, check.ResourceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrResourceNotFound
		}
		return fmt.Errorf("fetch resource %s/%s: %w", check.ResourceType, check.ResourceID, err)
	}

	owner, _ := doc.Data[ownerField].(string)
	if owner != user.UserID {
		return ErrForbidden
	}

	return nil
}

// AuthorizeRequest runs the configured checks in fixed order: authenticate,
// role set, minimum role, active round, ownership. The first failure
// short-circuits the rest and propagates unchanged. Every mutating operation
// calls this before touching the store.
func (s *AuthzService) AuthorizeRequest(ctx context.Context, ident *domain.Identity, opts AuthorizeOptions) (*AuthorizeResult, error) {
	user, err := s.auth.AuthenticateUser(ctx, ident)
	if err != nil {
		return nil, err
	}

	if len(opts.Roles) > 0 {
		if err := s.RequireRole(user, opts.Roles...); err != nil {
			return nil, err
		}
	}

	if opts.MinRole != "" {
		if err := s.RequireMinRole(user, opts.MinRole); err != nil {
			return nil, err
		}
	}

	result := &AuthorizeResult{User: user}

	if opts.RequireActiveRound {
		round, err := s.RequireActiveRound(ctx)
		if err != nil {
			return nil, err
		}
		result.ActiveRound = round
	}

	if opts.Ownership != nil {
		if err := s.RequireOwnership(ctx, user, *opts.Ownership); err != nil {
			return nil, err
		}
	}

	return result, nil
}
