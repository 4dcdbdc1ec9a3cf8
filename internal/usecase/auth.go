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
	// ErrNoAuthentication indicates the request carried no caller identity.
	ErrNoAuthentication = errors.New("Unauthorized: No authentication provided")
	// ErrUserNotFound indicates the caller has no stored profile.
	ErrUserNotFound = errors.New("Unauthorized: User not found in system")
	// ErrUserDeactivated indicates the caller's account is deactivated.
	ErrUserDeactivated = errors.New("Unauthorized: User account is deactivated")
	// ErrInvalidRole indicates neither token claim nor profile yields a valid role.
	ErrInvalidRole = errors.New("Unauthorized: Invalid user role")
)

// AuthService resolves caller identities into verified user contexts.
type AuthService struct {
	users port.UserProfileRepository
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(users port.UserProfileRepository) *AuthService {
	return &AuthService{users: users}
}

// AuthenticateUser cross-references the caller identity against the stored
// user profile and produces a UserContext. Contexts are never produced for
// unknown, deactivated, or role-less callers.
func (s *AuthService) AuthenticateUser(ctx context.Context, ident *domain.Identity) (*domain.UserContext, error) {
	if ident == nil || ident.UID == "" {
		return nil, ErrNoAuthentication
	}

	profile, err := s.users.GetByID(ctx, ident.UID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("fetch user profile: %w", err)
	}

	if !profile.Active {
		return nil, ErrUserDeactivated
	}

	// The token role claim takes precedence over the stored profile role.
	// In deployments where claims are caller-influenced this widens
	// privileges; kept to match the platform contract.
	role := domain.Role(ident.RoleClaim)
	if !role.Valid() {
		role = profile.Role
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	email := ident.Email
	if email == "" {
		email = profile.Email
	}

	return &domain.UserContext{
		UserID:      profile.ID,
		Email:       email,
		Role:        role,
		DisplayName: profile.DisplayName,
		Active:      true,
	}, nil
}
