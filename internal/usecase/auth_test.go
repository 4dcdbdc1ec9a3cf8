package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/avdeev/module-certification/internal/core/domain"
)

func TestAuthenticateUserNoIdentity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.auth.AuthenticateUser(ctx, nil); !errors.Is(err, ErrNoAuthentication) {
		t.Fatalf("expected ErrNoAuthentication for nil identity, got %v", err)
	}
	if _, err := env.auth.AuthenticateUser(ctx, &domain.Identity{}); !errors.Is(err, ErrNoAuthentication) {
		t.Fatalf("expected ErrNoAuthentication for empty uid, got %v", err)
	}
}

func TestAuthenticateUserUnknown(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.AuthenticateUser(context.Background(), ident("u-missing"))
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthenticateUserDeactivated(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.AuthenticateUser(context.Background(), ident("u-gone"))
	if !errors.Is(err, ErrUserDeactivated) {
		t.Fatalf("expected ErrUserDeactivated, got %v", err)
	}
}

func TestAuthenticateUserProfileRole(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.auth.AuthenticateUser(context.Background(), ident("u-ops"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != domain.RoleOperations {
		t.Fatalf("expected operations role from profile, got %q", user.Role)
	}
	if user.Email != "ops@example.com" {
		t.Fatalf("expected email fallback to profile, got %q", user.Email)
	}
}

func TestAuthenticateUserClaimPrecedence(t *testing.T) {
	env := newTestEnv(t)

	// A valid token role claim wins over the stored profile role.
	user, err := env.auth.AuthenticateUser(context.Background(), &domain.Identity{
		UID:       "u-ops",
		RoleClaim: string(domain.RoleSysadmin),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != domain.RoleSysadmin {
		t.Fatalf("expected claim role to win, got %q", user.Role)
	}
}

func TestAuthenticateUserUnknownClaimFallsBack(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.auth.AuthenticateUser(context.Background(), &domain.Identity{
		UID:       "u-ops",
		RoleClaim: "superuser",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != domain.RoleOperations {
		t.Fatalf("expected fallback to profile role, got %q", user.Role)
	}
}

func TestAuthenticateUserInvalidRole(t *testing.T) {
	env := newTestEnv(t)
	env.users.profiles["u-weird"] = domain.UserProfile{
		ID:     "u-weird",
		Email:  "weird@example.com",
		Role:   "auditor",
		Active: true,
	}

	_, err := env.auth.AuthenticateUser(context.Background(), ident("u-weird"))
	if !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}
