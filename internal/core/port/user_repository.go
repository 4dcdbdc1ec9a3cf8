package port

import (
	"context"

	"github.com/avdeev/module-certification/internal/core/domain"
)

// UserProfileRepository provides access to stored user profiles.
type UserProfileRepository interface {
	GetByID(ctx context.Context, id string) (*domain.UserProfile, error)
	Update(ctx context.Context, profile domain.UserProfile) error
}
