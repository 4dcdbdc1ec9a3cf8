package port

import (
	"context"

	"github.com/avdeev/module-certification/internal/core/domain"
)

// RoundRepository provides access to certification rounds. Active returns
// repository.ErrNotFound when no round currently has active status.
type RoundRepository interface {
	Active(ctx context.Context) (*domain.CertificationRound, error)
	Create(ctx context.Context, round domain.CertificationRound) error
}
