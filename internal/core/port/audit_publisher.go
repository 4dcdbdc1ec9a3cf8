package port

import (
	"context"

	"github.com/avdeev/module-certification/internal/core/domain"
)

// AuditPublisher delivers audit entries to the audit trail.
type AuditPublisher interface {
	PublishAuditLogged(ctx context.Context, entry domain.AuditEntry) error
}
