package audit

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/avdeev/module-certification/internal/core/domain"
	"github.com/avdeev/module-certification/internal/core/port"
)

// StubPublisher logs audit entries instead of sending them to Kafka. Useful
// for development environments without a broker.
type StubPublisher struct {
	logger *zap.Logger
}

// NewStubPublisher constructs a development-friendly audit publisher.
func NewStubPublisher(logger *zap.Logger) *StubPublisher {
	return &StubPublisher{logger: logger}
}

// PublishAuditLogged logs cert.audit.logged events.
func (p *StubPublisher) PublishAuditLogged(_ context.Context, entry domain.AuditEntry) error {
	ts := entry.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	p.logger.Info("stub audit entry published",
		zap.String("action", entry.Action),
		zap.String("user_id", entry.UserID),
		zap.String("user_role", string(entry.UserRole)),
		zap.String("resource_type", entry.ResourceType),
		zap.String("resource_id", entry.ResourceID),
		zap.Time("timestamp", ts.UTC()),
	)

	return nil
}

var _ port.AuditPublisher = (*StubPublisher)(nil)
