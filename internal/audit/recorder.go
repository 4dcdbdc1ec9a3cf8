package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/avdeev/module-certification/internal/core/domain"
	"github.com/avdeev/module-certification/internal/core/port"
	"github.com/avdeev/module-certification/internal/infra/logger"
)

// Recorder writes audit entries best-effort. A failed write is logged to the
// diagnostic channel and never surfaces to the governed operation.
type Recorder struct {
	publisher port.AuditPublisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewRecorder constructs a Recorder over the given publisher.
func NewRecorder(publisher port.AuditPublisher, log *zap.Logger) *Recorder {
	if log == nil {
		log = zap.NewNop()
	}

	return &Recorder{
		publisher: publisher,
		logger:    log,
		now:       time.Now,
	}
}

// WithClock allows injection of a custom clock (primarily for testing).
func (r *Recorder) WithClock(now func() time.Time) *Recorder {
	if now != nil {
		r.now = now
	}
	return r
}

// Record publishes the entry, assigning an id and timestamp when missing.
// It never returns an error: audit completeness is not guaranteed under
// publisher failure and the caller must not be rolled back.
func (r *Recorder) Record(ctx context.Context, entry domain.AuditEntry) {
	if r == nil || r.publisher == nil {
		return
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = r.now().UTC()
	}

	if err := r.publisher.PublishAuditLogged(ctx, entry); err != nil {
		r.logger.Error("audit write failed",
			zap.String("action", entry.Action),
			zap.String("user_id", entry.UserID),
			zap.String("user_email", logger.MaskEmail(entry.UserEmail)),
			zap.String("resource_type", entry.ResourceType),
			zap.String("resource_id", entry.ResourceID),
			zap.Error(err),
		)
	}
}
