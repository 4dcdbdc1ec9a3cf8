package guard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/avdeev/module-certification/internal/core/port"
)

var (
	// ErrRateLimited indicates the caller exhausted the per-action request budget.
	ErrRateLimited = errors.New("too many requests, please try again later")
	// ErrDuplicateSubmission indicates identical content was submitted within the window.
	ErrDuplicateSubmission = errors.New("duplicate submission detected, please wait before retrying")
)

const (
	// DefaultMaxRequests is the per-(user, action) budget inside one window.
	DefaultMaxRequests = 10
	// DefaultWindow is the sliding rate-limit window.
	DefaultWindow = time.Minute
	// DefaultDuplicateWindow is the sliding duplicate-suppression window.
	DefaultDuplicateWindow = 30 * time.Second

	duplicatePrefixLength = 100
)

// Guard bounds request frequency and suppresses near-duplicate submissions.
// The backing stores are injected, so a single-process deployment can run on
// in-memory maps while a scaled one shares a Redis store.
type Guard struct {
	rates  port.RateLimitStore
	dups   port.DuplicateStore
	logger *zap.Logger
	now    func() time.Time
}

// New constructs a Guard over the provided stores.
func New(rates port.RateLimitStore, dups port.DuplicateStore, logger *zap.Logger) *Guard {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Guard{
		rates:  rates,
		dups:   dups,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock allows injection of a custom clock (primarily for testing).
func (g *Guard) WithClock(now func() time.Time) *Guard {
	if now != nil {
		g.now = now
	}
	return g
}

// CheckRateLimit enforces a sliding-window budget keyed by (user, action).
// Trim, count, and record are separate store calls, so two requests racing at
// the boundary can both pass: the limit is soft, not a hard guarantee.
func (g *Guard) CheckRateLimit(ctx context.Context, userID, action string, maxRequests int, window time.Duration) error {
	if maxRequests <= 0 {
		maxRequests = DefaultMaxRequests
	}
	if window <= 0 {
		window = DefaultWindow
	}

	key := userID + ":" + action
	now := g.now()

	if err := g.rates.TrimWindow(ctx, key, window, now); err != nil {
		return fmt.Errorf("trim rate window: %w", err)
	}

	count, err := g.rates.CountAttempts(ctx, key, window, now)
	if err != nil {
		return fmt.Errorf("count attempts: %w", err)
	}

	if count >= maxRequests {
		g.logger.Warn("rate limit exceeded",
			zap.String("user_id", userID),
			zap.String("action", action),
			zap.Int("count", count),
			zap.Int("limit", maxRequests),
		)
		return ErrRateLimited
	}

	if err := g.rates.RecordAttempt(ctx, key, now); err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}

	return nil
}

// CheckDuplicateContent rejects identical content resubmitted within the
// window. The key is the user plus a content prefix; the action is logged but
// deliberately excluded, so identical content across action types shares one
// duplicate stream.
func (g *Guard) CheckDuplicateContent(ctx context.Context, userID, content, action string, window time.Duration) error {
	if window <= 0 {
		window = DefaultDuplicateWindow
	}

	key := duplicateKey(userID, content)
	now := g.now()

	// Cleanup runs on every call, accepted or not. Entries this old cannot
	// influence the duplicate decision below, so ordering is safe.
	if err := g.dups.Sweep(ctx, now.Add(-2*window)); err != nil {
		g.logger.Warn("duplicate store sweep failed", zap.Error(err))
	}

	last, seen, err := g.dups.LastSubmission(ctx, key)
	if err != nil {
		return fmt.Errorf("lookup last submission: %w", err)
	}

	if seen && now.Sub(last) < window {
		g.logger.Warn("duplicate submission suppressed",
			zap.String("user_id", userID),
			zap.String("action", action),
		)
		return ErrDuplicateSubmission
	}

	if err := g.dups.RecordSubmission(ctx, key, now); err != nil {
		return fmt.Errorf("record submission: %w", err)
	}

	return nil
}

func duplicateKey(userID, content string) string {
	prefix := []rune(content)
	if len(prefix) > duplicatePrefixLength {
		prefix = prefix[:duplicatePrefixLength]
	}
	return userID + ":" + string(prefix)
}
