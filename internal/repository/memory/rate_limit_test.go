package memory

import (
	"context"
	"testing"
	"time"
)

func TestRateLimitStoreCountAndTrim(t *testing.T) {
	store := NewRateLimitStore()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		if err := store.RecordAttempt(ctx, "k", base.Add(time.Duration(i)*time.Second)); err != nil {
			t.Fatalf("RecordAttempt returned error: %v", err)
		}
	}

	count, err := store.CountAttempts(ctx, "k", time.Minute, base.Add(2*time.Second))
	if err != nil {
		t.Fatalf("CountAttempts returned error: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 attempts, got %d", count)
	}

	// Reference a minute later: the first two attempts fall out of the window.
	if err := store.TrimWindow(ctx, "k", time.Minute, base.Add(61*time.Second)); err != nil {
		t.Fatalf("TrimWindow returned error: %v", err)
	}

	count, err = store.CountAttempts(ctx, "k", time.Minute, base.Add(61*time.Second))
	if err != nil {
		t.Fatalf("CountAttempts returned error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 attempt after trim, got %d", count)
	}
}

func TestRateLimitStoreOldestAttempt(t *testing.T) {
	store := NewRateLimitStore()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	_, found, err := store.OldestAttempt(ctx, "k", time.Minute, base)
	if err != nil {
		t.Fatalf("OldestAttempt returned error: %v", err)
	}
	if found {
		t.Fatalf("expected no attempts for empty key")
	}

	_ = store.RecordAttempt(ctx, "k", base.Add(10*time.Second))
	_ = store.RecordAttempt(ctx, "k", base.Add(5*time.Second))

	oldest, found, err := store.OldestAttempt(ctx, "k", time.Minute, base.Add(20*time.Second))
	if err != nil {
		t.Fatalf("OldestAttempt returned error: %v", err)
	}
	if !found || !oldest.Equal(base.Add(5*time.Second)) {
		t.Fatalf("expected oldest at +5s, got %v found=%v", oldest, found)
	}
}

func TestRateLimitStoreRejectsNonPositiveWindow(t *testing.T) {
	store := NewRateLimitStore()
	ctx := context.Background()

	if err := store.TrimWindow(ctx, "k", 0, time.Now()); err == nil {
		t.Fatalf("expected error for non-positive window")
	}
	if _, err := store.CountAttempts(ctx, "k", -time.Second, time.Now()); err == nil {
		t.Fatalf("expected error for non-positive window")
	}
}
