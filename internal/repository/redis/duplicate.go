package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/avdeev/module-certification/internal/core/port"
)

// DuplicateStore keeps the last submission timestamp per duplicate key in a
// single Redis sorted set: member = key, score = timestamp. A single set makes
// the whole-store sweep a range removal.
type DuplicateStore struct {
	client *redis.Client
	setKey string
}

// NewDuplicateStore constructs a store writing to the named sorted set.
func NewDuplicateStore(client *redis.Client, setKey string) *DuplicateStore {
	if setKey == "" {
		setKey = "guard:duplicates"
	}
	return &DuplicateStore{client: client, setKey: setKey}
}

// LastSubmission returns the recorded timestamp for the key, if any.
func (s *DuplicateStore) LastSubmission(ctx context.Context, key string) (time.Time, bool, error) {
	score, err := s.client.ZScore(ctx, s.setKey, key).Result()
	if err != nil {
		if err == redis.Nil {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("redis zscore: %w", err)
	}

	return time.Unix(0, int64(score)), true, nil
}

// RecordSubmission stores the timestamp for the key.
func (s *DuplicateStore) RecordSubmission(ctx context.Context, key string, at time.Time) error {
	member := redis.Z{Score: float64(at.UnixNano()), Member: key}
	if err := s.client.ZAdd(ctx, s.setKey, member).Err(); err != nil {
		return fmt.Errorf("redis zadd: %w", err)
	}
	return nil
}

// Sweep removes every record older than the cutoff.
func (s *DuplicateStore) Sweep(ctx context.Context, cutoff time.Time) error {
	threshold := formatScore(cutoff)
	if err := s.client.ZRemRangeByScore(ctx, s.setKey, "-inf", "("+threshold).Err(); err != nil {
		return fmt.Errorf("redis zremrangebyscore: %w", err)
	}
	return nil
}

var _ port.DuplicateStore = (*DuplicateStore)(nil)
