package recent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"fairgate/internal/decision"
)

const redisKeyPrefix = "decision:recent:"

// RedisStore caches decision records in Redis with TTL-based eviction.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis constructs a Redis-backed recent-decision cache.
func NewRedis(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Get loads the cached record for a case and action.
//
// Errors: returns ErrNotFound on cache miss; wraps Redis or JSON decode errors.
func (s *RedisStore) Get(ctx context.Context, caseID, action string) (*decision.Record, error) {
	data, err := s.client.Get(ctx, redisKey(caseID, action)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find recent decision: %w", err)
	}

	var record decision.Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decode recent decision: %w", err)
	}
	return &record, nil
}

// Put writes a record with TTL eviction, overwriting any existing entry.
func (s *RedisStore) Put(ctx context.Context, record *decision.Record) error {
	if record == nil {
		return fmt.Errorf("decision record is required")
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode recent decision: %w", err)
	}
	if err := s.client.Set(ctx, redisKey(record.CaseID, record.ProposedAction), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("save recent decision: %w", err)
	}
	return nil
}

func redisKey(caseID, action string) string {
	return redisKeyPrefix + caseID + ":" + action
}
