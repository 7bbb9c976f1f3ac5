package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/tripmena/backend/pkg/exchange"
)

// RedisStore persists exchange-rate snapshots in Redis so several server
// instances share one refresh instead of each hitting the provider.
//
// Keys carry no Redis TTL: staleness is the cache's decision, and a stale
// snapshot is still wanted as last-known-good data when a refresh fails.
type RedisStore struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

// NewRedisStore creates a snapshot store on an existing Redis client.
func NewRedisStore(client *redis.Client, prefix string, logger *slog.Logger) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, logger: logger}
}

func (s *RedisStore) key() string {
	return s.prefix + "exchange:snapshot"
}

// Get returns the stored snapshot, or (nil, nil) on a miss.
func (s *RedisStore) Get(ctx context.Context) (*exchange.Snapshot, error) {
	val, err := s.client.Get(ctx, s.key()).Result()
	if errors.Is(err, redis.Nil) {
		s.logger.Debug("redis snapshot miss", "key", s.key())
		return nil, nil
	}
	if err != nil {
		s.logger.Error("redis snapshot get failed", "key", s.key(), "error", err)
		return nil, err
	}
	var snap exchange.Snapshot
	if err := json.Unmarshal([]byte(val), &snap); err != nil {
		s.logger.Error("redis snapshot unmarshal failed", "key", s.key(), "error", err)
		return nil, err
	}
	return &snap, nil
}

// Set replaces the stored snapshot.
func (s *RedisStore) Set(ctx context.Context, snap *exchange.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(), data, 0).Err(); err != nil {
		s.logger.Error("redis snapshot set failed", "key", s.key(), "error", err)
		return err
	}
	s.logger.Debug("redis snapshot stored", "key", s.key(), "fetched_at", snap.FetchedAt)
	return nil
}
