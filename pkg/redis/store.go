package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Store answers point queries against the key-value side of Redis.
type Store struct {
	db redis.UniversalClient
}

// NewStore wraps redisClient.
func NewStore(redisClient redis.UniversalClient) *Store {
	return &Store{db: redisClient}
}

// Get returns the string stored at key. Missing keys and empty key names
// report ok == false without an error (redis.Nil is not an error here).
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, nil
	}
	val, err := s.db.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Join(ErrReadFailed, err)
	}
	return val, true, nil
}

// GetMany fetches keys in a single MGET round trip.
// Missing keys are absent from the result map.
func (s *Store) GetMany(ctx context.Context, keys ...string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	vals, err := s.db.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Join(ErrReadFailed, err)
	}
	for i, v := range vals {
		if str, ok := v.(string); ok {
			out[keys[i]] = str
		}
	}
	return out, nil
}

// Ping reports whether the store answers. It serves as the readiness probe,
// since key reads and the relay subscription share the client.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.Ping(ctx).Err(); err != nil {
		return errors.Join(ErrNotReady, err)
	}
	return nil
}

// Conn returns the underlying Redis client for advanced operations.
func (s *Store) Conn() redis.UniversalClient {
	return s.db
}
