package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces preference keys.
const DefaultRedisPrefix = "greenpitch:pref"

// RedisStore keeps visitor preferences in Redis, one key per preference
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore connects to redisURL. A zero ttl keeps preferences forever.
func NewRedisStore(redisURL, prefix string, ttl time.Duration) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	slog.Info("redis connection established", "addr", opt.Addr)
	return NewRedisStoreWithClient(client, prefix, ttl), nil
}

// NewRedisStoreWithClient wraps an existing client
func NewRedisStoreWithClient(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

// Key returns the Redis key of one visitor preference
func (s *RedisStore) Key(visitorID, key string) string {
	return s.prefix + ":" + visitorID + ":" + key
}

// Get retrieves a preference. A missing key is not an error.
func (s *RedisStore) Get(ctx context.Context, visitorID, key string) (string, bool, error) {
	data, err := s.client.Get(ctx, s.Key(visitorID, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores a preference, refreshing its expiration
func (s *RedisStore) Set(ctx context.Context, visitorID, key, value string) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.Key(visitorID, key), data, s.ttl).Err()
}

// Delete removes a preference
func (s *RedisStore) Delete(ctx context.Context, visitorID, key string) error {
	return s.client.Del(ctx, s.Key(visitorID, key)).Err()
}

// Ping checks the connection
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}
