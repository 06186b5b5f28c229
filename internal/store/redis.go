package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "tracker"

// RedisStore keeps each record as a plain string value under <prefix>:<key>. Records never expire.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	owned  bool
}

// NewRedis dials REDIS_URL and pings it before returning.
func NewRedis(ctx context.Context, redisURL, prefix string) (*RedisStore, error) {
	if strings.TrimSpace(redisURL) == "" {
		return nil, fmt.Errorf("REDIS_URL required for redis store")
	}
	opts, err := ParseRedisURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	s := NewRedisWithClient(rdb, prefix)
	s.owned = true
	return s, nil
}

// NewRedisWithClient wraps an existing client; Close leaves the client open.
func NewRedisWithClient(rdb *redis.Client, prefix string) *RedisStore {
	prefix = strings.Trim(strings.TrimSpace(prefix), ":")
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (s *RedisStore) key(k string) string { return s.prefix + ":" + k }

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	k, err := normalizeKey(key)
	if err != nil {
		return nil, err
	}
	raw, err := s.rdb.Get(ctx, s.key(k)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", k, err)
	}
	return raw, nil
}

func (s *RedisStore) Put(ctx context.Context, key string, value []byte) error {
	k, err := normalizeKey(key)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, s.key(k), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", k, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	if s == nil || s.rdb == nil || !s.owned {
		return nil
	}
	return s.rdb.Close()
}

// ParseRedisURL accepts redis:// and rediss:// URLs; go-redis fills in TLS, ACL user, password and db.
func ParseRedisURL(raw string) (*redis.Options, error) {
	raw = strings.TrimSpace(raw)
	scheme, _, _ := strings.Cut(raw, "://")
	if scheme != "redis" && scheme != "rediss" {
		return nil, fmt.Errorf("unsupported scheme: %s", scheme)
	}
	opts, err := redis.ParseURL(raw)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return opts, nil
}
