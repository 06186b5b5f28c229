package store

import (
	"context"
	"strings"
)

// Store is the key-value collaborator the tracker persists its records into.
// Get returns nil, nil when the key has never been written.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// Backend names accepted by STORE_BACKEND.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

var (
	ErrEmptyKey = errf("store key is empty")
	ErrClosed   = errf("store is closed")
)

type staticErr string

func (e staticErr) Error() string { return string(e) }
func errf(s string) error         { return staticErr(s) }

func normalizeKey(key string) (string, error) {
	k := strings.TrimSpace(key)
	if k == "" {
		return "", ErrEmptyKey
	}
	return k, nil
}
