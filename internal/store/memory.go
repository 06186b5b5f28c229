package store

import (
	"context"
	"sync"
)

// memstore keeps records in process. Used by tests and STORE_BACKEND=memory dry runs.
type memstore struct {
	mu      sync.RWMutex
	records map[string][]byte
	closed  bool
}

func NewMemory() Store {
	return &memstore{records: make(map[string][]byte)}
}

func (m *memstore) Get(ctx context.Context, key string) ([]byte, error) {
	k, err := normalizeKey(key)
	if err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	raw, ok := m.records[k]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), raw...), nil
}

func (m *memstore) Put(ctx context.Context, key string, value []byte) error {
	k, err := normalizeKey(key)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.records[k] = append([]byte(nil), value...)
	return nil
}

func (m *memstore) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}
