package cache

import (
	"context"
	"sync"
)

// Memory is an in-memory Store. Safe for concurrent use; intended for tests.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory creates an empty in-memory Store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, digest string) ([]byte, error) {
	m.mu.RLock()
	v, ok := m.data[digest]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, nil
}

func (m *Memory) Set(_ context.Context, digest string, value []byte) error {
	cp := make([]byte, len(value))
	copy(cp, value)
	m.mu.Lock()
	m.data[digest] = cp
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, digest string) error {
	m.mu.Lock()
	delete(m.data, digest)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Stats(_ context.Context) (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := Stats{Entries: len(m.data)}
	for _, v := range m.data {
		s.Bytes += int64(len(v))
	}
	return s, nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	m.data = make(map[string][]byte)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Close() error { return nil }
