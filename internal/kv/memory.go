package kv

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// Memory is an in-process Store used in tests and as a reference
// implementation. With listing disabled it mimics backing stores that lack
// prefix enumeration.
type Memory struct {
	mu     sync.RWMutex
	data   map[string][]byte
	noList bool
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// NewMemoryWithoutList returns an in-memory store whose List always fails
// with ErrListUnsupported.
func NewMemoryWithoutList() *Memory {
	return &Memory{data: make(map[string][]byte), noList: true}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *Memory) List(_ context.Context, prefix string) ([]string, error) {
	if m.noList {
		return nil, ErrListUnsupported
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var keys []string
	for key := range m.data {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *Memory) Close() error { return nil }
