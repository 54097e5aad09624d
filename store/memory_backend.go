package store

import (
	"context"
	"sync"
)

// MemoryBackend keeps documents in a map. Used by tests and STORAGE_BACKEND=memory.
type MemoryBackend struct {
	mu        sync.RWMutex
	documents map[string][]byte
	failWrite map[string]error
	writes    map[string]int
}

// NewMemoryBackend creates an empty in-memory backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		documents: make(map[string][]byte),
		failWrite: make(map[string]error),
		writes:    make(map[string]int),
	}
}

func (m *MemoryBackend) Name() string {
	return "memory"
}

func (m *MemoryBackend) Read(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.documents[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *MemoryBackend) Write(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.failWrite[key]; ok {
		return err
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	m.documents[key] = stored
	m.writes[key]++
	return nil
}

// Put stores raw bytes without going through a collection (for seeding corrupt data in tests)
func (m *MemoryBackend) Put(key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.documents[key] = append([]byte(nil), data...)
}

// FailWrites makes every Write to key return err until cleared with a nil error
func (m *MemoryBackend) FailWrites(key string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failWrite, key)
		return
	}
	m.failWrite[key] = err
}

// Writes returns how many successful writes key has received
func (m *MemoryBackend) Writes(key string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes[key]
}
