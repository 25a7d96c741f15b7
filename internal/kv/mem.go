package kv

import "sync"

// MemMedium is a map-backed medium for tests and ephemeral runs.
type MemMedium struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemMedium returns an empty in-memory medium.
func NewMemMedium() *MemMedium {
	return &MemMedium{values: make(map[string]string)}
}

func (m *MemMedium) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemMedium) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemMedium) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *MemMedium) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	return keys, nil
}
