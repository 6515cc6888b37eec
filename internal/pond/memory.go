package pond

import (
	"sort"
	"sync"
)

// Memory keeps entries for the lifetime of the process.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]Value
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]Value)}
}

func (m *Memory) ID() string { return "memory" }

func (m *Memory) Lookup(key string) (Value, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.entries[key]
	return v, ok
}

func (m *Memory) Put(key string, value Value) {
	if value.IsNone() {
		m.Remove(key)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value.normalized()
}

func (m *Memory) Remove(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

func (m *Memory) Contains(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.entries[key]
	return ok
}

func (m *Memory) RemoveAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]Value)
}

func (m *Memory) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// snapshot copies the entries; used by the file-backed stores.
func (m *Memory) snapshot() map[string]Value {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]Value, len(m.entries))
	for k, v := range m.entries {
		out[k] = v
	}
	return out
}

func (m *Memory) replace(entries map[string]Value) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = entries
}
