// Package localstore provides Storage port implementations for persisted
// client state: an in-memory map and a JSON file.
package localstore

import (
	"sync"

	"github.com/fieldreport/mapchat"
)

// Compile-time interface check.
var _ mapchat.Storage = (*Memory)(nil)

// Memory is a map-backed Storage for tests and ephemeral runs.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get returns the value for key and whether it was present.
func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

// Set stores value under key.
func (m *Memory) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// Remove deletes key. Removing an absent key is a no-op.
func (m *Memory) Remove(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
}
