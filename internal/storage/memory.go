// ABOUTME: In-memory key-value backend
// ABOUTME: Used for ephemeral sessions and for simulating failing storage in tests

package storage

import (
	"fmt"
	"sync"
)

// MemoryKV keeps slots in a map. Nothing survives the process.
type MemoryKV struct {
	mu       sync.RWMutex
	data     map[string][]byte
	readErr  error
	writeErr error
	closed   bool
}

// Compile-time check that MemoryKV implements KV.
var _ KV = (*MemoryKV)(nil)

// NewMemoryKV returns an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

// FailReads makes every Get return err until called again with nil.
func (m *MemoryKV) FailReads(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErr = err
}

// FailWrites makes every Set and Remove return err until called again with nil.
// Quota exhaustion and disabled storage look like this to callers.
func (m *MemoryKV) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// Get returns a copy of the stored value.
func (m *MemoryKV) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	if m.readErr != nil {
		return nil, fmt.Errorf("get %s: %w", key, m.readErr)
	}
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Set stores a copy of value.
func (m *MemoryKV) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if m.writeErr != nil {
		return fmt.Errorf("set %s: %w", key, m.writeErr)
	}
	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	return nil
}

// Remove deletes a slot. Removing an absent slot is not an error.
func (m *MemoryKV) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if m.writeErr != nil {
		return fmt.Errorf("remove %s: %w", key, m.writeErr)
	}
	delete(m.data, key)
	return nil
}

// Close marks the store closed.
func (m *MemoryKV) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
