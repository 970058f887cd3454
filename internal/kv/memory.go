package kv

import (
	"sort"
	"sync"
)

// MemoryStorage is an in-process Storage. Quota and Disable let tests drive
// the storage-unavailable paths of callers.
type MemoryStorage struct {
	mu       sync.Mutex
	items    map[string]string
	quota    int64
	disabled bool
}

// NewMemoryStorage creates an empty MemoryStorage. A quota of 0 means unlimited.
func NewMemoryStorage(quota int64) *MemoryStorage {
	return &MemoryStorage{
		items: make(map[string]string),
		quota: quota,
	}
}

// Disable makes every subsequent call fail with ErrDisabled.
func (m *MemoryStorage) Disable() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disabled = true
}

// Enable reverses Disable.
func (m *MemoryStorage) Enable() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disabled = false
}

func (m *MemoryStorage) GetItem(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disabled {
		return "", false, ErrDisabled
	}
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *MemoryStorage) SetItem(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disabled {
		return ErrDisabled
	}
	if m.quota > 0 {
		next := usage(m.items) + int64(len(key)+len(value))
		if old, ok := m.items[key]; ok {
			next -= int64(len(key) + len(old))
		}
		if next > m.quota {
			return ErrQuotaExceeded
		}
	}
	m.items[key] = value
	return nil
}

func (m *MemoryStorage) RemoveItem(key string) error {
	return m.RemoveItems(key)
}

// RemoveItems deletes all keys under one lock acquisition.
func (m *MemoryStorage) RemoveItems(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disabled {
		return ErrDisabled
	}
	for _, k := range keys {
		delete(m.items, k)
	}
	return nil
}

func (m *MemoryStorage) Keys() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disabled {
		return nil, ErrDisabled
	}
	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
