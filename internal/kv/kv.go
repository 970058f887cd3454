// Package kv defines the durable key-value storage API the wizard session is
// persisted in, and the backends that implement it.
//
// The API mirrors a browser's local storage: string keys, string values, one
// namespace per client profile, synchronous calls. Backends:
//   - MemoryStorage: process-local map, used by tests and --backend memory
//   - FileStorage: one JSON document per profile, rewritten atomically
//   - SQLiteStorage: a kv_items table keyed by (scope, key)
package kv

import "errors"

var (
	// ErrQuotaExceeded indicates a write would push the profile past its byte quota.
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrDisabled indicates the storage has been switched off.
	ErrDisabled = errors.New("storage disabled")

	// ErrCorrupt indicates the persisted items could not be decoded.
	ErrCorrupt = errors.New("storage corrupt")
)

// Storage is a synchronous string key-value store scoped to one client.
type Storage interface {
	// GetItem returns the value stored under key. ok is false when the key is absent.
	GetItem(key string) (value string, ok bool, err error)

	// SetItem stores value under key, replacing any previous value.
	SetItem(key, value string) error

	// RemoveItem deletes key. Removing an absent key is not an error.
	RemoveItem(key string) error

	// Keys returns all keys currently stored, sorted.
	Keys() ([]string, error)
}

// BatchRemover is implemented by backends that can delete several keys in a
// single durable step.
type BatchRemover interface {
	RemoveItems(keys ...string) error
}

// Closer is implemented by backends holding resources.
type Closer interface {
	Close() error
}

// usage returns the byte footprint quotas are measured in.
func usage(items map[string]string) int64 {
	var n int64
	for k, v := range items {
		n += int64(len(k) + len(v))
	}
	return n
}
