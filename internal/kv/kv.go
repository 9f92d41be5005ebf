// Package kv defines the persistent key-value store the record store is
// layered on, modelled on the Web Storage API: string keys, string values,
// whole-value reads and writes.
package kv

// Store is a flat string key-value store. Implementations must be safe for
// concurrent use, but nothing above a single call is atomic: a read followed
// by a write may interleave with other writers.
type Store interface {
	// GetItem returns the value stored under key. ok is false when the key
	// is absent.
	GetItem(key string) (value string, ok bool, err error)
	// SetItem stores value under key, replacing any previous value.
	SetItem(key, value string) error
	// RemoveItem deletes key. Removing an absent key is not an error.
	RemoveItem(key string) error
	// Keys lists every stored key in lexical order.
	Keys() ([]string, error)
	// Clear removes every key.
	Clear() error
}
