// Package kv defines the string-keyed persistence substrate the look store
// writes through. Implementations must treat every Set as a wholesale
// replacement of the value under the key; values are never partially updated.
package kv

import "context"

// Adapter is the durable storage contract consumed by the look store.
type Adapter interface {
	// Get returns the value under key. The second return is false when no
	// value exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set replaces the value under key. Write failures are reported as
	// *PersistenceError.
	Set(ctx context.Context, key, value string) error
	// Delete removes the value under key. Deleting an absent key is not an
	// error.
	Delete(ctx context.Context, key string) error
}

// PersistenceError reports a failed durable write. The in-memory state of the
// caller is typically ahead of the durable copy when this is returned.
type PersistenceError struct {
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return "persistence write failed for key " + e.Key + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }
