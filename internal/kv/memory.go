package kv

import (
	"context"
	"errors"
	"sync"
)

// ErrCapacityExceeded is the cause reported by a memory adapter whose value
// size limit was hit, mirroring the quota failures of real storage backends.
var ErrCapacityExceeded = errors.New("storage capacity exceeded")

// MemoryAdapter implements Adapter with an in-process map. It backs the
// service when Redis is not configured or unreachable, and tests.
type MemoryAdapter struct {
	mu       sync.RWMutex
	values   map[string]string
	maxBytes int // 0 = unlimited
}

// NewMemory creates an unbounded in-memory adapter.
func NewMemory() *MemoryAdapter {
	return &MemoryAdapter{values: make(map[string]string)}
}

// NewMemoryWithLimit creates an adapter that rejects values larger than
// maxBytes with a *PersistenceError, simulating storage quota exhaustion.
func NewMemoryWithLimit(maxBytes int) *MemoryAdapter {
	return &MemoryAdapter{values: make(map[string]string), maxBytes: maxBytes}
}

func (a *MemoryAdapter) Get(ctx context.Context, key string) (string, bool, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	val, ok := a.values[key]
	return val, ok, nil
}

func (a *MemoryAdapter) Set(ctx context.Context, key, value string) error {
	if a.maxBytes > 0 && len(value) > a.maxBytes {
		return &PersistenceError{Key: key, Err: ErrCapacityExceeded}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.values[key] = value
	return nil
}

func (a *MemoryAdapter) Delete(ctx context.Context, key string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	delete(a.values, key)
	return nil
}
