// Package store implements the saved-look store: the sole mediator between
// the in-memory look collection and the persistence adapter.
package store

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/chromawave/lookvault/internal/kv"
	"github.com/chromawave/lookvault/internal/logger"
	"github.com/chromawave/lookvault/internal/look"
)

// Store owns the look collection. The whole collection lives under a single
// adapter key as one JSON array; every mutation rewrites that entry
// wholesale, exactly once. Collection sizes are expected in the tens to low
// hundreds of records, so simplicity wins over write batching.
type Store struct {
	mu      sync.RWMutex
	adapter kv.Adapter
	key     string
	log     logger.Logger

	records []*look.Record
	synced  bool // false when the durable copy is behind the in-memory one
}

// New constructs a ready store by loading the persisted collection.
//
// Load failures are never fatal: a missing entry, unparsable JSON or a
// collection containing any invalid record all yield a ready store with an
// empty collection. Corrupt data is discarded wholesale rather than
// partially recovered, with a diagnostic logged.
func New(ctx context.Context, adapter kv.Adapter, key string, log logger.Logger) *Store {
	s := &Store{
		adapter: adapter,
		key:     key,
		log:     log,
		records: []*look.Record{},
		synced:  true,
	}
	s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) {
	raw, ok, err := s.adapter.Get(ctx, s.key)
	if err != nil {
		s.log.Warn("failed to read look collection, starting empty",
			logger.String("key", s.key),
			logger.Error(err))
		return
	}
	if !ok {
		s.log.Info("no persisted look collection, starting empty",
			logger.String("key", s.key))
		return
	}

	var records []*look.Record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		s.log.Warn("discarding corrupt look collection",
			logger.String("key", s.key),
			logger.Error(err))
		return
	}

	for i, r := range records {
		if r == nil || !r.IsValid() {
			s.log.Warn("discarding look collection containing invalid record",
				logger.String("key", s.key),
				logger.Int("index", i))
			return
		}
	}

	s.records = records
	s.log.Info("loaded look collection",
		logger.String("key", s.key),
		logger.Int("count", len(records)))
}

// persistLocked writes the full collection under the adapter key. The caller
// must hold the write lock. On failure the in-memory collection keeps the
// attempted mutation and the store is marked out of sync.
func (s *Store) persistLocked(ctx context.Context) error {
	data, err := json.Marshal(s.records)
	if err != nil {
		return &kv.PersistenceError{Key: s.key, Err: err}
	}
	if err := s.adapter.Set(ctx, s.key, string(data)); err != nil {
		s.synced = false
		s.log.Warn("failed to persist look collection, in-memory state is ahead of storage",
			logger.String("key", s.key),
			logger.Int("count", len(s.records)),
			logger.Error(err))
		return err
	}
	s.synced = true
	return nil
}

// Save creates a new look and persists the collection. A *look.ValidationError
// is returned without any state change when the name is empty after trimming.
//
// When the durable write fails, the record is still applied in memory: the
// returned error is a *kv.PersistenceError alongside the new record, and the
// caller decides how to report the divergence.
func (s *Store) Save(ctx context.Context, name, notes, preview string, accessories map[string]string) (*look.Record, error) {
	rec, err := look.New(name, notes, preview, accessories)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, rec)
	perr := s.persistLocked(ctx)
	return rec.Clone(), perr
}

// Delete removes the look with the given id if present and reports whether a
// record was removed. Deleting an absent id is not an error.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.records {
		if r.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return true, s.persistLocked(ctx)
		}
	}
	return false, nil
}

// Get returns the look with the given id, or false when absent.
func (s *Store) Get(id string) (*look.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.records {
		if r.ID == id {
			return r.Clone(), true
		}
	}
	return nil, false
}

// List returns the collection ordered by the given sort key. Storage order is
// never mutated; ordering is always derived here.
func (s *Store) List(key look.SortKey) []*look.Record {
	out := s.snapshot()
	look.Sort(out, key)
	return out
}

// Search returns looks whose name or notes contain the query
// case-insensitively, in insertion order. An empty query returns the full
// collection; matching is a pure filter and never re-sorts.
func (s *Store) Search(query string) []*look.Record {
	query = strings.TrimSpace(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*look.Record, 0, len(s.records))
	for _, r := range s.records {
		if r.Matches(query) {
			out = append(out, r.Clone())
		}
	}
	return out
}

// Len returns the current collection size.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}

// Synced reports whether the durable copy matches the in-memory collection.
// It turns false when a persistence write fails and recovers on the next
// successful write.
func (s *Store) Synced() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.synced
}

func (s *Store) snapshot() []*look.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*look.Record, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r.Clone())
	}
	return out
}
