package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chromawave/lookvault/internal/logger"
	"github.com/chromawave/lookvault/internal/look"
)

// ImportError reports a structurally invalid import payload. The whole import
// is rejected when it is returned; nothing is merged.
type ImportError struct {
	// Index is the position of the offending record, or -1 when the
	// top-level payload shape is wrong.
	Index  int
	Reason string
}

func (e *ImportError) Error() string {
	if e.Index < 0 {
		return "import rejected: " + e.Reason
	}
	return fmt.Sprintf("import rejected: record %d %s", e.Index, e.Reason)
}

// ExportAll serializes the full collection as an indented JSON array suitable
// for file download. The output round-trips through ImportMerge unchanged.
func (s *Store) ExportAll() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize look collection: %w", err)
	}
	return string(data), nil
}

// ImportMerge parses blob and merges it into the collection by id: an
// imported record overwrites any existing record sharing its id, records with
// new ids are appended. The merge is all-or-nothing: a payload that is not a
// JSON array, or that contains any element failing validation, is rejected
// with *ImportError and the collection is left untouched.
//
// Returns the number of records present in the payload. A *kv.PersistenceError
// follows the same contract as Save: the merge is applied in memory even when
// the durable write fails.
func (s *Store) ImportMerge(ctx context.Context, blob string) (int, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		return 0, &ImportError{Index: -1, Reason: "payload is not a JSON array"}
	}
	if raw == nil {
		// "null" decodes without error but is not a sequence.
		return 0, &ImportError{Index: -1, Reason: "payload is not a JSON array"}
	}

	incoming := make([]*look.Record, 0, len(raw))
	for i, msg := range raw {
		var rec look.Record
		if err := json.Unmarshal(msg, &rec); err != nil {
			return 0, &ImportError{Index: i, Reason: "is not a valid look object"}
		}
		if !rec.IsValid() {
			return 0, &ImportError{Index: i, Reason: "failed validation"}
		}
		incoming = append(incoming, &rec)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	position := make(map[string]int, len(s.records))
	for i, r := range s.records {
		position[r.ID] = i
	}

	overwritten := 0
	for _, rec := range incoming {
		if i, ok := position[rec.ID]; ok {
			s.records[i] = rec
			overwritten++
		} else {
			position[rec.ID] = len(s.records)
			s.records = append(s.records, rec)
		}
	}

	perr := s.persistLocked(ctx)

	s.log.Info("imported looks",
		logger.Int("processed", len(incoming)),
		logger.Int("overwritten", overwritten),
		logger.Int("added", len(incoming)-overwritten))

	return len(incoming), perr
}
