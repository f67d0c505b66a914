// Package look defines the saved-look record: a named snapshot of an
// avatar's accessory selection and preview image.
package look

import (
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Record is a single saved look.
//
// The JSON field names form the storage and interchange encoding: a look
// collection is always serialized as a flat JSON array of these objects.
type Record struct {
	// ID is assigned at creation time, is stable for the record's lifetime
	// and is never reused.
	ID string `json:"id"`

	// Name is the display name. Never empty for a persisted record.
	Name string `json:"name"`

	// Notes is optional free text.
	Notes string `json:"notes"`

	// CreatedAt is set once at creation and is immutable.
	CreatedAt time.Time `json:"date"`

	// Preview is an opaque reference to the rendered look image at save
	// time (usually a data URI). Empty when no avatar existed.
	Preview string `json:"image,omitempty"`

	// Accessories maps a category identifier to the single selected
	// accessory identifier for that category. Categories are not validated
	// against a fixed list so new categories keep working.
	Accessories map[string]string `json:"accessories"`
}

// New builds a validated record with a fresh ID and creation timestamp.
// The name is trimmed; an empty or whitespace-only name fails with
// *ValidationError. The accessories map is copied so later caller mutations
// cannot reach the stored record.
func New(name, notes, preview string, accessories map[string]string) (*Record, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	acc := map[string]string{}
	if accessories != nil {
		acc = maps.Clone(accessories)
	}

	return &Record{
		ID:          uuid.NewString(),
		Name:        name,
		Notes:       notes,
		CreatedAt:   time.Now().UTC(),
		Preview:     preview,
		Accessories: acc,
	}, nil
}

// IsValid reports whether a decoded record satisfies the required-field
// invariants: non-empty id, non-empty name and a usable creation timestamp.
// Used when loading the persisted collection and when importing.
func (r *Record) IsValid() bool {
	return r.ID != "" && strings.TrimSpace(r.Name) != "" && !r.CreatedAt.IsZero()
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	c := *r
	c.Accessories = maps.Clone(r.Accessories)
	if c.Accessories == nil {
		c.Accessories = map[string]string{}
	}
	return &c
}

// Matches reports whether the query is a case-insensitive substring of the
// record name or notes. An empty query matches everything.
func (r *Record) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(r.Name), q) ||
		strings.Contains(strings.ToLower(r.Notes), q)
}
