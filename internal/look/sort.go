package look

import (
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the display ordering of a look collection.
type SortKey string

const (
	// SortNewest orders by creation time, most recent first.
	SortNewest SortKey = "newest"
	// SortOldest orders by creation time, oldest first.
	SortOldest SortKey = "oldest"
	// SortName orders by name ascending using locale collation.
	SortName SortKey = "name"
)

// ParseSortKey maps a user-supplied string to a SortKey. An empty string
// defaults to SortNewest.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case "":
		return SortNewest, nil
	case SortNewest, SortOldest, SortName:
		return SortKey(s), nil
	default:
		return "", fmt.Errorf("unknown sort key %q", s)
	}
}

// Sort orders records in place by the given key. The sort is stable: records
// that compare equal keep their original collection order, so display output
// is deterministic.
func Sort(records []*Record, key SortKey) {
	switch key {
	case SortOldest:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].CreatedAt.Before(records[j].CreatedAt)
		})
	case SortName:
		// Collation rather than byte order so that e.g. "apple" sorts
		// before "Banana", matching what users expect from a name sort.
		c := collate.New(language.Und)
		sort.SliceStable(records, func(i, j int) bool {
			return c.CompareString(records[i].Name, records[j].Name) < 0
		})
	default: // SortNewest
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].CreatedAt.After(records[j].CreatedAt)
		})
	}
}
