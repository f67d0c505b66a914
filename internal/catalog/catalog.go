// Package catalog holds the accessory inventory shown in the try-on UI:
// a small fixed set of categories, each listing selectable accessories.
package catalog

import "maps"

// Accessory is one selectable item within a category.
type Accessory struct {
	ID        string `yaml:"id" json:"id"`
	Name      string `yaml:"name" json:"name"`
	Thumbnail string `yaml:"thumbnail,omitempty" json:"thumbnail"`
}

// Catalog is an immutable category -> accessories inventory. Build one with
// Load or Default; it is safe for concurrent readers after that.
type Catalog struct {
	categories []string
	byCategory map[string][]Accessory
}

// Categories returns the category identifiers in declaration order.
func (c *Catalog) Categories() []string {
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// List returns the accessories of a category. Unknown categories yield an
// empty list, not an error.
func (c *Catalog) List(category string) []Accessory {
	items := c.byCategory[category]
	out := make([]Accessory, len(items))
	copy(out, items)
	return out
}

// Get returns an accessory by category and id.
func (c *Catalog) Get(category, id string) (Accessory, bool) {
	for _, item := range c.byCategory[category] {
		if item.ID == id {
			return item, true
		}
	}
	return Accessory{}, false
}

// Count returns the total number of accessories across all categories.
func (c *Catalog) Count() int {
	n := 0
	for _, items := range c.byCategory {
		n += len(items)
	}
	return n
}

func newCatalog(categories []string, byCategory map[string][]Accessory) *Catalog {
	return &Catalog{
		categories: categories,
		byCategory: maps.Clone(byCategory),
	}
}
