package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chromawave/lookvault/internal/logger"
)

// fileSchema is the shape of accessories.yaml: an ordered list of categories,
// each with its accessory entries.
//
//	- category: clothing
//	  accessories:
//	    - id: casual-t-shirt
//	      name: Casual T-Shirt
//	      thumbnail: /assets/accessories/clothing/casual-t-shirt.png
type fileSchema []struct {
	Category    string      `yaml:"category"`
	Accessories []Accessory `yaml:"accessories"`
}

// Load reads the catalog from a YAML file. An empty path selects the built-in
// placeholder catalog; a missing or unparsable file falls back to it too,
// with a diagnostic, so the service always starts with a usable inventory.
func Load(path string, log logger.Logger) *Catalog {
	if path == "" {
		log.Info("no catalog file configured, using built-in accessories")
		return Default()
	}

	c, err := loadFile(path)
	if err != nil {
		log.Warn("failed to load accessory catalog, using built-in accessories",
			logger.String("file", path),
			logger.Error(err))
		return Default()
	}

	log.Info("loaded accessory catalog",
		logger.String("file", path),
		logger.Int("categories", len(c.categories)),
		logger.Int("accessories", c.Count()))
	return c
}

func loadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var schema fileSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("failed to parse catalog yaml: %w", err)
	}

	categories := make([]string, 0, len(schema))
	byCategory := make(map[string][]Accessory, len(schema))
	for _, entry := range schema {
		if entry.Category == "" {
			continue
		}
		items := make([]Accessory, 0, len(entry.Accessories))
		for _, a := range entry.Accessories {
			// Entries without an id cannot be selected, skip them.
			if a.ID == "" {
				continue
			}
			if a.Name == "" {
				a.Name = a.ID
			}
			items = append(items, a)
		}
		categories = append(categories, entry.Category)
		byCategory[entry.Category] = items
	}

	if len(categories) == 0 {
		return nil, fmt.Errorf("no categories found in catalog file")
	}

	return newCatalog(categories, byCategory), nil
}
