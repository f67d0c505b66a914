package catalog

// Default returns the built-in demo inventory used when no catalog file is
// configured.
func Default() *Catalog {
	byCategory := map[string][]Accessory{
		"clothing": {
			{ID: "casual-t-shirt", Name: "Casual T-Shirt"},
			{ID: "formal-shirt", Name: "Formal Shirt"},
			{ID: "dress", Name: "Dress"},
			{ID: "suit", Name: "Suit"},
			{ID: "sweater", Name: "Sweater"},
			{ID: "hoodie", Name: "Hoodie"},
		},
		"jewelry": {
			{ID: "gold-necklace", Name: "Gold Necklace"},
			{ID: "silver-earrings", Name: "Silver Earrings"},
			{ID: "diamond-ring", Name: "Diamond Ring"},
			{ID: "pearl-bracelet", Name: "Pearl Bracelet"},
			{ID: "ruby-pendant", Name: "Ruby Pendant"},
		},
		"shoes": {
			{ID: "sneakers", Name: "Sneakers"},
			{ID: "dress-shoes", Name: "Dress Shoes"},
			{ID: "boots", Name: "Boots"},
			{ID: "sandals", Name: "Sandals"},
			{ID: "high-heels", Name: "High Heels"},
		},
		"watches": {
			{ID: "smart-watch", Name: "Smart Watch"},
			{ID: "luxury-watch", Name: "Luxury Watch"},
			{ID: "sport-watch", Name: "Sport Watch"},
			{ID: "classic-watch", Name: "Classic Watch"},
		},
	}

	for category, items := range byCategory {
		for i := range items {
			items[i].Thumbnail = "/assets/accessories/" + category + "/" + items[i].ID + ".png"
		}
	}

	return newCatalog([]string{"clothing", "jewelry", "shoes", "watches"}, byCategory)
}
