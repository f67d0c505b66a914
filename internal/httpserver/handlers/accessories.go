package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chromawave/lookvault/internal/catalog"
	"github.com/chromawave/lookvault/internal/httpserver/deps"
)

type categoriesResponse struct {
	Success    bool     `json:"success"`
	Categories []string `json:"categories"`
}

type accessoriesResponse struct {
	Success     bool                `json:"success"`
	Category    string              `json:"category"`
	Accessories []catalog.Accessory `json:"accessories"`
}

// ListCategories returns the category identifiers of the catalog.
func ListCategories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, categoriesResponse{
			Success:    true,
			Categories: d.Catalog.Categories(),
		})
	}
}

// ListAccessories returns the accessories of one category. Unknown categories
// yield an empty list so the UI can stay dumb about catalog contents.
func ListAccessories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := chi.URLParam(r, "category")
		writeJSON(w, http.StatusOK, accessoriesResponse{
			Success:     true,
			Category:    category,
			Accessories: d.Catalog.List(category),
		})
	}
}
