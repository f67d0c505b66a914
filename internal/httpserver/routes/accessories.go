package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/chromawave/lookvault/internal/httpserver/deps"
	"github.com/chromawave/lookvault/internal/httpserver/handlers"
)

func init() { Register(registerAccessories) }

func registerAccessories(r chi.Router, d deps.Deps) {
	r.Get("/api/accessories", handlers.ListCategories(d))
	r.Get("/api/accessories/{category}", handlers.ListAccessories(d))
}
