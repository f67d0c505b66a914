package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/chromawave/lookvault/internal/httpserver/deps"
	"github.com/chromawave/lookvault/internal/httpserver/handlers"
)

func init() { Register(registerAvatar) }

func registerAvatar(r chi.Router, d deps.Deps) {
	r.Route("/api/avatar", func(r chi.Router) {
		r.Post("/generate", handlers.GenerateAvatar(d))
		r.Post("/{id}/try-on", handlers.TryOnAccessory(d))
		r.Get("/{id}/render", handlers.RenderAvatar(d))
		r.Post("/{id}/clear", handlers.ClearAccessories(d))
	})
}
