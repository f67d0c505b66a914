package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/chromawave/lookvault/internal/httpserver/deps"
	"github.com/chromawave/lookvault/internal/httpserver/handlers"
	"github.com/chromawave/lookvault/internal/httpserver/mw"
)

func init() { Register(registerLooks) }

func registerLooks(r chi.Router, d deps.Deps) {
	r.Route("/api/looks", func(r chi.Router) {
		r.Get("/", handlers.ListLooks(d))
		r.Post("/", handlers.CreateLook(d))
		r.Get("/export", handlers.ExportLooks(d))
		r.With(mw.RateLimit(mw.RateLimitConfig{
			Burst:        d.ImportBurst,
			RefillPerMin: d.ImportPerIPMin,
			TrustProxy:   d.TrustProxy,
		})).Post("/import", handlers.ImportLooks(d))
		r.Get("/{id}", handlers.GetLook(d))
		r.Delete("/{id}", handlers.DeleteLook(d))
	})
}
