package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/chromawave/lookvault/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready   bool   `json:"ready"`
	Storage string `json:"storage"`
	Synced  bool   `json:"synced"`
	Looks   int    `json:"looks"`
}

// Readyz reports serving readiness. The service stays ready on the in-memory
// adapter when Redis is unconfigured or down; the storage field tells which
// mode it is in.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storage := "memory"
		if d.RedisClient != nil {
			storage = "redis"
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := d.RedisClient.Ping(ctx).Err(); err != nil {
				storage = "redis-unreachable"
			}
		}

		writeJSON(w, http.StatusOK, readyzResponse{
			Ready:   true,
			Storage: storage,
			Synced:  d.Store.Synced(),
			Looks:   d.Store.Len(),
		})
	}
}
