package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chromawave/lookvault/internal/avatar"
	"github.com/chromawave/lookvault/internal/catalog"
	"github.com/chromawave/lookvault/internal/logger"
	"github.com/chromawave/lookvault/internal/store"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	Store    *store.Store     // Saved-look store
	Catalog  *catalog.Catalog // Accessory inventory
	Sessions *avatar.Registry // In-memory try-on sessions

	RedisClient *redis.Client // nil when running on the in-memory adapter

	TrustProxy     bool  // true if running behind a trusted reverse proxy
	ImportBurst    int   // rate-limit burst for the import endpoint
	ImportPerIPMin int   // tokens refilled per IP per minute on import
	MaxImportBytes int64 // request body cap for the import endpoint
}
