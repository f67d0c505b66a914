package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	LooksKey    string // storage key holding the serialized look collection
	CatalogFile string // path to accessories.yaml (optional, empty = built-in catalog)

	SessionTTL           time.Duration // idle lifetime of a try-on session (default: 30m)
	SessionSweepInterval time.Duration // interval between session sweeps (default: 5m)

	// Redis (optional; empty addr = in-memory storage only)
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisWarnThreshold  int           // warn after this many attempts

	AllowedOrigins []string // origins allowed by CORS (localhost always allowed)
	TrustProxy     bool     // true => trust X-Forwarded-For headers

	ImportBurst    int   // rate-limit burst for the import endpoint
	ImportPerIPMin int   // tokens refilled per IP per minute on import
	MaxImportBytes int64 // request body cap for the import endpoint
}

func Load() *Config {
	// Best effort: a missing .env file is the normal case in containers.
	_ = godotenv.Load()

	return &Config{
		// Server settings
		ListenPort:      getenv("LOOKVAULT_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("LOOKVAULT_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("LOOKVAULT_LOG_LEVEL", "info"),
		PrettyLog: mustBool("LOOKVAULT_PRETTY_LOG", true),

		// Look store
		LooksKey:    getenv("LOOKVAULT_LOOKS_KEY", "lookvault:looks"),
		CatalogFile: getenv("LOOKVAULT_CATALOG_FILE", ""),

		// Try-on sessions
		SessionTTL:           mustDuration("LOOKVAULT_SESSION_TTL", 30*time.Minute),
		SessionSweepInterval: mustDuration("LOOKVAULT_SESSION_SWEEP_INTERVAL", 5*time.Minute),

		// Redis settings
		RedisAddr:           getenv("LOOKVAULT_REDIS_ADDR", ""),
		RedisUser:           getenv("LOOKVAULT_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("LOOKVAULT_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("LOOKVAULT_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access
		AllowedOrigins: splitAndTrim(getenv("LOOKVAULT_ALLOWED_ORIGINS", "")),
		TrustProxy:     mustBool("LOOKVAULT_TRUST_PROXY", false),

		// Import endpoint limits
		ImportBurst:    getenvInt("LOOKVAULT_IMPORT_BURST", 5),
		ImportPerIPMin: getenvInt("LOOKVAULT_IMPORT_PER_IP_PER_MIN", 10),
		MaxImportBytes: int64(getenvInt("LOOKVAULT_MAX_IMPORT_BYTES", 10<<20)),
	}
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
