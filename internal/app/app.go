package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/chromawave/lookvault/internal/avatar"
	"github.com/chromawave/lookvault/internal/catalog"
	"github.com/chromawave/lookvault/internal/config"
	"github.com/chromawave/lookvault/internal/httpserver"
	"github.com/chromawave/lookvault/internal/httpserver/deps"
	"github.com/chromawave/lookvault/internal/kv"
	"github.com/chromawave/lookvault/internal/logger"
	"github.com/chromawave/lookvault/internal/redis"
	"github.com/chromawave/lookvault/internal/scheduler"
	"github.com/chromawave/lookvault/internal/store"
	"github.com/chromawave/lookvault/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	lookStore   *store.Store
	sessions    *avatar.Registry
	sweeper     *scheduler.SessionSweeper
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Pick the persistence adapter. Redis is the durable path; when it is
	// unconfigured or unreachable the service still comes up on the
	// in-memory adapter so the demo keeps working, just without durability.
	var adapter kv.Adapter
	var redisClient *goredis.Client
	if cfg.RedisAddr != "" {
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			loggerClient.Warn("redis unavailable, falling back to in-memory storage",
				logger.Error(err))
			adapter = kv.NewMemory()
		} else {
			redisClient = client
			adapter = kv.NewRedis(client)
		}
	} else {
		loggerClient.Info("no redis configured, using in-memory storage")
		adapter = kv.NewMemory()
	}

	// The store loads the persisted collection once here; corrupt data is
	// discarded with a diagnostic, never a startup failure.
	lookStore := store.New(context.Background(), adapter, cfg.LooksKey, loggerClient)

	accessoryCatalog := catalog.Load(cfg.CatalogFile, loggerClient)

	sessions := avatar.NewRegistry()
	sweeper := scheduler.NewSessionSweeper(sessions, loggerClient, cfg.SessionSweepInterval, cfg.SessionTTL)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		TimeNow:        time.Now,
		Store:          lookStore,
		Catalog:        accessoryCatalog,
		Sessions:       sessions,
		RedisClient:    redisClient,
		TrustProxy:     cfg.TrustProxy,
		ImportBurst:    cfg.ImportBurst,
		ImportPerIPMin: cfg.ImportPerIPMin,
		MaxImportBytes: cfg.MaxImportBytes,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		lookStore:   lookStore,
		sessions:    sessions,
		sweeper:     sweeper,
	}
}

func (a *App) Run() error {
	a.logger.Infof("Starting lookvault %s (commit=%s, built=%s, go=%s) on %s",
		version.Version, version.Commit, version.BuildDate, version.GoVersion, a.cfg.ListenPort)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.sweeper.Start(ctx)
	a.logger.Info("session sweeper started",
		logger.Duration("interval", a.cfg.SessionSweepInterval),
		logger.Duration("ttl", a.cfg.SessionTTL))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.sweeper.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("Redis closed cleanly")
		}
	}

	a.logger.Info("lookvault stopped cleanly")
	return nil
}
