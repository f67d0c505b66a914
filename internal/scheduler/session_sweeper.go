package scheduler

import (
	"context"
	"time"

	"github.com/chromawave/lookvault/internal/avatar"
	"github.com/chromawave/lookvault/internal/logger"
)

const (
	// DefaultSessionTTL is the idle lifetime of a try-on session.
	DefaultSessionTTL = 30 * time.Minute
)

// SessionSweeper periodically expires idle try-on sessions so abandoned
// avatars do not accumulate in memory.
type SessionSweeper struct {
	registry *avatar.Registry
	logger   logger.Logger
	interval time.Duration
	ttl      time.Duration
	stopCh   chan struct{}
}

// NewSessionSweeper creates a new sweeper.
func NewSessionSweeper(
	registry *avatar.Registry,
	log logger.Logger,
	interval time.Duration,
	ttl time.Duration,
) *SessionSweeper {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	return &SessionSweeper{
		registry: registry,
		logger:   log,
		interval: interval,
		ttl:      ttl,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic sweep.
func (sw *SessionSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(sw.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				sw.Sweep()
			case <-sw.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the sweeper.
func (sw *SessionSweeper) Stop() {
	close(sw.stopCh)
}

// Sweep expires sessions idle for longer than the TTL.
func (sw *SessionSweeper) Sweep() {
	dropped := sw.registry.ExpireIdle(time.Now().Add(-sw.ttl))
	if dropped > 0 {
		sw.logger.Info("expired idle try-on sessions",
			logger.Int("dropped", dropped),
			logger.Int("remaining", sw.registry.Count()))
	} else {
		sw.logger.Debug("no idle try-on sessions to expire")
	}
}
