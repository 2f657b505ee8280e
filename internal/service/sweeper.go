package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SessionSweeper periodically abandons rounds of players who went away.
type SessionSweeper struct {
	registry *SessionRegistry
	idleTTL  time.Duration
	spec     string
	now      func() time.Time
	logger   *zap.Logger
}

// NewSessionSweeper creates a sweeper running on the cron spec.
func NewSessionSweeper(registry *SessionRegistry, idleTTL time.Duration, spec string, logger *zap.Logger) *SessionSweeper {
	return &SessionSweeper{
		registry: registry,
		idleTTL:  idleTTL,
		spec:     spec,
		now:      time.Now,
		logger:   logger,
	}
}

// Start runs the sweep schedule until ctx is done.
func (s *SessionSweeper) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(s.spec, func() {
		s.Sweep()
	})
	if err != nil {
		return fmt.Errorf("add sweep job %q: %w", s.spec, err)
	}

	c.Start()
	s.logger.Info("session sweeper started", zap.String("spec", s.spec), zap.Duration("idle_ttl", s.idleTTL))

	<-ctx.Done()

	<-c.Stop().Done()
	s.registry.CloseAll()
	s.logger.Info("session sweeper stopped")

	return nil
}

// Sweep releases rounds idle for longer than the TTL and returns how many were released.
func (s *SessionSweeper) Sweep() int {
	released := s.registry.ReleaseIdle(s.now().Add(-s.idleTTL))
	if released > 0 {
		s.logger.Info("released idle rounds",
			zap.Int("released", released),
			zap.Int("sessions", s.registry.Len()),
		)
	}
	return released
}
