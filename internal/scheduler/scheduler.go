package scheduler

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/monasabatlabs/monasabat/internal/clock"
	"github.com/monasabatlabs/monasabat/internal/config"
	subscriptiondomain "github.com/monasabatlabs/monasabat/internal/subscription/domain"
)

// Scheduler runs background maintenance jobs. Read-side expiry in the
// subscription service stays authoritative; the sweep just converges
// stored state for stale rows nobody reads.
type Scheduler struct {
	db    *gorm.DB
	log   *zap.Logger
	cfg   config.SchedulerConfig
	clock clock.Clock
	subs  subscriptiondomain.Repository
}

type Param struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	Config config.Config
	Clock  clock.Clock
	Subs   subscriptiondomain.Repository
}

func New(p Param) *Scheduler {
	return &Scheduler{
		db:    p.DB,
		log:   p.Log.Named("scheduler"),
		cfg:   p.Config.Scheduler,
		clock: p.Clock,
		subs:  p.Subs,
	}
}

func (s *Scheduler) RunForever(ctx context.Context) {
	if !s.cfg.Enabled {
		s.log.Info("scheduler disabled")
		return
	}

	interval := s.cfg.SweepEvery
	if interval <= 0 {
		interval = time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.ExpireSubscriptionsJob(ctx); err != nil {
				s.log.Error("subscription expiry sweep failed", zap.Error(err))
			}
		}
	}
}

func (s *Scheduler) ExpireSubscriptionsJob(ctx context.Context) error {
	timeout := s.cfg.SweepTimeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cutoff := s.clock.Now(ctx)
	expired, err := s.subs.ExpireAllActiveBefore(ctx, s.db, cutoff)
	if err != nil {
		return err
	}
	if expired > 0 {
		s.log.Info("expired stale subscriptions",
			zap.Int64("rows", expired), zap.Time("cutoff", cutoff))
	}
	return nil
}

var Module = fx.Module("scheduler",
	fx.Provide(New),
)
