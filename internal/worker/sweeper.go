package worker

import (
	"context"
	"log/slog"
	"time"

	"availability-engine/internal/pkg/clock"
	"availability-engine/internal/pkg/config"
	"availability-engine/internal/usecase/commands"
	"availability-engine/internal/usecase/shared"
)

const sweepLockKey = "availability:sweep"

type Sweeper struct {
	holds    commands.HoldCommands
	requests commands.BookingRequestCommands
	locker   shared.Locker
	clock    clock.Clock
	logger   *slog.Logger

	interval       time.Duration
	lockTTL        time.Duration
	reconcileLimit int
}

type TickResult struct {
	Skipped          bool
	ExpiredHolds     int
	ExpiredRequests  int
	RepairedHolds    int
	RepairedRequests int
}

func NewSweeper(
	holds commands.HoldCommands,
	requests commands.BookingRequestCommands,
	locker shared.Locker,
	clock clock.Clock,
	logger *slog.Logger,
	cfg config.SweepConfig,
) *Sweeper {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = cfg.Interval
	}
	if cfg.ReconcileLimit <= 0 {
		cfg.ReconcileLimit = 100
	}
	return &Sweeper{
		holds:          holds,
		requests:       requests,
		locker:         locker,
		clock:          clock,
		logger:         logger,
		interval:       cfg.Interval,
		lockTTL:        cfg.LockTTL,
		reconcileLimit: cfg.ReconcileLimit,
	}
}

func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("sweeper started", "interval", s.interval)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sweeper stopped")
			return
		case <-ticker.C:
			if _, err := s.Tick(ctx); err != nil {
				s.logger.Error("sweep failed", "error", err.Error())
			}
		}
	}
}

// Tick runs one sweep pass under the shared lease. When another instance holds the lease
// the pass is skipped.
func (s *Sweeper) Tick(ctx context.Context) (TickResult, error) {
	release, ok, err := s.locker.TryLock(ctx, sweepLockKey, s.lockTTL)
	if err != nil {
		return TickResult{}, err
	}
	if !ok {
		s.logger.Debug("sweep skipped: lease held elsewhere")
		return TickResult{Skipped: true}, nil
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			s.logger.Warn("failed to release sweep lease", "error", err.Error())
		}
	}()

	var res TickResult
	now := s.clock.Now()

	if res.ExpiredHolds, err = s.holds.SweepExpired(ctx, now); err != nil {
		return res, err
	}
	if res.ExpiredRequests, err = s.requests.SweepStale(ctx, now); err != nil {
		return res, err
	}
	if res.RepairedHolds, err = s.holds.ReconcileMaterialization(ctx, s.reconcileLimit); err != nil {
		return res, err
	}
	if res.RepairedRequests, err = s.requests.ReconcileMaterialization(ctx, s.reconcileLimit); err != nil {
		return res, err
	}

	if res.ExpiredHolds+res.ExpiredRequests+res.RepairedHolds+res.RepairedRequests > 0 {
		s.logger.Info("sweep completed",
			"expired_holds", res.ExpiredHolds,
			"expired_requests", res.ExpiredRequests,
			"repaired_holds", res.RepairedHolds,
			"repaired_requests", res.RepairedRequests)
	}
	return res, nil
}
