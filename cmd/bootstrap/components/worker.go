package components

import (
	"context"
	"log/slog"

	"availability-engine/internal/pkg/clock"
	"availability-engine/internal/pkg/config"
	"availability-engine/internal/usecase/commands"
	"availability-engine/internal/usecase/shared"
	"availability-engine/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(newSweeper),
	fx.Invoke(startSweeper),
)

type sweeperParams struct {
	fx.In

	Holds    commands.HoldCommands
	Requests commands.BookingRequestCommands
	Locker   shared.Locker
	Clock    clock.Clock
	Logger   *slog.Logger
	Config   config.Config
}

func newSweeper(p sweeperParams) *worker.Sweeper {
	return worker.NewSweeper(p.Holds, p.Requests, p.Locker, p.Clock, p.Logger, p.Config.Sweep)
}

func startSweeper(lc fx.Lifecycle, cfg config.Config, sweeper *worker.Sweeper, logger *slog.Logger) {
	if !cfg.Sweep.Enabled {
		logger.Info("期限切れスイープは無効です")
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				sweeper.Run(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}
