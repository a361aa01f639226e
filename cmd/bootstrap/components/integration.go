package components

import (
	"context"
	"log/slog"

	"availability-engine/internal/infra/lock"
	"availability-engine/internal/infra/notifier"
	"availability-engine/internal/infra/telemetry"
	"availability-engine/internal/pkg/config"
	"availability-engine/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var IntegrationModule = fx.Module("integration",
	fx.Provide(
		NewNotifier,
		NewDispatcher,
		NewLocker,
	),
	fx.Invoke(setupTelemetry),
)

// NewNotifier publishes to Kafka when brokers are configured and logs otherwise.
func NewNotifier(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) shared.Notifier {
	if len(cfg.Kafka.Brokers) == 0 {
		logger.Info("Kafka未設定のため通知はログに出力します")
		return notifier.NewLogNotifier(logger)
	}
	n := notifier.NewKafkaNotifier(cfg.Kafka, logger)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return n.Close()
		},
	})
	return n
}

func NewDispatcher(lc fx.Lifecycle, n shared.Notifier, cfg config.Config, logger *slog.Logger) *shared.Dispatcher {
	d := shared.NewDispatcher(n, logger, cfg.Hold.NotifyTimeout)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := d.WaitContext(ctx); err != nil {
				logger.Warn("送信中の通知を待たずに停止します", "error", err.Error())
			}
			return nil
		},
	})
	return d
}

// NewLocker leases the sweep through Redis when REDIS_ADDR is set, so replicas share one sweeper.
func NewLocker(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) shared.Locker {
	if cfg.Redis.Addr == "" {
		return lock.NewLocalLocker()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				logger.Warn("Redisに接続できません", "addr", cfg.Redis.Addr, "error", err.Error())
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return lock.NewRedisLocker(client)
}

func setupTelemetry(lc fx.Lifecycle, cfg config.Config) error {
	shutdown, err := telemetry.Setup(context.Background(), cfg.Telemetry)
	if err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return shutdown(ctx)
		},
	})
	return nil
}
