package components

import (
	"context"
	"log/slog"

	"availability-engine/internal/handler/api"
	"availability-engine/internal/infra/db"
	"availability-engine/internal/infra/directory"
	"availability-engine/internal/infra/memstore"
	"availability-engine/internal/infra/repository"
	"availability-engine/internal/infra/uow"
	"availability-engine/internal/pkg/config"
	"availability-engine/internal/usecase/shared"
	"availability-engine/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(NewPersistence),
	fx.Invoke(seedDirectory),
)

type Persistence struct {
	fx.Out

	UoW       shared.UnitOfWork
	Slots     shared.SlotRepository
	Holds     shared.HoldRepository
	Requests  shared.BookingRequestRepository
	Directory shared.PartyDirectory
	Seeder    directory.Upserter
	Pinger    api.Pinger
}

func NewPersistence(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (Persistence, error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		logger.Warn("インメモリストアを使用します（再起動でデータは失われます）")
		store := memstore.New()
		parties := store.Parties()
		return Persistence{
			UoW:       store.UnitOfWork(),
			Slots:     store.Slots(),
			Holds:     store.Holds(),
			Requests:  store.BookingRequests(),
			Directory: parties,
			Seeder:    parties,
		}, nil
	}

	pool, cleanup, err := openDB(context.Background(), cfg, logger)
	if err != nil {
		return Persistence{}, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	parties := repository.NewPartyRepository(pool, logger)
	return Persistence{
		UoW:       uow.NewPostgresUoW(pool, logger),
		Slots:     repository.NewSlotRepository(pool, logger),
		Holds:     repository.NewHoldRepository(pool, logger),
		Requests:  repository.NewBookingRequestRepository(pool, logger),
		Directory: parties,
		Seeder:    parties,
		Pinger:    pool,
	}, nil
}

// openDB connects and applies the embedded migrations.
func openDB(ctx context.Context, cfg config.Config, logger *slog.Logger) (*pgxpool.Pool, func(), error) {
	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	if err := migrations.Apply(ctx, pool); err != nil {
		cleanup()
		return nil, nil, err
	}
	logger.Info("データベースに接続しました", "host", cfg.DB.Host, "database", cfg.DB.DBName)
	return pool, cleanup, nil
}

func seedDirectory(lc fx.Lifecycle, cfg config.Config, seeder directory.Upserter, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			n, err := directory.Load(ctx, cfg.Directory.SeedFile, seeder)
			if err != nil {
				return err
			}
			if n > 0 {
				logger.Info("パーティディレクトリを読み込みました", "count", n, "file", cfg.Directory.SeedFile)
			}
			return nil
		},
	})
}
