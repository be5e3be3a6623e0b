package kvstore

import (
	"context"
	"fmt"

	"github.com/angelmondragon/caffeineveins/pkg/config"
	"github.com/angelmondragon/caffeineveins/pkg/db"
	"github.com/angelmondragon/caffeineveins/pkg/enums"
	"github.com/angelmondragon/caffeineveins/pkg/logger"
	"github.com/angelmondragon/caffeineveins/pkg/migrate"
	"github.com/angelmondragon/caffeineveins/pkg/redis"
	"go.uber.org/multierr"
)

// Open builds the substrate selected by cfg.Storage.Driver. SQL substrates are
// migrated first when AutoMigrate is on.
func Open(ctx context.Context, cfg *config.Config, logg *logger.Logger) (Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config required")
	}
	if logg == nil {
		logg = logger.Nop()
	}

	driver, err := enums.ParseStorageDriver(cfg.Storage.Driver)
	if err != nil {
		return nil, err
	}
	ctx = logg.WithField(ctx, "storage_driver", driver.String())

	switch driver {
	case enums.StorageDriverMemory:
		logg.Warn(ctx, "memory storage selected; data will not survive a restart")
		return NewMemory(), nil

	case enums.StorageDriverSQLite, enums.StorageDriverPostgres:
		client, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			return nil, err
		}
		if err := migrate.MaybeRun(ctx, cfg, logg, client); err != nil {
			return nil, multierr.Append(err, client.Close())
		}
		store, err := NewSQL(client)
		if err != nil {
			return nil, multierr.Append(err, client.Close())
		}
		return store, nil

	case enums.StorageDriverRedis:
		client, err := redis.New(ctx, cfg.Redis, cfg.Storage.Namespace, logg)
		if err != nil {
			return nil, err
		}
		store, err := NewRedis(ctx, client, cfg.Storage.WriterLeaseTTL)
		if err != nil {
			return nil, multierr.Append(err, client.Close())
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", driver)
	}
}
