package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/config"
)

// ErrSnapshotNotFound is returned by Load when nothing is stored under the key.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotStore is a key-value medium holding serialized snapshots.
// Save returns only after the backend acknowledged the write.
type SnapshotStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Ping(ctx context.Context) error
	Close() error
	Driver() string
}

// Backends carries shared connections that several components may use.
type Backends struct {
	NATS *nats.Conn
}

// Open builds the snapshot store selected by cfg.Snapshot.Driver.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger, backends Backends) (SnapshotStore, error) {
	var (
		store SnapshotStore
		err   error
	)

	switch cfg.Snapshot.Driver {
	case config.DriverMemory:
		store = NewMemoryStore()
	case config.DriverFile:
		store, err = NewFileStore(cfg.Snapshot.FileDir)
	case config.DriverRedis:
		store = NewRedis(cfg.Redis, logger)
	case config.DriverPostgres:
		store, err = openPostgresStore(ctx, cfg.Postgres, logger)
	case config.DriverSQLite:
		store, err = NewSQLiteStore(ctx, cfg.SQLite.Path)
	case config.DriverS3:
		store, err = NewS3Store(ctx, cfg.S3)
	case config.DriverMongo:
		store, err = NewMongoStore(ctx, cfg.Mongo)
	case config.DriverNATS:
		store, err = NewNATSStore(backends.NATS, cfg.NATS)
	default:
		return nil, fmt.Errorf("unknown snapshot driver %q", cfg.Snapshot.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s snapshot store: %w", cfg.Snapshot.Driver, err)
	}

	logger.Info("snapshot store ready", zap.String("driver", store.Driver()), zap.String("key", cfg.Snapshot.Key))
	return store, nil
}

func openPostgresStore(ctx context.Context, cfg config.PostgresConfig, logger *zap.Logger) (SnapshotStore, error) {
	if cfg.DSN == "" {
		return nil, errors.New("POSTGRES_DSN required for postgres driver")
	}
	pg, err := NewPostgres(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if cfg.RunMigrations {
		if err := RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			pg.Close()
			return nil, err
		}
	}
	return pg, nil
}
