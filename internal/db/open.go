package db

import (
	"context"
	"fmt"

	"github.com/ukydev/fleet-records/internal/config"
)

// Open selects a Store implementation from cfg.Driver.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case config.DriverFile, "":
		return NewFileStore(cfg.Path), nil
	case config.DriverMemory:
		return NewMemoryStore(), nil
	case config.DriverMongo:
		return NewMongoStore(ctx, cfg.Mongo)
	case config.DriverSQLite:
		return NewSQLiteStore(cfg.Path)
	case config.DriverPostgres:
		return NewPostgresStore(ctx, cfg.DSN)
	case config.DriverS3:
		return NewS3Store(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown store driver %s", cfg.Driver)
	}
}
