package main

import (
	"context"
	"fmt"
	"time"

	"github.com/ultistudent/ultistudent/config"
	"github.com/ultistudent/ultistudent/internal/infrastructure/persistence"
	"github.com/ultistudent/ultistudent/internal/infrastructure/persistence/file"
	"github.com/ultistudent/ultistudent/internal/infrastructure/persistence/postgres"
	"github.com/ultistudent/ultistudent/internal/infrastructure/persistence/redis"
	"github.com/ultistudent/ultistudent/internal/infrastructure/persistence/sqlite"
	"github.com/ultistudent/ultistudent/pkg/logger"
)

// startupGrace covers connection retries while a database server comes up.
const startupGrace = 10 * time.Second

func openTimeout(cfg *config.Config) time.Duration {
	return cfg.Storage.Timeout + startupGrace
}

// openStorage creates the backend selected by cfg.Storage.Backend.
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (persistence.Storage, error) {
	sc := cfg.Storage
	log = log.Named("storage")

	switch sc.Backend {
	case config.BackendMemory:
		return persistence.NewMemory(), nil

	case config.BackendFile:
		return file.New(sc.Path, file.WithLogger(log)), nil

	case config.BackendSQLite:
		return sqlite.Open(ctx, sc.Path, log)

	case config.BackendPostgres:
		pc := postgres.DefaultConfig(sc.DatabaseURL)
		if sc.MaxConns > 0 {
			pc.MaxConns = sc.MaxConns
		}
		return postgres.Open(ctx, pc, log)

	case config.BackendRedis:
		rc := redis.DefaultConfig()
		rc.Addr = sc.Redis.Addr
		rc.Password = sc.Redis.Password
		rc.DB = sc.Redis.DB
		if sc.Redis.Key != "" {
			rc.Key = sc.Redis.Key
		}
		return redis.Open(ctx, rc, log)

	default:
		return nil, fmt.Errorf("unknown storage backend %q", sc.Backend)
	}
}
