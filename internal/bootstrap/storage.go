package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/is24/projects-manager/config"
	httpapi "github.com/is24/projects-manager/internal/api/http"
	"github.com/is24/projects-manager/internal/projects/repository"
	"github.com/is24/projects-manager/internal/storage/jsonfile"
	"github.com/is24/projects-manager/internal/storage/postgres"
	"github.com/is24/projects-manager/internal/storage/redisstore"
)

// Storage is the opened backend plus what the health check and shutdown need.
type Storage struct {
	Backend repository.Backend
	Pinger  httpapi.Pinger // nil for local storage
	Close   func()
}

// OpenStorage connects the backend selected by cfg.Storage.Backend.
func OpenStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Storage, error) {
	switch cfg.Storage.Backend {
	case config.StorageFile:
		logger.Info("using file storage", zap.String("path", cfg.Storage.DataFile))
		return &Storage{
			Backend: jsonfile.New(cfg.Storage.DataFile),
			Close:   func() {},
		}, nil

	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := client.Ping(pctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}

		logger.Info("using redis storage", zap.String("addr", cfg.Redis.Addr), zap.String("key", cfg.Redis.Key))
		store := redisstore.New(client, cfg.Redis.Key)
		return &Storage{
			Backend: store,
			Pinger:  store,
			Close:   func() { _ = client.Close() },
		}, nil

	case config.StoragePostgres:
		pool, err := OpenDB(ctx, DBOptions{DSN: cfg.Database.DSN, MaxConns: cfg.Database.MaxConns})
		if err != nil {
			return nil, err
		}

		store := postgres.NewStore(pool, postgres.DefaultDocument)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}

		logger.Info("using postgres storage")
		return &Storage{
			Backend: store,
			Pinger:  store,
			Close:   pool.Close,
		}, nil
	}

	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
