package piazza

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	piazzaapp "modsoc/internal/application/piazza"
	"modsoc/internal/application/piazza/usecases"
	"modsoc/internal/infrastructure/cache"
	"modsoc/internal/infrastructure/config"
	"modsoc/internal/infrastructure/database"
	"modsoc/internal/infrastructure/namesplit"
	"modsoc/internal/infrastructure/repository"
	sharedConfig "modsoc/internal/shared/config"
	"modsoc/internal/shared/db"
	"modsoc/internal/shared/logger"
)

// runtime holds what a piazza subcommand needs and how to tear it down.
type runtime struct {
	service *piazzaapp.ServiceDDD
	logger  logger.Interface
	redis   *redis.Client
}

func (r *runtime) close() {
	if r.redis != nil {
		if err := r.redis.Close(); err != nil {
			r.logger.Warnw("failed to close redis client", "error", err)
		}
	}
	if err := database.Close(); err != nil {
		r.logger.Warnw("failed to close database", "error", err)
	}
	_ = logger.Sync()
}

func initRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.App.Mode); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger().Named("piazza")

	if err := database.Init(&cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	rt := &runtime{logger: log}

	var lock usecases.DatasetLock = cache.NoopDatasetLock{}
	if cfg.Redis.Enabled {
		rt.redis, err = initRedis(ctx, &cfg.Redis, log)
		if err != nil {
			rt.close()
			return nil, err
		}
		lock = cache.NewRedisDatasetLock(rt.redis, cfg.Redis.LockTTL(), log)
	}

	rt.service = newService(database.Get(), lock, log)
	return rt, nil
}

// initRedis creates the client behind the dataset lock and checks the connection.
func initRedis(ctx context.Context, cfg *sharedConfig.RedisConfig, log logger.Interface) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	log.Infow("redis connection established", "addr", cfg.GetAddr())

	return client, nil
}

func newService(gormDB *gorm.DB, lock usecases.DatasetLock, log logger.Interface) *piazzaapp.ServiceDDD {
	return piazzaapp.NewServiceDDD(
		repository.NewPiazzaUserRepository(gormDB, log),
		repository.NewCentralUserRepository(gormDB, log),
		repository.NewContentRepository(gormDB, log),
		namesplit.New(),
		db.NewTransactionManager(gormDB),
		lock,
		log,
	)
}
