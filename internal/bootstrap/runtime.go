// Package bootstrap wires the runtime dependencies shared by every binary.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ganboo/internal/cache"
	"ganboo/internal/config"
	"ganboo/internal/database"
	"ganboo/internal/middleware"
	"ganboo/internal/repository"
	"ganboo/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedDemo registers the demo users. The memory backend always seeds them.
	SeedDemo bool
	// SkipRedis leaves the cache disabled.
	SkipRedis bool
}

// Runtime is the set of initialized dependencies.
type Runtime struct {
	DB    *gorm.DB
	Redis *redis.Client
	Store repository.UserStore
}

// InitRuntime connects the configured store backend and Redis and optionally seeds demo users.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*Runtime, error) {
	rt := &Runtime{}

	switch cfg.StoreBackend {
	case config.StoreBackendMemory:
		rt.Store = repository.NewMemoryUserStore()
		opts.SeedDemo = true
	case config.StoreBackendDatabase:
		db, err := database.Connect(cfg)
		if err != nil {
			return nil, fmt.Errorf("database connection failed: %w", err)
		}
		rt.DB = db
		rt.Store = repository.NewUserRepository(db)
	default:
		return nil, fmt.Errorf("unsupported STORE_BACKEND %q", cfg.StoreBackend)
	}

	if !opts.SkipRedis {
		// Init Redis (may result in nil client if unreachable)
		cache.InitRedis(cfg.RedisURL)
		rt.Redis = cache.GetClient()
	}

	if opts.SeedDemo {
		n, err := seed.Demo(ctx, rt.Store)
		if err != nil {
			_ = rt.Close()
			return nil, fmt.Errorf("failed to seed demo users: %w", err)
		}
		if err := seed.ResetSequence(rt.DB); err != nil {
			_ = rt.Close()
			return nil, err
		}
		middleware.Logger.InfoContext(ctx, "Demo users ready", slog.Int("created", n))
	}

	middleware.Logger.InfoContext(ctx, "Runtime initialized",
		slog.String("store", cfg.StoreBackend),
		slog.Bool("redis", rt.Redis != nil),
	)
	return rt, nil
}

// Close releases the database pool and the Redis client.
func (r *Runtime) Close() error {
	var errs []error
	if r.DB != nil {
		if sqlDB, err := r.DB.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
		r.DB = nil
	}
	if r.Redis != nil {
		errs = append(errs, cache.Close())
		r.Redis = nil
	}
	return errors.Join(errs...)
}
