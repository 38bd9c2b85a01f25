// Package db opens the configured credential/order store and the refresh-token
// revocation store.
package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pizzadelivery/pizza-api/internal/core/ports"
	"github.com/pizzadelivery/pizza-api/internal/infrastructure/config"
	"github.com/pizzadelivery/pizza-api/internal/infrastructure/db/memory"
	"github.com/pizzadelivery/pizza-api/internal/infrastructure/db/mongo"
	"github.com/pizzadelivery/pizza-api/internal/infrastructure/db/redis"
	"github.com/pizzadelivery/pizza-api/internal/infrastructure/db/relational"
)

// Store bundles the repositories of one backend with its lifecycle hooks.
type Store struct {
	Driver  string
	Users   ports.UserRepository
	Orders  ports.OrderRepository
	Ping    func(ctx context.Context) error
	Migrate func(ctx context.Context) error
	Close   func(ctx context.Context) error
}

// Open connects to the backend selected by STORE_DRIVER.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Store, error) {
	if cfg.Store.Driver == "mongo" {
		return openMongo(ctx, cfg)
	}

	gdb, err := relational.Open(ctx, relational.Config{
		Driver:          cfg.Store.Driver,
		DSN:             cfg.Store.DSN,
		MaxOpenConns:    cfg.Store.MaxOpenConns,
		MaxIdleConns:    cfg.Store.MaxIdleConns,
		ConnMaxLifetime: cfg.Store.ConnMaxLifetime,
	}, log)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}

	return &Store{
		Driver:  cfg.Store.Driver,
		Users:   relational.NewUserRepository(gdb),
		Orders:  relational.NewOrderRepository(gdb),
		Ping:    sqlDB.PingContext,
		Migrate: func(ctx context.Context) error { return relational.Migrate(ctx, gdb) },
		Close:   func(context.Context) error { return relational.Close(gdb) },
	}, nil
}

func openMongo(ctx context.Context, cfg *config.Config) (*Store, error) {
	client, mdb, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, err
	}

	return &Store{
		Driver:  "mongo",
		Users:   mongo.NewUserRepository(mdb),
		Orders:  mongo.NewOrderRepository(mdb),
		Ping:    func(ctx context.Context) error { return client.Ping(ctx, nil) },
		Migrate: func(ctx context.Context) error { return mongo.EnsureIndexes(ctx, mdb) },
		Close:   client.Disconnect,
	}, nil
}

// Revocations is the refresh-token denylist plus its optional health check
// and cleanup.
type Revocations struct {
	Store ports.RevocationStore
	Ping  func(ctx context.Context) error // nil for the in-memory store
	Close func() error
}

// OpenRevocations uses Redis when REDIS_ADDR is set and process memory
// otherwise.
func OpenRevocations(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Revocations, error) {
	if cfg.Redis.Addr == "" {
		log.Warn().Msg("REDIS_ADDR not set, refresh token revocations are kept in memory")
		return &Revocations{Store: memory.NewRevocationStore(cfg.Auth.RefreshTokenTTL), Close: func() error { return nil }}, nil
	}

	client, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, err
	}

	return &Revocations{
		Store: redis.NewRevocationStore(client, cfg.Auth.RefreshTokenTTL),
		Ping:  redis.Ping(client),
		Close: client.Close,
	}, nil
}
