package main

import (
	"context"
	"errors"
	"sort"

	"github.com/rs/zerolog"

	"github.com/pizzadelivery/pizza-api/internal/core/domain"
	"github.com/pizzadelivery/pizza-api/internal/core/service"
	"github.com/pizzadelivery/pizza-api/internal/infrastructure/config"
	"github.com/pizzadelivery/pizza-api/internal/infrastructure/db"
	"github.com/pizzadelivery/pizza-api/pkg/logger"
)

// app holds everything the commands share.
type app struct {
	cfg         *config.Config
	log         zerolog.Logger
	store       *db.Store
	revocations *db.Revocations
	tokens      *service.TokenService
	hasher      *service.BcryptHasher
}

// boot loads configuration, initialises logging and opens the stores.
func boot(ctx context.Context) (*app, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "pizza-api",
	})

	store, err := db.Open(ctx, cfg, logger.Component(logger.ComponentStore))
	if err != nil {
		return nil, err
	}

	revocations, err := db.OpenRevocations(ctx, cfg, logger.Component(logger.ComponentRevocations))
	if err != nil {
		_ = store.Close(ctx)
		return nil, err
	}

	tokens, err := service.NewTokenService(tokenConfig(cfg), service.WithRevocationStore(revocations.Store))
	if err != nil {
		_ = revocations.Close()
		_ = store.Close(ctx)
		return nil, err
	}

	return &app{
		cfg:         cfg,
		log:         log,
		store:       store,
		revocations: revocations,
		tokens:      tokens,
		hasher:      service.NewBcryptHasher(cfg.Auth.BcryptCost),
	}, nil
}

// tokenConfig builds the signing key set. Previous keys are sorted by id so
// the order does not depend on map iteration.
func tokenConfig(cfg *config.Config) service.TokenConfig {
	previous := make([]service.SigningKey, 0, len(cfg.Auth.JWTPreviousKeys))
	for kid, secret := range cfg.Auth.JWTPreviousKeys {
		previous = append(previous, service.SigningKey{ID: kid, Secret: []byte(secret)})
	}
	sort.Slice(previous, func(i, j int) bool { return previous[i].ID < previous[j].ID })

	return service.TokenConfig{
		Signing:    service.SigningKey{ID: cfg.Auth.JWTKeyID, Secret: []byte(cfg.Auth.JWTSecret)},
		Previous:   previous,
		AccessTTL:  cfg.Auth.AccessTokenTTL,
		RefreshTTL: cfg.Auth.RefreshTokenTTL,
	}
}

// authService builds the signup and login service. allowRoleFlags overrides
// the configured policy for operator commands.
func (a *app) authService(allowRoleFlags bool) (*service.AuthService, error) {
	return service.NewAuthService(a.store.Users, a.hasher, a.tokens, service.AuthOptions{
		Defaults: domain.UserDefaults{
			IsStaff:  a.cfg.Signup.DefaultStaff,
			IsActive: a.cfg.Signup.DefaultActive,
		},
		AllowRoleFlags: allowRoleFlags,
		EnforceActive:  a.cfg.Auth.EnforceActive,
	}, logger.Component(logger.ComponentAuth))
}

func (a *app) close(ctx context.Context) error {
	return errors.Join(a.revocations.Close(), a.store.Close(ctx))
}
