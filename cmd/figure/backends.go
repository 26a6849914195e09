// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Figure Contributors

package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/samber/oops"

	"github.com/novakovicdavid/figure-backend/internal/auth"
	"github.com/novakovicdavid/figure-backend/internal/auth/postgres"
	"github.com/novakovicdavid/figure-backend/internal/auth/redis"
	"github.com/novakovicdavid/figure-backend/internal/config"
	"github.com/novakovicdavid/figure-backend/internal/observability"
	"github.com/novakovicdavid/figure-backend/internal/store"
)

type backends struct {
	pool    *pgxpool.Pool
	rdb     *goredis.Client
	service *auth.Service
}

// openBackends connects to Postgres and Redis, retrying per cfg.Connect, and
// wires the auth service onto them.
func openBackends(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) (Backends, error) {
	if err := cfg.RequireDatabase(); err != nil {
		return nil, err
	}
	if err := cfg.RequireRedis(); err != nil {
		return nil, err
	}
	policy := store.ConnectPolicy{Attempts: cfg.Connect.Attempts, Backoff: cfg.Connect.Backoff}

	pool, err := store.OpenPool(ctx, cfg.DatabaseURL, policy, logger)
	if err != nil {
		return nil, err
	}

	var observer redis.CommandObserver
	if metrics != nil {
		observer = metrics
	}
	rdb, err := redis.NewClient(cfg.RedisURL, observer)
	if err != nil {
		pool.Close()
		return nil, err
	}
	if err := store.WaitReady(ctx, policy, logger, "redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}); err != nil {
		_ = rdb.Close()
		pool.Close()
		return nil, err
	}

	opts := []auth.Option{
		auth.WithLogger(logger),
		auth.WithSessionTTL(cfg.Session.TTL),
		auth.WithBlockingPool(auth.NewBlockingPool(cfg.Hashing.Workers)),
	}
	if metrics != nil {
		opts = append(opts, auth.WithMetrics(metrics))
	}
	service, err := auth.NewService(
		postgres.NewAccountRepository(pool),
		postgres.NewProfileRepository(pool),
		postgres.NewTransactor(pool),
		redis.NewSessionStore(rdb, redis.WithKeyPrefix(cfg.Session.KeyPrefix)),
		auth.NewArgon2idHasher(),
		opts...,
	)
	if err != nil {
		_ = rdb.Close()
		pool.Close()
		return nil, err
	}

	return &backends{pool: pool, rdb: rdb, service: service}, nil
}

func (b *backends) Service() AuthService { return b.service }

func (b *backends) Ping(ctx context.Context) error {
	var errs []error
	if err := b.pool.Ping(ctx); err != nil {
		errs = append(errs, oops.Code("POSTGRES_UNAVAILABLE").Wrap(err))
	}
	if err := b.rdb.Ping(ctx).Err(); err != nil {
		errs = append(errs, oops.Code("REDIS_UNAVAILABLE").Wrap(err))
	}
	return errors.Join(errs...)
}

func (b *backends) Close() {
	if err := b.rdb.Close(); err != nil {
		slog.Debug("error closing redis client", "error", err)
	}
	b.pool.Close()
}

// newProbes builds lazy clients that are pinged once each, without retry.
func newProbes(cfg *config.Config) ([]Probe, func(), error) {
	if err := cfg.RequireDatabase(); err != nil {
		return nil, nil, err
	}
	if err := cfg.RequireRedis(); err != nil {
		return nil, nil, err
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, nil, oops.Code("DB_CONFIG_INVALID").Wrap(err)
	}
	rdb, err := redis.NewClient(cfg.RedisURL, nil)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}

	probes := []Probe{
		{Name: "postgres", Check: pool.Ping},
		{Name: "redis", Check: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
	}
	cleanup := func() {
		_ = rdb.Close()
		pool.Close()
	}
	return probes, cleanup, nil
}
