// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Figure Contributors

package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
)

// ConnectPolicy bounds how long startup waits for a backing service.
type ConnectPolicy struct {
	Attempts uint64
	Backoff  time.Duration
}

// DefaultConnectPolicy retries for roughly half a minute.
var DefaultConnectPolicy = ConnectPolicy{Attempts: 6, Backoff: 500 * time.Millisecond}

// WaitReady calls ping until it succeeds, backing off exponentially between
// attempts. It gives up after p.Attempts retries or when ctx ends.
func WaitReady(ctx context.Context, p ConnectPolicy, logger *slog.Logger, target string, ping func(context.Context) error) error {
	if p.Backoff <= 0 {
		p.Backoff = DefaultConnectPolicy.Backoff
	}
	backoff := retry.WithMaxRetries(p.Attempts, retry.NewExponential(p.Backoff))

	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := ping(ctx); err != nil {
			logger.WarnContext(ctx, "backing service not ready",
				"target", target,
				"attempt", attempt,
				"error", err,
			)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return oops.Code("CONNECT_FAILED").
			With("target", target).
			With("attempts", attempt).
			Wrap(err)
	}
	return nil
}

// OpenPool creates a pgx pool and waits until the database answers a ping.
func OpenPool(ctx context.Context, databaseURL string, p ConnectPolicy, logger *slog.Logger) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, oops.Code("DB_CONFIG_INVALID").Wrap(err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, oops.Code("DB_POOL_FAILED").Wrap(err)
	}
	if err := WaitReady(ctx, p, logger, "postgres", pool.Ping); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
