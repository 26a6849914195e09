// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Figure Contributors

// Package redis implements the auth session store on Redis.
package redis

import (
	goredis "github.com/redis/go-redis/v9"
	"github.com/samber/oops"
)

// NewClient creates a go-redis client from a URL (e.g. "redis://localhost:6379/0").
// A non-nil observer receives per-command metrics.
func NewClient(redisURL string, observer CommandObserver) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, oops.Code("REDIS_URL_INVALID").Wrap(err)
	}

	rdb := goredis.NewClient(opts)
	if observer != nil {
		rdb.AddHook(NewMetricsHook(observer))
	}
	return rdb, nil
}
