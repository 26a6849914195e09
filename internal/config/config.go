// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Figure Contributors

// Package config loads figure's configuration from an optional YAML file,
// the environment and command-line flags.
package config

import (
	"runtime"
	"time"

	"github.com/samber/oops"

	"github.com/novakovicdavid/figure-backend/internal/logging"
)

// Log formats.
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Config is the complete runtime configuration.
type Config struct {
	DatabaseURL string        `koanf:"database_url" json:"database_url,omitempty" jsonschema:"description=PostgreSQL connection URL"`
	RedisURL    string        `koanf:"redis_url" json:"redis_url,omitempty" jsonschema:"description=Redis connection URL"`
	Log         LogConfig     `koanf:"log" json:"log,omitempty"`
	Session     SessionConfig `koanf:"session" json:"session,omitempty"`
	Hashing     HashingConfig `koanf:"hashing" json:"hashing,omitempty"`
	Connect     ConnectConfig `koanf:"connect" json:"connect,omitempty"`
	Ops         OpsConfig     `koanf:"ops" json:"ops,omitempty"`
}

// LogConfig selects the log output.
type LogConfig struct {
	Format string `koanf:"format" json:"format,omitempty" jsonschema:"enum=json,enum=text,default=json"`
	Level  string `koanf:"level" json:"level,omitempty" jsonschema:"enum=debug,enum=info,enum=warn,enum=error,default=info"`
}

// SessionConfig controls issued sessions.
type SessionConfig struct {
	TTL       time.Duration `koanf:"ttl" json:"ttl,omitempty" jsonschema:"type=string,description=Session lifetime as a Go duration,default=24h"`
	KeyPrefix string        `koanf:"key_prefix" json:"key_prefix,omitempty" jsonschema:"description=Prefix for Redis session keys"`
}

// HashingConfig sizes the password hashing pool.
type HashingConfig struct {
	Workers int `koanf:"workers" json:"workers,omitempty" jsonschema:"minimum=0,description=Concurrent hash jobs; 0 means GOMAXPROCS"`
}

// ConnectConfig is the startup retry policy for Postgres and Redis.
type ConnectConfig struct {
	Attempts uint64        `koanf:"attempts" json:"attempts,omitempty" jsonschema:"minimum=1,default=6"`
	Backoff  time.Duration `koanf:"backoff" json:"backoff,omitempty" jsonschema:"type=string,description=Initial retry delay as a Go duration,default=500ms"`
}

// OpsConfig configures the metrics and health endpoint of figure serve.
type OpsConfig struct {
	MetricsAddr string `koanf:"metrics_addr" json:"metrics_addr,omitempty" jsonschema:"default=127.0.0.1:9100"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Log: LogConfig{
			Format: LogFormatJSON,
			Level:  "info",
		},
		Session: SessionConfig{
			TTL: 24 * time.Hour,
		},
		Hashing: HashingConfig{
			Workers: runtime.GOMAXPROCS(0),
		},
		Connect: ConnectConfig{
			Attempts: 6,
			Backoff:  500 * time.Millisecond,
		},
		Ops: OpsConfig{
			MetricsAddr: "127.0.0.1:9100",
		},
	}
}

// Validate checks the settings every command relies on. URLs are checked by
// RequireDatabase and RequireRedis, since not every command needs both.
func (c *Config) Validate() error {
	if c.Log.Format != LogFormatJSON && c.Log.Format != LogFormatText {
		return oops.Code("CONFIG_INVALID").
			With("key", "log.format").
			Errorf("log format must be 'json' or 'text', got %q", c.Log.Format)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Session.TTL <= 0 {
		return oops.Code("CONFIG_INVALID").
			With("key", "session.ttl").
			Errorf("session ttl must be positive, got %s", c.Session.TTL)
	}
	if c.Hashing.Workers < 0 {
		return oops.Code("CONFIG_INVALID").
			With("key", "hashing.workers").
			Errorf("hashing workers must not be negative, got %d", c.Hashing.Workers)
	}
	if c.Connect.Attempts == 0 {
		return oops.Code("CONFIG_INVALID").
			With("key", "connect.attempts").
			Errorf("connect attempts must be at least 1")
	}
	if c.Connect.Backoff <= 0 {
		return oops.Code("CONFIG_INVALID").
			With("key", "connect.backoff").
			Errorf("connect backoff must be positive, got %s", c.Connect.Backoff)
	}
	return nil
}

// RequireDatabase fails when no database URL is configured.
func (c *Config) RequireDatabase() error {
	if c.DatabaseURL == "" {
		return oops.Code("CONFIG_INVALID").
			With("key", "database_url").
			Errorf("database url is required (--database-url or DATABASE_URL)")
	}
	return nil
}

// RequireRedis fails when no Redis URL is configured.
func (c *Config) RequireRedis() error {
	if c.RedisURL == "" {
		return oops.Code("CONFIG_INVALID").
			With("key", "redis_url").
			Errorf("redis url is required (--redis-url or REDIS_URL)")
	}
	return nil
}
