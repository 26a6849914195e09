// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Figure Contributors

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/novakovicdavid/figure-backend/internal/auth"
	"github.com/novakovicdavid/figure-backend/internal/config"
	"github.com/novakovicdavid/figure-backend/internal/observability"
	"github.com/novakovicdavid/figure-backend/internal/store"
)

// Deps contains injectable dependencies for the figure commands.
// All fields with nil values will use their default implementations.
type Deps struct {
	// Getenv reads environment variables.
	// Default: os.Getenv
	Getenv func(string) string

	// BackendsFactory connects to Postgres and Redis and builds the auth
	// service on top of them. metrics may be nil.
	// Default: openBackends
	BackendsFactory func(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) (Backends, error)

	// ProbesFactory creates single-attempt health checks for status.
	// Default: newProbes
	ProbesFactory func(cfg *config.Config) ([]Probe, func(), error)

	// MigratorFactory creates a schema migrator.
	// Default: store.NewMigrator
	MigratorFactory func(databaseURL string) (Migrator, error)

	// OpsServerFactory creates the metrics and health server.
	// Default: observability.NewServer
	OpsServerFactory func(addr string, logger *slog.Logger, checker observability.ReadinessChecker) OpsServer

	// PasswordReader prompts for a password without echo.
	// Default: readTerminalPassword
	PasswordReader func(cmd *cobra.Command, prompt string) (string, error)
}

// AuthService is the part of auth.Service the commands drive.
type AuthService interface {
	Register(ctx context.Context, email, password, username string) (*auth.ProfileView, *auth.Session, error)
	Authenticate(ctx context.Context, email, password string) (*auth.ProfileView, *auth.Session, error)
	ResumeSession(ctx context.Context, token string) (*auth.ProfileView, *auth.Session, error)
	Logout(ctx context.Context, token string) error
}

// Backends holds the open connections of a command run.
type Backends interface {
	Service() AuthService
	// Ping checks Postgres and Redis once.
	Ping(ctx context.Context) error
	Close()
}

// Probe checks a single backing service.
type Probe struct {
	Name  string
	Check func(ctx context.Context) error
}

// Migrator wraps the methods used by migrate from store.Migrator.
type Migrator interface {
	Up() error
	Down(steps int) error
	Status() (*store.Status, error)
	Close() error
}

// OpsServer wraps the methods used by serve from observability.Server.
type OpsServer interface {
	Start() (<-chan error, error)
	Stop(ctx context.Context) error
	Addr() string
	Metrics() *observability.Metrics
}

func (d *Deps) applyDefaults() {
	if d.Getenv == nil {
		d.Getenv = os.Getenv
	}
	if d.BackendsFactory == nil {
		d.BackendsFactory = openBackends
	}
	if d.ProbesFactory == nil {
		d.ProbesFactory = newProbes
	}
	if d.MigratorFactory == nil {
		d.MigratorFactory = func(databaseURL string) (Migrator, error) {
			m, err := store.NewMigrator(databaseURL)
			if err != nil {
				return nil, err
			}
			return m, nil
		}
	}
	if d.OpsServerFactory == nil {
		d.OpsServerFactory = func(addr string, logger *slog.Logger, checker observability.ReadinessChecker) OpsServer {
			return observability.NewServer(addr, logger, checker)
		}
	}
	if d.PasswordReader == nil {
		d.PasswordReader = readTerminalPassword
	}
}
