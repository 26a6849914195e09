// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Figure Contributors

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/novakovicdavid/figure-backend/internal/config"
	"github.com/novakovicdavid/figure-backend/internal/logging"
)

const serviceName = "figure"

// NewRootCmd creates the root command with all subcommands.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&Deps{})
}

func newRootCmd(deps *Deps) *cobra.Command {
	deps.applyDefaults()
	def := config.Default()

	cmd := &cobra.Command{
		Use:   "figure",
		Short: "Figure account and session backend",
		Long: `figure manages the accounts, profiles and sessions behind the Figure
platform: it applies the database schema, registers and signs in accounts,
and inspects or revokes sessions.`,
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.String("config", "", "path to a YAML config file")
	pf.String("database-url", "", "PostgreSQL URL (overrides DATABASE_URL)")
	pf.String("redis-url", "", "Redis URL (overrides REDIS_URL)")
	pf.String("log-format", def.Log.Format, "log format (json or text)")
	pf.String("log-level", def.Log.Level, "log level (debug, info, warn, error)")

	cmd.AddCommand(newMigrateCmd(deps))
	cmd.AddCommand(newAccountCmd(deps))
	cmd.AddCommand(newSessionCmd(deps))
	cmd.AddCommand(newStatusCmd(deps))
	cmd.AddCommand(newServeCmd(deps))
	cmd.AddCommand(newConfigCmd(deps))

	return cmd
}

// loadConfig resolves the configuration from the --config file, the
// environment and the command's flags, and builds the logger it asks for.
// Logs go to the command's stderr.
func loadConfig(cmd *cobra.Command, deps *Deps) (*config.Config, *slog.Logger, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, err //nolint:wrapcheck // flag is registered on root
	}
	cfg, err := config.Load(path, cmd.Flags(), deps.Getenv)
	if err != nil {
		return nil, nil, err
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	logger := logging.New(logging.Options{
		Service: serviceName,
		Version: version,
		Format:  cfg.Log.Format,
		Level:   level,
		Writer:  cmd.ErrOrStderr(),
	})
	return cfg, logger, nil
}
