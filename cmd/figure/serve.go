// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Figure Contributors

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/novakovicdavid/figure-backend/internal/config"
)

const shutdownTimeout = 5 * time.Second

// newServeCmd creates the serve command: the long-running process exposing
// metrics and health probes for the backing services.
func newServeCmd(deps *Deps) *cobra.Command {
	def := config.Default()
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the metrics and health endpoint",
		Long: `Connect to Postgres and Redis and serve /metrics, /healthz/liveness and
/healthz/readiness until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, deps)
		},
	}
	cmd.Flags().String("metrics-addr", def.Ops.MetricsAddr, "metrics/health HTTP address")
	cmd.Flags().Duration("session-ttl", def.Session.TTL, "lifetime of issued sessions")
	cmd.Flags().Int("hashing-workers", def.Hashing.Workers, "concurrent password hash jobs (0 = GOMAXPROCS)")
	return cmd
}

func runServe(cmd *cobra.Command, deps *Deps) error {
	cfg, logger, err := loadConfig(cmd, deps)
	if err != nil {
		return err
	}
	if cfg.Ops.MetricsAddr == "" {
		return oops.Code("CONFIG_INVALID").With("key", "ops.metrics_addr").Errorf("metrics address is required")
	}

	ctx, cancel := context.WithCancel(cmdContext(cmd))
	defer cancel()

	// The readiness check runs only after the server starts, once b is set.
	var b Backends
	server := deps.OpsServerFactory(cfg.Ops.MetricsAddr, logger, func(ctx context.Context) error {
		return b.Ping(ctx)
	})

	b, err = deps.BackendsFactory(ctx, cfg, logger, server.Metrics())
	if err != nil {
		return err
	}
	defer b.Close()

	errCh, err := server.Start()
	if err != nil {
		return err
	}
	logger.Info("ops server started", "addr", server.Addr())
	cmd.Println("figure serving on", server.Addr())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	var serveErr error
	select {
	case sig := <-sigChan:
		logger.Info("received shutdown signal", "signal", sig.String())
	case err, ok := <-errCh:
		if ok && err != nil {
			serveErr = oops.Code("OPS_SERVER_FAILED").Wrap(err)
		}
	case <-ctx.Done():
		logger.Info("context cancelled, shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Stop(shutdownCtx); err != nil {
		logger.Warn("error stopping ops server", "error", err)
		serveErr = errors.Join(serveErr, err)
	}
	logger.Info("shutdown complete")
	return serveErr
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
