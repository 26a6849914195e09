// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Figure Contributors

package redis

import (
	"context"
	"errors"
	"net"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// CommandObserver receives Redis command metrics. status is "success" or "error";
// a nil reply counts as success.
type CommandObserver interface {
	ObserveCommand(command, status string, duration time.Duration)
	ObserveDialError()
}

// MetricsHook implements goredis.Hook and reports every command to a CommandObserver.
type MetricsHook struct {
	observer CommandObserver
}

var _ goredis.Hook = (*MetricsHook)(nil)

// NewMetricsHook creates a MetricsHook.
func NewMetricsHook(observer CommandObserver) *MetricsHook {
	return &MetricsHook{observer: observer}
}

// DialHook counts failed connection attempts.
func (h *MetricsHook) DialHook(next goredis.DialHook) goredis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := next(ctx, network, addr)
		if err != nil {
			h.observer.ObserveDialError()
		}
		return conn, err
	}
}

// ProcessHook times a single command.
func (h *MetricsHook) ProcessHook(next goredis.ProcessHook) goredis.ProcessHook {
	return func(ctx context.Context, cmd goredis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		h.observer.ObserveCommand(cmd.Name(), commandStatus(err), time.Since(start))
		return err
	}
}

// ProcessPipelineHook times a pipeline as one "pipeline" command.
func (h *MetricsHook) ProcessPipelineHook(next goredis.ProcessPipelineHook) goredis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []goredis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		h.observer.ObserveCommand("pipeline", commandStatus(err), time.Since(start))
		return err
	}
}

func commandStatus(err error) string {
	if err != nil && !errors.Is(err, goredis.Nil) {
		return "error"
	}
	return "success"
}
