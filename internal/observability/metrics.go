// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Figure Contributors

package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the application's Prometheus collectors. It satisfies
// auth.Metrics and the Redis hook's CommandObserver.
type Metrics struct {
	AuthOperationsTotal   *prometheus.CounterVec
	AuthOperationDuration *prometheus.HistogramVec
	RedisCommandsTotal    *prometheus.CounterVec
	RedisCommandDuration  *prometheus.HistogramVec
	RedisDialErrorsTotal  prometheus.Counter
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AuthOperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "figure_auth_operations_total",
				Help: "Auth service operations by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		AuthOperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "figure_auth_operation_duration_seconds",
				Help: "Auth service operation latency in seconds",
				// Argon2id dominates sign-up and sign-in.
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"operation"},
		),
		RedisCommandsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "figure_redis_commands_total",
				Help: "Redis commands by command and status",
			},
			[]string{"command", "status"},
		),
		RedisCommandDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "figure_redis_command_duration_seconds",
				Help:    "Redis command latency in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"command"},
		),
		RedisDialErrorsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "figure_redis_dial_errors_total",
				Help: "Failed Redis connection attempts",
			},
		),
	}

	reg.MustRegister(
		m.AuthOperationsTotal,
		m.AuthOperationDuration,
		m.RedisCommandsTotal,
		m.RedisCommandDuration,
		m.RedisDialErrorsTotal,
	)
	return m
}

// ObserveOperation records one auth service call.
func (m *Metrics) ObserveOperation(operation, outcome string, duration time.Duration) {
	m.AuthOperationsTotal.WithLabelValues(operation, outcome).Inc()
	m.AuthOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// ObserveCommand records one Redis command or pipeline.
func (m *Metrics) ObserveCommand(command, status string, duration time.Duration) {
	m.RedisCommandsTotal.WithLabelValues(command, status).Inc()
	m.RedisCommandDuration.WithLabelValues(command).Observe(duration.Seconds())
}

// ObserveDialError records a failed Redis connection attempt.
func (m *Metrics) ObserveDialError() {
	m.RedisDialErrorsTotal.Inc()
}
