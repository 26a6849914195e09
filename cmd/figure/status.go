// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Figure Contributors

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

const probeTimeout = 3 * time.Second

// ComponentStatus is the outcome of one probe.
type ComponentStatus struct {
	Component string `json:"component"`
	Healthy   bool   `json:"healthy"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

type statusConfig struct {
	jsonOutput bool
}

// newStatusCmd creates the status subcommand with all flags configured.
func newStatusCmd(deps *Deps) *cobra.Command {
	cfg := &statusConfig{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check that Postgres and Redis answer",
		Long:  `Ping each backing service once and report its health. Exits non-zero when any is down.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, deps, cfg)
		},
	}

	cmd.Flags().BoolVar(&cfg.jsonOutput, "json", false, "output status as JSON")

	return cmd
}

func runStatus(cmd *cobra.Command, deps *Deps, sc *statusConfig) error {
	cfg, _, err := loadConfig(cmd, deps)
	if err != nil {
		return err
	}
	probes, cleanup, err := deps.ProbesFactory(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmdContext(cmd)
	statuses := checkAll(ctx, probes)

	var output string
	if sc.jsonOutput {
		output, err = formatStatusJSON(statuses)
		if err != nil {
			return err
		}
	} else {
		output = formatStatusTable(statuses)
	}
	_, _ = fmt.Fprint(cmd.OutOrStdout(), output)

	var down []string
	for _, s := range statuses {
		if !s.Healthy {
			down = append(down, s.Component)
		}
	}
	if len(down) > 0 {
		return oops.Code("STATUS_UNHEALTHY").With("components", down).Errorf("unhealthy: %v", down)
	}
	return nil
}

// checkAll runs every probe in order, each under its own timeout.
func checkAll(ctx context.Context, probes []Probe) []ComponentStatus {
	statuses := make([]ComponentStatus, 0, len(probes))
	for _, p := range probes {
		pctx, cancel := context.WithTimeout(ctx, probeTimeout)
		start := time.Now()
		err := p.Check(pctx)
		cancel()

		s := ComponentStatus{
			Component: p.Name,
			Healthy:   err == nil,
			LatencyMS: time.Since(start).Milliseconds(),
		}
		if err != nil {
			s.Error = err.Error()
		}
		statuses = append(statuses, s)
	}
	return statuses
}

// formatStatusTable formats the status as a human-readable table.
func formatStatusTable(statuses []ComponentStatus) string {
	var buf []byte
	w := tabwriter.NewWriter((*byteWriter)(&buf), 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(w, "COMPONENT\tSTATUS\tLATENCY\tERROR")
	for _, s := range statuses {
		state, reason := "up", "-"
		if !s.Healthy {
			state, reason = "down", s.Error
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%dms\t%s\n", s.Component, state, s.LatencyMS, reason)
	}

	_ = w.Flush()
	return string(buf)
}

// formatStatusJSON formats the status as JSON.
func formatStatusJSON(statuses []ComponentStatus) (string, error) {
	data, err := json.MarshalIndent(statuses, "", "  ")
	if err != nil {
		return "", oops.Code("CLI_OUTPUT_FAILED").Wrap(err)
	}
	return string(data) + "\n", nil
}
