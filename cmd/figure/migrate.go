// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Figure Contributors

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/novakovicdavid/figure-backend/internal/store"
)

// newMigrateCmd creates the migrate command. Without a subcommand it behaves
// like migrate up.
func newMigrateCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
		Long:  `Apply, revert or inspect the embedded PostgreSQL migrations.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrateUp(cmd, deps)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrateUp(cmd, deps)
		},
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Revert applied migrations",
		Long:  `Revert the last --steps migrations, or every migration when --steps is 0.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrateDown(cmd, deps, steps)
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to revert (0 = all)")
	cmd.AddCommand(down)

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrateStatus(cmd, deps)
		},
	})

	return cmd
}

// withMigrator opens a migrator for the configured database and closes it
// once fn returns.
func withMigrator(cmd *cobra.Command, deps *Deps, fn func(Migrator) error) error {
	cfg, logger, err := loadConfig(cmd, deps)
	if err != nil {
		return err
	}
	if err := cfg.RequireDatabase(); err != nil {
		return err
	}

	m, err := deps.MigratorFactory(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := m.Close(); closeErr != nil {
			logger.Warn("failed to close migrator", "error", closeErr)
		}
	}()
	return fn(m)
}

func runMigrateUp(cmd *cobra.Command, deps *Deps) error {
	return withMigrator(cmd, deps, func(m Migrator) error {
		cmd.Println("Running migrations...")
		if err := m.Up(); err != nil {
			return oops.Code("MIGRATION_FAILED").With("operation", "migrate up").Wrap(err)
		}
		cmd.Println("Migrations completed successfully")
		return nil
	})
}

func runMigrateDown(cmd *cobra.Command, deps *Deps, steps int) error {
	if steps < 0 {
		return oops.Code("CLI_INVALID_ARGS").Errorf("--steps must not be negative, got %d", steps)
	}
	return withMigrator(cmd, deps, func(m Migrator) error {
		if steps == 0 {
			cmd.Println("Reverting all migrations...")
		} else {
			cmd.Printf("Reverting %d migration(s)...\n", steps)
		}
		if err := m.Down(steps); err != nil {
			return oops.Code("MIGRATION_FAILED").With("operation", "migrate down").With("steps", steps).Wrap(err)
		}
		cmd.Println("Migrations reverted successfully")
		return nil
	})
}

func runMigrateStatus(cmd *cobra.Command, deps *Deps) error {
	return withMigrator(cmd, deps, func(m Migrator) error {
		st, err := m.Status()
		if err != nil {
			return err
		}
		out, err := formatMigrationStatus(st)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	})
}

// formatMigrationStatus renders one row per embedded migration.
func formatMigrationStatus(st *store.Status) (string, error) {
	var buf []byte
	w := tabwriter.NewWriter((*byteWriter)(&buf), 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintf(w, "Current version: %d", st.Version)
	if st.Dirty {
		_, _ = fmt.Fprint(w, " (dirty)")
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "VERSION\tNAME\tSTATE")

	rows := []struct {
		versions []uint
		state    string
	}{
		{st.Applied, "applied"},
		{st.Pending, "pending"},
	}
	for _, row := range rows {
		for _, v := range row.versions {
			name, err := store.MigrationName(v)
			if err != nil {
				return "", err
			}
			_, _ = fmt.Fprintf(w, "%d\t%s\t%s\n", v, name, row.state)
		}
	}

	_ = w.Flush()
	return string(buf), nil
}

// byteWriter adapts a byte slice pointer to io.Writer.
type byteWriter []byte

func (b *byteWriter) Write(p []byte) (int, error) {
	*b = append(*b, p...)
	return len(p), nil
}
