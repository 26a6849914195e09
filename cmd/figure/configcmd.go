// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Figure Contributors

package main

import (
	"fmt"
	"os"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/novakovicdavid/figure-backend/internal/config"
	"github.com/novakovicdavid/figure-backend/internal/xdg"
)

// newConfigCmd creates the config command group.
func newConfigCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Validate configuration files",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "check [file]",
		Short: "Validate a config file against the schema and the resolved settings",
		Long: `Validate a YAML config file against the config JSON Schema, then resolve it
together with the environment and flags. Defaults to the --config file, then
$XDG_CONFIG_HOME/figure/config.yaml.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cmd.Flags().GetString("config")
			if err != nil {
				return err //nolint:wrapcheck // flag is registered on root
			}
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				path = xdg.ConfigFile(deps.Getenv)
			}
			if path == "" {
				return oops.Code("CLI_INVALID_ARGS").Errorf("no config file given")
			}

			data, err := os.ReadFile(path) //nolint:gosec // path is operator supplied
			if err != nil {
				return oops.Code("CONFIG_READ_FAILED").With("path", path).Wrap(err)
			}
			if err := config.ValidateYAML(data); err != nil {
				return err
			}
			if _, err := config.Load(path, cmd.Flags(), deps.Getenv); err != nil {
				return err
			}
			cmd.Printf("%s: ok\n", path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "schema",
		Short: "Print the config JSON Schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			schema, err := config.GenerateSchema()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(schema))
			return nil
		},
	})

	return cmd
}
