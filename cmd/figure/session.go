// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Figure Contributors

package main

import (
	"context"

	"github.com/spf13/cobra"
)

// newSessionCmd creates the session command group.
func newSessionCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect and revoke sessions",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show <token>",
		Short: "Show the profile a session belongs to and extend its lifetime",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, deps, func(ctx context.Context, svc AuthService) error {
				view, session, err := svc.ResumeSession(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd, signInOutput{Profile: view, Session: newSessionOutput(session)})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "revoke <token>",
		Short: "Revoke a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, deps, func(ctx context.Context, svc AuthService) error {
				if err := svc.Logout(ctx, args[0]); err != nil {
					return err
				}
				cmd.Println("Session revoked")
				return nil
			})
		},
	})

	return cmd
}
