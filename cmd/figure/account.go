// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Figure Contributors

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/novakovicdavid/figure-backend/internal/auth"
)

// signInOutput is printed after register and login.
type signInOutput struct {
	Profile *auth.ProfileView `json:"profile"`
	Session sessionOutput     `json:"session"`
}

type sessionOutput struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in_seconds,omitempty"`
}

func newSessionOutput(s *auth.Session) sessionOutput {
	return sessionOutput{Token: s.Token, ExpiresIn: int64(s.TTL.Seconds())}
}

type accountFlags struct {
	email         string
	username      string
	passwordStdin bool
}

// newAccountCmd creates the account command group.
func newAccountCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Register accounts and sign in",
	}
	cmd.AddCommand(newAccountRegisterCmd(deps))
	cmd.AddCommand(newAccountLoginCmd(deps))
	return cmd
}

func newAccountRegisterCmd(deps *Deps) *cobra.Command {
	flags := &accountFlags{}
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account with its profile and print a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := readPassword(cmd, deps, flags.passwordStdin, true)
			if err != nil {
				return err
			}
			return withService(cmd, deps, func(ctx context.Context, svc AuthService) error {
				view, session, err := svc.Register(ctx, flags.email, password, flags.username)
				if err != nil {
					return err
				}
				return printJSON(cmd, signInOutput{Profile: view, Session: newSessionOutput(session)})
			})
		},
	}
	cmd.Flags().StringVar(&flags.email, "email", "", "account email")
	cmd.Flags().StringVar(&flags.username, "username", "", "profile username")
	cmd.Flags().BoolVar(&flags.passwordStdin, "password-stdin", false, "read the password from the first line of stdin")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newAccountLoginCmd(deps *Deps) *cobra.Command {
	flags := &accountFlags{}
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password and print a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := readPassword(cmd, deps, flags.passwordStdin, false)
			if err != nil {
				return err
			}
			return withService(cmd, deps, func(ctx context.Context, svc AuthService) error {
				view, session, err := svc.Authenticate(ctx, flags.email, password)
				if err != nil {
					return err
				}
				return printJSON(cmd, signInOutput{Profile: view, Session: newSessionOutput(session)})
			})
		},
	}
	cmd.Flags().StringVar(&flags.email, "email", "", "account email")
	cmd.Flags().BoolVar(&flags.passwordStdin, "password-stdin", false, "read the password from the first line of stdin")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

// withService opens the backends for one command run and hands fn the auth service.
func withService(cmd *cobra.Command, deps *Deps, fn func(context.Context, AuthService) error) error {
	cfg, logger, err := loadConfig(cmd, deps)
	if err != nil {
		return err
	}
	ctx := cmdContext(cmd)

	b, err := deps.BackendsFactory(ctx, cfg, logger, nil)
	if err != nil {
		return err
	}
	defer b.Close()
	return fn(ctx, b.Service())
}

// readPassword takes the password from stdin or prompts for it. New passwords
// are prompted twice.
func readPassword(cmd *cobra.Command, deps *Deps, fromStdin, confirm bool) (string, error) {
	if fromStdin {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return "", oops.Code("CLI_PASSWORD_READ_FAILED").Wrap(err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	password, err := deps.PasswordReader(cmd, "Password: ")
	if err != nil {
		return "", err
	}
	if confirm {
		again, err := deps.PasswordReader(cmd, "Confirm password: ")
		if err != nil {
			return "", err
		}
		if again != password {
			return "", oops.Code("CLI_PASSWORD_MISMATCH").Errorf("passwords do not match")
		}
	}
	return password, nil
}

func readTerminalPassword(cmd *cobra.Command, prompt string) (string, error) {
	fd := int(os.Stdin.Fd()) //nolint:gosec // file descriptors fit in int
	if !term.IsTerminal(fd) {
		return "", oops.Code("CLI_NO_TERMINAL").Errorf("stdin is not a terminal, use --password-stdin")
	}
	cmd.PrintErr(prompt)
	password, err := term.ReadPassword(fd)
	cmd.PrintErrln()
	if err != nil {
		return "", oops.Code("CLI_PASSWORD_READ_FAILED").Wrap(err)
	}
	return string(password), nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return oops.Code("CLI_OUTPUT_FAILED").Wrap(err)
	}
	return nil
}
