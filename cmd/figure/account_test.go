// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Figure Contributors

package main

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novakovicdavid/figure-backend/internal/auth"
	"github.com/novakovicdavid/figure-backend/pkg/errutil"
)

type signInJSON struct {
	Profile struct {
		ID          string  `json:"id"`
		Username    string  `json:"username"`
		DisplayName *string `json:"display_name"`
	} `json:"profile"`
	Session struct {
		Token     string `json:"token"`
		ExpiresIn int64  `json:"expires_in_seconds"`
	} `json:"session"`
}

func decodeSignIn(t *testing.T, stdout string) signInJSON {
	t.Helper()
	var out signInJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &out), "stdout: %s", stdout)
	return out
}

// passwords answers prompts in order.
func passwords(answers ...string) func(*cobra.Command, string) (string, error) {
	return func(*cobra.Command, string) (string, error) {
		if len(answers) == 0 {
			return "", errors.New("unexpected prompt")
		}
		next := answers[0]
		answers = answers[1:]
		return next, nil
	}
}

func register(t *testing.T, b *fakeBackends, email, username string) signInJSON {
	t.Helper()
	deps := &Deps{BackendsFactory: b.factory()}
	res := execute(context.Background(), deps, "correct-horse\n",
		"account", "register", "--email", email, "--username", username, "--password-stdin")
	require.NoError(t, res.err, res.stderr)
	return decodeSignIn(t, res.stdout)
}

func TestAccountRegister_PasswordStdin(t *testing.T) {
	b := newFakeBackends(t)

	out := register(t, b, "Alice@Example.com", "alice")

	assert.Equal(t, "alice", out.Profile.Username)
	assert.Nil(t, out.Profile.DisplayName)
	assert.Len(t, out.Session.Token, 2*auth.SessionTokenBytes)
	assert.Equal(t, int64(auth.DefaultSessionTTL.Seconds()), out.Session.ExpiresIn)
	assert.Equal(t, 1, b.store.AccountCount())
	assert.Equal(t, 1, b.store.ProfileCount())
	assert.Equal(t, 1, b.sessions.Len())
	assert.True(t, b.closed, "backends closed after the run")
}

func TestAccountRegister_Prompt(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		b := newFakeBackends(t)
		deps := &Deps{BackendsFactory: b.factory(), PasswordReader: passwords("correct-horse", "correct-horse")}

		res := execute(context.Background(), deps, "", "account", "register", "--email", "bob@example.com", "--username", "bob")
		require.NoError(t, res.err)
		assert.Equal(t, "bob", decodeSignIn(t, res.stdout).Profile.Username)
	})

	t.Run("mismatch", func(t *testing.T) {
		b := newFakeBackends(t)
		deps := &Deps{BackendsFactory: b.factory(), PasswordReader: passwords("correct-horse", "battery-staple")}

		res := execute(context.Background(), deps, "", "account", "register", "--email", "bob@example.com", "--username", "bob")
		errutil.AssertErrorCode(t, res.err, "CLI_PASSWORD_MISMATCH")
		assert.Equal(t, 0, b.store.AccountCount())
	})
}

func TestAccountRegister_Failures(t *testing.T) {
	b := newFakeBackends(t)
	register(t, b, "alice@example.com", "alice")

	tests := []struct {
		name     string
		email    string
		username string
		target   error
	}{
		{"email in use", "ALICE@example.com", "alice2", auth.ErrEmailAlreadyInUse},
		{"username taken", "other@example.com", "alice", auth.ErrUsernameAlreadyTaken},
		{"invalid email", "not-an-email", "carol", auth.ErrInvalidEmail},
		{"invalid username", "carol@example.com", "c@rol", auth.ErrInvalidUsername},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := &Deps{BackendsFactory: b.factory()}
			res := execute(context.Background(), deps, "correct-horse\n",
				"account", "register", "--email", tt.email, "--username", tt.username, "--password-stdin")
			require.Error(t, res.err)
			assert.ErrorIs(t, res.err, tt.target)
			assert.Empty(t, res.stdout)
		})
	}

	assert.Equal(t, 1, b.store.AccountCount())
	assert.Equal(t, 1, b.store.ProfileCount())
}

func TestAccountRegister_RequiresFlags(t *testing.T) {
	res := execute(context.Background(), &Deps{}, "", "account", "register", "--email", "a@example.com")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "username")
}

func TestAccountLogin(t *testing.T) {
	b := newFakeBackends(t)
	registered := register(t, b, "alice@example.com", "alice")

	t.Run("success", func(t *testing.T) {
		deps := &Deps{BackendsFactory: b.factory(), PasswordReader: passwords("correct-horse")}
		res := execute(context.Background(), deps, "", "account", "login", "--email", "alice@example.com")
		require.NoError(t, res.err)

		out := decodeSignIn(t, res.stdout)
		assert.Equal(t, registered.Profile.ID, out.Profile.ID)
		assert.NotEqual(t, registered.Session.Token, out.Session.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		deps := &Deps{BackendsFactory: b.factory()}
		res := execute(context.Background(), deps, "battery-staple\n", "account", "login", "--email", "alice@example.com", "--password-stdin")
		assert.ErrorIs(t, res.err, auth.ErrWrongPassword)
	})

	t.Run("unknown email", func(t *testing.T) {
		deps := &Deps{BackendsFactory: b.factory()}
		res := execute(context.Background(), deps, "correct-horse\n", "account", "login", "--email", "nobody@example.com", "--password-stdin")
		assert.ErrorIs(t, res.err, auth.ErrUserWithEmailNotFound)
	})
}

func TestReadPassword_StdinWithoutNewline(t *testing.T) {
	b := newFakeBackends(t)
	deps := &Deps{BackendsFactory: b.factory()}

	res := execute(context.Background(), deps, "correct-horse", "account", "register",
		"--email", "dana@example.com", "--username", "dana", "--password-stdin")
	require.NoError(t, res.err)

	deps = &Deps{BackendsFactory: b.factory()}
	res = execute(context.Background(), deps, "correct-horse\r\n", "account", "login", "--email", "dana@example.com", "--password-stdin")
	assert.NoError(t, res.err)
}

func TestAccount_BackendsError(t *testing.T) {
	deps := &Deps{BackendsFactory: openBackends, Getenv: envOf(nil)}
	res := execute(context.Background(), deps, "correct-horse\n", "account", "login", "--email", "a@example.com", "--password-stdin")
	errutil.AssertErrorCode(t, res.err, "CONFIG_INVALID")
}
