// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Figure Contributors

package authtest

import (
	"context"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novakovicdavid/figure-backend/internal/auth"
)

func TestStore_RollbackReleasesReservations(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	_, err = tx.Accounts().Create(ctx, &auth.Account{Email: "a@example.com"})
	require.NoError(t, err)

	other, err := s.Begin(ctx)
	require.NoError(t, err)
	_, err = other.Accounts().Create(ctx, &auth.Account{Email: "a@example.com"})
	require.ErrorIs(t, err, auth.ErrEmailAlreadyInUse, "open transaction holds the email")
	require.NoError(t, other.Rollback(ctx))

	require.NoError(t, tx.Rollback(ctx))
	assert.Equal(t, 0, s.AccountCount())

	_, err = s.Accounts().Create(ctx, &auth.Account{Email: "a@example.com"})
	require.NoError(t, err)
}

func TestStore_CommitAppliesStagedRows(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	a, err := tx.Accounts().Create(ctx, &auth.Account{Email: "a@example.com"})
	require.NoError(t, err)
	_, err = tx.Profiles().Create(ctx, &auth.Profile{Username: "abc", AccountID: a.ID})
	require.NoError(t, err)
	assert.Equal(t, 0, s.ProfileCount(), "staged rows are invisible before commit")

	require.NoError(t, tx.Commit(ctx))
	assert.Equal(t, 1, s.AccountCount())
	assert.Equal(t, 1, s.ProfileCount())
	assert.ErrorIs(t, tx.Commit(ctx), auth.ErrTxDone)
	assert.NoError(t, tx.Rollback(ctx))
}

func TestStore_ProfileNeedsAccount(t *testing.T) {
	_, err := NewStore().Profiles().Create(context.Background(), &auth.Profile{Username: "abc", AccountID: ulid.Make()})
	require.Error(t, err)
	assert.Equal(t, auth.KindInternal, auth.KindOf(err))
}

func TestSessionStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewSessionStore()
	s.SetClock(func() time.Time { return now })

	created, err := s.Create(ctx, ulid.Make(), ulid.Make(), time.Minute)
	require.NoError(t, err)

	now = now.Add(30 * time.Second)
	found, err := s.FindByID(ctx, created.Token, 0)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, found.TTL)

	now = now.Add(31 * time.Second)
	_, err = s.FindByID(ctx, created.Token, 0)
	assert.ErrorIs(t, err, auth.ErrResourceNotFound)
}
