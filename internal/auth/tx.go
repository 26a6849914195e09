// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Figure Contributors

package auth

import (
	"context"
	"errors"
)

// ErrTxDone is returned when a transaction is used after Commit or Rollback.
var ErrTxDone = errors.New("transaction already finished")

// Tx is an open unit of work against the relational store. Writes issued through
// the repositories it hands out stay invisible to other connections until Commit.
//
// Callers defer Rollback right after Begin. Rollback after a successful Commit is
// a no-op, so the deferred call only discards work on early returns.
type Tx interface {
	// Accounts returns an account repository bound to this transaction.
	Accounts() AccountRepository

	// Profiles returns a profile repository bound to this transaction.
	Profiles() ProfileRepository

	// Commit applies every write made through the transaction.
	// Returns ErrTxDone if the transaction was already finished.
	Commit(ctx context.Context) error

	// Rollback discards every write made through the transaction.
	Rollback(ctx context.Context) error
}

// TransactionManager opens transactions.
type TransactionManager interface {
	Begin(ctx context.Context) (Tx, error)
}
