// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Figure Contributors

package postgres

import (
	"context"
	"errors"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/novakovicdavid/figure-backend/internal/auth"
)

// Transactor implements auth.TransactionManager using PostgreSQL transactions.
type Transactor struct {
	db beginner
}

// NewTransactor creates a Transactor. db is usually a *pgxpool.Pool.
func NewTransactor(db beginner) *Transactor {
	return &Transactor{db: db}
}

// Begin opens a transaction on a pooled connection.
func (t *Transactor) Begin(ctx context.Context) (auth.Tx, error) {
	tx, err := t.db.Begin(ctx)
	if err != nil {
		return nil, oops.Code("TX_BEGIN_FAILED").Wrap(err)
	}
	return &pgTx{
		tx:       tx,
		accounts: NewAccountRepository(tx),
		profiles: NewProfileRepository(tx),
	}, nil
}

type pgTx struct {
	tx       pgx.Tx
	accounts *AccountRepository
	profiles *ProfileRepository

	mu   sync.Mutex
	done bool
}

func (t *pgTx) Accounts() auth.AccountRepository { return t.accounts }
func (t *pgTx) Profiles() auth.ProfileRepository { return t.profiles }

func (t *pgTx) Commit(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return oops.Code("TX_DONE").Wrap(auth.ErrTxDone)
	}
	t.done = true
	if err := t.tx.Commit(ctx); err != nil {
		return oops.Code("TX_COMMIT_FAILED").Wrap(err)
	}
	return nil
}

func (t *pgTx) Rollback(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return nil
	}
	t.done = true
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return oops.Code("TX_ROLLBACK_FAILED").Wrap(err)
	}
	return nil
}

var _ auth.TransactionManager = (*Transactor)(nil)
