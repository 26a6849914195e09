// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Figure Contributors

// Package postgres implements the auth repositories and transaction manager on PostgreSQL.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// querier abstracts statement execution for both *pgxpool.Pool and pgx.Tx, so the
// same repository code runs standalone or inside a shared transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// beginner opens transactions. Satisfied by *pgxpool.Pool.
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
