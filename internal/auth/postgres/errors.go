// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Figure Contributors

package postgres

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Names of the unique constraints declared in the schema migrations.
const (
	constraintAccountEmail    = "account_email_key"
	constraintProfileUsername = "profile_username_key"
)

// isUniqueViolation reports whether err is a unique violation on the named constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgerrcode.UniqueViolation && pgErr.ConstraintName == constraint
}
