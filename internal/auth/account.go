// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Figure Contributors

package auth

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
)

// RoleUser is the role assigned to every self-registered account.
const RoleUser = "user"

// Account is an authentication identity.
type Account struct {
	ID           ulid.ULID
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// AccountRepository manages account persistence.
type AccountRepository interface {
	// Create stores a new account and returns it with its generated ID.
	// Returns ErrEmailAlreadyInUse if the email is taken.
	Create(ctx context.Context, account *Account) (*Account, error)

	// FindByID retrieves an account by ID.
	FindByID(ctx context.Context, id ulid.ULID) (*Account, error)

	// FindByEmail retrieves an account by email (case-insensitive).
	// Returns ErrResourceNotFound if no account has the given email.
	FindByEmail(ctx context.Context, email string) (*Account, error)

	// UpdatePasswordHash replaces the stored hash for an account.
	UpdatePasswordHash(ctx context.Context, id ulid.ULID, passwordHash string) error

	// Count returns the number of stored accounts.
	Count(ctx context.Context) (int64, error)
}
