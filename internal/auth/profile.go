// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Figure Contributors

package auth

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
)

// Profile is the public identity bound to exactly one Account.
type Profile struct {
	ID             ulid.ULID
	Username       string
	DisplayName    *string
	Bio            *string
	Banner         *string
	ProfilePicture *string
	AccountID      ulid.ULID
	CreatedAt      time.Time
}

// ProfileView is the part of a Profile handed back after sign-up or sign-in.
type ProfileView struct {
	ID          ulid.ULID `json:"id"`
	Username    string    `json:"username"`
	DisplayName *string   `json:"display_name"`
}

// View projects the profile to its public view.
func (p *Profile) View() *ProfileView {
	return &ProfileView{
		ID:          p.ID,
		Username:    p.Username,
		DisplayName: p.DisplayName,
	}
}

// ProfileRepository manages profile persistence.
type ProfileRepository interface {
	// Create stores a new profile and returns it with its generated ID.
	// Returns ErrUsernameAlreadyTaken if the username is taken.
	Create(ctx context.Context, profile *Profile) (*Profile, error)

	// FindByID retrieves a profile by ID.
	FindByID(ctx context.Context, id ulid.ULID) (*Profile, error)

	// FindByAccountID retrieves the profile owned by an account.
	FindByAccountID(ctx context.Context, accountID ulid.ULID) (*Profile, error)

	// Count returns the number of stored profiles.
	Count(ctx context.Context) (int64, error)
}
