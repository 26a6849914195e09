// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Figure Contributors

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/novakovicdavid/figure-backend/internal/auth"
)

// ProfileRepository implements auth.ProfileRepository using PostgreSQL.
type ProfileRepository struct {
	db querier
}

// NewProfileRepository creates a ProfileRepository on a pool or transaction.
func NewProfileRepository(db querier) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const selectProfile = `
	SELECT id, username, display_name, bio, banner, profile_picture, account_id, created_at
	FROM profile
`

// Create stores a new profile. The ID is generated here; CreatedAt comes from the database.
func (r *ProfileRepository) Create(ctx context.Context, profile *auth.Profile) (*auth.Profile, error) {
	stored := *profile
	stored.ID = ulid.Make()

	err := r.db.QueryRow(ctx, `
		INSERT INTO profile (id, username, display_name, bio, banner, profile_picture, account_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`,
		stored.ID.String(),
		stored.Username,
		stored.DisplayName,
		stored.Bio,
		stored.Banner,
		stored.ProfilePicture,
		stored.AccountID.String(),
	).Scan(&stored.CreatedAt)
	if isUniqueViolation(err, constraintProfileUsername) {
		return nil, oops.Code("AUTH_USERNAME_TAKEN").Wrap(auth.ErrUsernameAlreadyTaken)
	}
	if err != nil {
		return nil, oops.Code("PROFILE_CREATE_FAILED").
			With("operation", "insert profile").
			With("account_id", stored.AccountID.String()).
			Wrap(err)
	}
	return &stored, nil
}

// FindByID retrieves a profile by ID.
func (r *ProfileRepository) FindByID(ctx context.Context, id ulid.ULID) (*auth.Profile, error) {
	row := r.db.QueryRow(ctx, selectProfile+`WHERE id = $1`, id.String())
	profile, err := scanProfile(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("PROFILE_NOT_FOUND").
			With("id", id.String()).
			Wrap(auth.ErrResourceNotFound)
	}
	if err != nil {
		return nil, oops.Code("PROFILE_GET_BY_ID_FAILED").
			With("operation", "get profile by id").
			With("id", id.String()).
			Wrap(err)
	}
	return profile, nil
}

// FindByAccountID retrieves the profile owned by an account.
func (r *ProfileRepository) FindByAccountID(ctx context.Context, accountID ulid.ULID) (*auth.Profile, error) {
	row := r.db.QueryRow(ctx, selectProfile+`WHERE account_id = $1`, accountID.String())
	profile, err := scanProfile(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("PROFILE_NOT_FOUND").
			With("account_id", accountID.String()).
			Wrap(auth.ErrResourceNotFound)
	}
	if err != nil {
		return nil, oops.Code("PROFILE_GET_BY_ACCOUNT_FAILED").
			With("operation", "get profile by account id").
			With("account_id", accountID.String()).
			Wrap(err)
	}
	return profile, nil
}

// Count returns the number of stored profiles.
func (r *ProfileRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM profile`).Scan(&n); err != nil {
		return 0, oops.Code("PROFILE_COUNT_FAILED").Wrap(err)
	}
	return n, nil
}

func scanProfile(row pgx.Row) (*auth.Profile, error) {
	var (
		idStr        string
		accountIDStr string
		p            auth.Profile
		createdAt    time.Time
	)
	err := row.Scan(
		&idStr,
		&p.Username,
		&p.DisplayName,
		&p.Bio,
		&p.Banner,
		&p.ProfilePicture,
		&accountIDStr,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("PROFILE_SCAN_FAILED").
			With("operation", "scan profile").
			Wrap(err)
	}

	if p.ID, err = ulid.Parse(idStr); err != nil {
		return nil, oops.Code("PROFILE_INVALID_ID").With("id", idStr).Wrap(err)
	}
	if p.AccountID, err = ulid.Parse(accountIDStr); err != nil {
		return nil, oops.Code("PROFILE_INVALID_ACCOUNT_ID").With("account_id", accountIDStr).Wrap(err)
	}
	p.CreatedAt = createdAt
	return &p, nil
}

var _ auth.ProfileRepository = (*ProfileRepository)(nil)
