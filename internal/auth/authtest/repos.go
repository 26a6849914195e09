// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Figure Contributors

package authtest

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/novakovicdavid/figure-backend/internal/auth"
)

func errTxDone() error {
	return oops.Code("TX_DONE").Wrap(auth.ErrTxDone)
}

type accountRepo struct {
	s  *Store
	tx *Tx
}

func (r *accountRepo) Create(_ context.Context, account *auth.Account) (*auth.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.tx != nil && r.tx.done {
		return nil, errTxDone()
	}
	stored, err := r.s.newAccount(account)
	if err != nil {
		return nil, err
	}
	if r.tx != nil {
		r.tx.accounts = append(r.tx.accounts, stored)
	} else {
		r.s.accounts[stored.ID] = stored
	}
	return &stored, nil
}

func (r *accountRepo) FindByID(_ context.Context, id ulid.ULID) (*auth.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.tx != nil {
		if a, ok := r.tx.stagedAccount(id); ok {
			return &a, nil
		}
	}
	a, ok := r.s.accounts[id]
	if !ok {
		return nil, oops.Code("ACCOUNT_NOT_FOUND").With("id", id.String()).Wrap(auth.ErrResourceNotFound)
	}
	return &a, nil
}

func (r *accountRepo) FindByEmail(_ context.Context, email string) (*auth.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	email = auth.NormalizeEmail(email)
	for _, a := range r.s.accounts {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, oops.Code("ACCOUNT_NOT_FOUND").Wrap(auth.ErrResourceNotFound)
}

func (r *accountRepo) UpdatePasswordHash(_ context.Context, id ulid.ULID, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.UpdateErr; err != nil {
		r.s.UpdateErr = nil
		return err
	}
	a, ok := r.s.accounts[id]
	if !ok {
		return oops.Code("ACCOUNT_NOT_FOUND").With("id", id.String()).Wrap(auth.ErrResourceNotFound)
	}
	a.PasswordHash = passwordHash
	r.s.accounts[id] = a
	return nil
}

func (r *accountRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.accounts)), nil
}

type profileRepo struct {
	s  *Store
	tx *Tx
}

func (r *profileRepo) Create(_ context.Context, profile *auth.Profile) (*auth.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.tx != nil && r.tx.done {
		return nil, errTxDone()
	}

	_, exists := r.s.accounts[profile.AccountID]
	if !exists && r.tx != nil {
		_, exists = r.tx.stagedAccount(profile.AccountID)
	}
	stored, err := r.s.newProfile(profile, exists)
	if err != nil {
		return nil, err
	}
	if r.tx != nil {
		r.tx.profiles = append(r.tx.profiles, stored)
	} else {
		r.s.profiles[stored.ID] = stored
	}
	return &stored, nil
}

func (r *profileRepo) FindByID(_ context.Context, id ulid.ULID) (*auth.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.profiles[id]
	if !ok {
		return nil, oops.Code("PROFILE_NOT_FOUND").With("id", id.String()).Wrap(auth.ErrResourceNotFound)
	}
	return &p, nil
}

func (r *profileRepo) FindByAccountID(_ context.Context, accountID ulid.ULID) (*auth.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.profiles {
		if p.AccountID == accountID {
			return &p, nil
		}
	}
	return nil, oops.Code("PROFILE_NOT_FOUND").With("account_id", accountID.String()).Wrap(auth.ErrResourceNotFound)
}

func (r *profileRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.profiles)), nil
}

var (
	_ auth.AccountRepository = (*accountRepo)(nil)
	_ auth.ProfileRepository = (*profileRepo)(nil)
)
