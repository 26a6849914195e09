// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Figure Contributors

// Package authtest provides in-memory fakes of the auth storage interfaces.
package authtest

import (
	"context"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/novakovicdavid/figure-backend/internal/auth"
)

// Store is an in-memory relational store with transactions. Unique emails and
// usernames are reserved when inserted, so two open transactions cannot both
// claim the same value; the reservation is released on rollback.
//
// The exported error fields inject failures into the next matching call.
type Store struct {
	mu       sync.Mutex
	accounts map[ulid.ULID]auth.Account
	profiles map[ulid.ULID]auth.Profile
	emails   map[string]struct{}
	names    map[string]struct{}

	BeginErr  error
	CommitErr error
	UpdateErr error
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		accounts: make(map[ulid.ULID]auth.Account),
		profiles: make(map[ulid.ULID]auth.Profile),
		emails:   make(map[string]struct{}),
		names:    make(map[string]struct{}),
	}
}

// Accounts returns a repository that writes straight to the store.
func (s *Store) Accounts() auth.AccountRepository { return &accountRepo{s: s} }

// Profiles returns a repository that writes straight to the store.
func (s *Store) Profiles() auth.ProfileRepository { return &profileRepo{s: s} }

// Begin opens a transaction.
func (s *Store) Begin(_ context.Context) (auth.Tx, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.BeginErr; err != nil {
		s.BeginErr = nil
		return nil, err
	}
	return &Tx{s: s}, nil
}

// AccountCount returns the number of committed accounts.
func (s *Store) AccountCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.accounts)
}

// ProfileCount returns the number of committed profiles.
func (s *Store) ProfileCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.profiles)
}

// reserveEmail claims an email or fails if it is taken. Callers hold s.mu.
func (s *Store) reserveEmail(email string) error {
	if _, taken := s.emails[email]; taken {
		return oops.Code("AUTH_EMAIL_IN_USE").Wrap(auth.ErrEmailAlreadyInUse)
	}
	s.emails[email] = struct{}{}
	return nil
}

// reserveUsername claims a username or fails if it is taken. Callers hold s.mu.
func (s *Store) reserveUsername(username string) error {
	if _, taken := s.names[username]; taken {
		return oops.Code("AUTH_USERNAME_TAKEN").Wrap(auth.ErrUsernameAlreadyTaken)
	}
	s.names[username] = struct{}{}
	return nil
}

func (s *Store) newAccount(a *auth.Account) (auth.Account, error) {
	stored := *a
	stored.ID = ulid.Make()
	stored.Email = auth.NormalizeEmail(a.Email)
	if stored.Role == "" {
		stored.Role = auth.RoleUser
	}
	stored.CreatedAt = time.Now().UTC()
	return stored, s.reserveEmail(stored.Email)
}

func (s *Store) newProfile(p *auth.Profile, accountExists bool) (auth.Profile, error) {
	stored := *p
	stored.ID = ulid.Make()
	stored.CreatedAt = time.Now().UTC()
	if !accountExists {
		return stored, oops.Code("PROFILE_ACCOUNT_MISSING").
			With("account_id", p.AccountID.String()).
			Errorf("foreign key violation")
	}
	return stored, s.reserveUsername(stored.Username)
}

// Tx is a transaction on a Store. Writes are staged and applied on Commit.
type Tx struct {
	s        *Store
	accounts []auth.Account
	profiles []auth.Profile
	done     bool
}

// Accounts returns a repository bound to the transaction.
func (t *Tx) Accounts() auth.AccountRepository { return &accountRepo{s: t.s, tx: t} }

// Profiles returns a repository bound to the transaction.
func (t *Tx) Profiles() auth.ProfileRepository { return &profileRepo{s: t.s, tx: t} }

// Commit applies the staged writes.
func (t *Tx) Commit(_ context.Context) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.done {
		return oops.Code("TX_DONE").Wrap(auth.ErrTxDone)
	}
	if err := t.s.CommitErr; err != nil {
		t.s.CommitErr = nil
		t.release()
		t.done = true
		return err
	}
	for _, a := range t.accounts {
		t.s.accounts[a.ID] = a
	}
	for _, p := range t.profiles {
		t.s.profiles[p.ID] = p
	}
	t.done = true
	return nil
}

// Rollback discards the staged writes. It is a no-op once the transaction is done.
func (t *Tx) Rollback(_ context.Context) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.done {
		return nil
	}
	t.release()
	t.done = true
	return nil
}

// release frees the unique values reserved by staged rows. Callers hold s.mu.
func (t *Tx) release() {
	for _, a := range t.accounts {
		delete(t.s.emails, a.Email)
	}
	for _, p := range t.profiles {
		delete(t.s.names, p.Username)
	}
	t.accounts, t.profiles = nil, nil
}

func (t *Tx) stagedAccount(id ulid.ULID) (auth.Account, bool) {
	for _, a := range t.accounts {
		if a.ID == id {
			return a, true
		}
	}
	return auth.Account{}, false
}

var (
	_ auth.TransactionManager = (*Store)(nil)
	_ auth.Tx                 = (*Tx)(nil)
)
