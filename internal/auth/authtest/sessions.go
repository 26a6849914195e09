// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Figure Contributors

package authtest

import (
	"context"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/novakovicdavid/figure-backend/internal/auth"
)

type sessionEntry struct {
	accountID ulid.ULID
	profileID ulid.ULID
	expiresAt time.Time
}

// SessionStore is an in-memory auth.SessionStore with a settable clock.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]sessionEntry
	now      func() time.Time

	CreateErr error
}

// NewSessionStore creates an empty SessionStore using time.Now.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]sessionEntry),
		now:      time.Now,
	}
}

// SetClock replaces the clock used for expiry.
func (s *SessionStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Len returns the number of stored sessions, expired ones included.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionStore) Create(_ context.Context, accountID, profileID ulid.ULID, ttl time.Duration) (*auth.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.CreateErr; err != nil {
		s.CreateErr = nil
		return nil, err
	}
	if ttl <= 0 {
		ttl = auth.DefaultSessionTTL
	}
	token, err := auth.GenerateSessionToken()
	if err != nil {
		return nil, err
	}
	s.sessions[token] = sessionEntry{accountID: accountID, profileID: profileID, expiresAt: s.now().Add(ttl)}
	return &auth.Session{Token: token, AccountID: accountID, ProfileID: profileID, TTL: ttl}, nil
}

func (s *SessionStore) FindByID(_ context.Context, token string, ttl time.Duration) (*auth.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	e, ok := s.sessions[token]
	if !ok || !now.Before(e.expiresAt) {
		delete(s.sessions, token)
		return nil, oops.Code("SESSION_NOT_FOUND").Wrap(auth.ErrResourceNotFound)
	}
	if ttl > 0 {
		e.expiresAt = now.Add(ttl)
		s.sessions[token] = e
	}
	return &auth.Session{Token: token, AccountID: e.accountID, ProfileID: e.profileID, TTL: e.expiresAt.Sub(now)}, nil
}

func (s *SessionStore) RemoveByID(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

var _ auth.SessionStore = (*SessionStore)(nil)
