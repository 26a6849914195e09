// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Figure Contributors

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/samber/oops"

	"github.com/novakovicdavid/figure-backend/internal/auth"
)

// sessionValue is the JSON document stored under a session key.
type sessionValue struct {
	AccountID ulid.ULID `json:"account_id"`
	ProfileID ulid.ULID `json:"profile_id"`
}

// SessionStore implements auth.SessionStore. Each session is one string key,
// the token (optionally prefixed), expiring with the session.
type SessionStore struct {
	rdb    goredis.Cmdable
	prefix string
}

// SessionStoreOption configures a SessionStore.
type SessionStoreOption func(*SessionStore)

// WithKeyPrefix namespaces session keys, e.g. "session:".
func WithKeyPrefix(prefix string) SessionStoreOption {
	return func(s *SessionStore) { s.prefix = prefix }
}

// NewSessionStore creates a SessionStore on a client, cluster client or pipeline.
func NewSessionStore(rdb goredis.Cmdable, opts ...SessionStoreOption) *SessionStore {
	s := &SessionStore{rdb: rdb}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SessionStore) key(token string) string {
	return s.prefix + token
}

// Create issues a new session under a fresh random token.
func (s *SessionStore) Create(ctx context.Context, accountID, profileID ulid.ULID, ttl time.Duration) (*auth.Session, error) {
	if ttl <= 0 {
		ttl = auth.DefaultSessionTTL
	}

	token, err := auth.GenerateSessionToken()
	if err != nil {
		return nil, err
	}
	value, err := json.Marshal(sessionValue{AccountID: accountID, ProfileID: profileID})
	if err != nil {
		return nil, oops.Code("SESSION_ENCODE_FAILED").Wrap(err)
	}

	if err := s.rdb.Set(ctx, s.key(token), value, ttl).Err(); err != nil {
		return nil, oops.Code("SESSION_CREATE_FAILED").
			With("account_id", accountID.String()).
			Wrap(err)
	}

	return &auth.Session{
		Token:     token,
		AccountID: accountID,
		ProfileID: profileID,
		TTL:       ttl,
	}, nil
}

// FindByID loads a session. A positive ttl slides its expiry with GETEX;
// otherwise the value and remaining TTL are read in one pipeline.
func (s *SessionStore) FindByID(ctx context.Context, token string, ttl time.Duration) (*auth.Session, error) {
	key := s.key(token)

	var (
		raw       []byte
		remaining time.Duration
		err       error
	)
	if ttl > 0 {
		raw, err = s.rdb.GetEx(ctx, key, ttl).Bytes()
		remaining = ttl
	} else {
		var get *goredis.StringCmd
		var ttlCmd *goredis.DurationCmd
		_, err = s.rdb.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
			get = pipe.Get(ctx, key)
			ttlCmd = pipe.TTL(ctx, key)
			return nil
		})
		if err == nil {
			raw, err = get.Bytes()
			remaining = ttlCmd.Val()
		}
	}
	if errors.Is(err, goredis.Nil) {
		return nil, oops.Code("SESSION_NOT_FOUND").Wrap(auth.ErrResourceNotFound)
	}
	if err != nil {
		return nil, oops.Code("SESSION_GET_FAILED").Wrap(err)
	}

	var v sessionValue
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, oops.Code("SESSION_DECODE_FAILED").Wrap(err)
	}
	if remaining < 0 {
		remaining = 0
	}

	return &auth.Session{
		Token:     token,
		AccountID: v.AccountID,
		ProfileID: v.ProfileID,
		TTL:       remaining,
	}, nil
}

// RemoveByID deletes a session.
func (s *SessionStore) RemoveByID(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, s.key(token)).Err(); err != nil {
		return oops.Code("SESSION_DELETE_FAILED").Wrap(err)
	}
	return nil
}

var _ auth.SessionStore = (*SessionStore)(nil)
