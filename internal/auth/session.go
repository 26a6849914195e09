// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Figure Contributors

package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Session token configuration.
const (
	SessionTokenBytes = 32             // 32 bytes = 64 hex chars
	DefaultSessionTTL = 24 * time.Hour // 86400 seconds
)

// Session is a bearer credential issued after sign-up or sign-in.
type Session struct {
	Token     string
	AccountID ulid.ULID
	ProfileID ulid.ULID
	// TTL is the time left until the session expires. Zero when unknown.
	TTL time.Duration
}

// SessionStore keeps sessions in an ephemeral key-value store.
type SessionStore interface {
	// Create issues a new session expiring after ttl (DefaultSessionTTL if ttl <= 0).
	Create(ctx context.Context, accountID, profileID ulid.ULID, ttl time.Duration) (*Session, error)

	// FindByID looks a session up by token. A positive ttl resets its expiry to
	// ttl in the same round trip. Returns ErrResourceNotFound if absent or expired.
	FindByID(ctx context.Context, token string, ttl time.Duration) (*Session, error)

	// RemoveByID deletes a session. Removing an absent session is not an error.
	RemoveByID(ctx context.Context, token string) error
}

// GenerateSessionToken creates a random token from crypto/rand.
func GenerateSessionToken() (string, error) {
	tokenBytes := make([]byte, SessionTokenBytes)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", oops.Code("SESSION_TOKEN_GENERATE_FAILED").
			With("operation", "crypto/rand.Read").
			With("requested_bytes", SessionTokenBytes).
			Wrap(err)
	}
	return hex.EncodeToString(tokenBytes), nil
}
