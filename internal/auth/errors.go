// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Figure Contributors

package auth

import (
	"errors"
	"net/http"
)

// Sentinel errors. Every error returned by this package and its adapters wraps
// exactly one of these, or none when the failure is internal.
var (
	ErrInvalidEmail          = errors.New("invalid email")
	ErrInvalidUsername       = errors.New("invalid username")
	ErrPasswordTooShort      = errors.New("password too short")
	ErrPasswordTooLong       = errors.New("password too long")
	ErrEmailAlreadyInUse     = errors.New("email already in use")
	ErrUsernameAlreadyTaken  = errors.New("username already taken")
	ErrUserWithEmailNotFound = errors.New("user with email not found")
	ErrWrongPassword         = errors.New("wrong password")
	ErrResourceNotFound      = errors.New("resource not found")
	ErrTransactionFailed     = errors.New("transaction failed")
	ErrSessionCreationFailed = errors.New("session creation failed")
	ErrNoSession             = errors.New("no session")
)

// Kind classifies an error so callers can branch on it without string matching.
type Kind int

// Error kinds. KindInternal is the zero value and covers every unclassified error.
const (
	KindInternal Kind = iota
	KindInvalidEmail
	KindInvalidUsername
	KindPasswordTooShort
	KindPasswordTooLong
	KindEmailAlreadyInUse
	KindUsernameAlreadyTaken
	KindUserWithEmailNotFound
	KindWrongPassword
	KindResourceNotFound
	KindTransactionFailed
	KindSessionCreationFailed
	KindNoSession
)

type kindInfo struct {
	sentinel error
	slug     string
	status   int
}

var kindTable = map[Kind]kindInfo{
	KindInvalidEmail:          {ErrInvalidEmail, "invalid-email", http.StatusBadRequest},
	KindInvalidUsername:       {ErrInvalidUsername, "invalid-username", http.StatusBadRequest},
	KindPasswordTooShort:      {ErrPasswordTooShort, "password-too-short", http.StatusBadRequest},
	KindPasswordTooLong:       {ErrPasswordTooLong, "password-too-long", http.StatusBadRequest},
	KindEmailAlreadyInUse:     {ErrEmailAlreadyInUse, "email-already-in-use", http.StatusBadRequest},
	KindUsernameAlreadyTaken:  {ErrUsernameAlreadyTaken, "username-already-taken", http.StatusBadRequest},
	KindUserWithEmailNotFound: {ErrUserWithEmailNotFound, "user-with-email-not-found", http.StatusBadRequest},
	KindWrongPassword:         {ErrWrongPassword, "wrong-password", http.StatusBadRequest},
	KindResourceNotFound:      {ErrResourceNotFound, "resource-not-found", http.StatusBadRequest},
	KindTransactionFailed:     {ErrTransactionFailed, "transaction-failed", http.StatusInternalServerError},
	KindSessionCreationFailed: {ErrSessionCreationFailed, "session-creation-failed", http.StatusInternalServerError},
	KindNoSession:             {ErrNoSession, "no-session", http.StatusUnauthorized},
}

// classifyOrder fixes the errors.Is probe order. Outer-layer kinds come first so
// that an error wrapping both (e.g. a failed commit whose cause mentions a lookup)
// resolves to the kind the service attached.
var classifyOrder = []Kind{
	KindTransactionFailed,
	KindSessionCreationFailed,
	KindInvalidEmail,
	KindInvalidUsername,
	KindPasswordTooShort,
	KindPasswordTooLong,
	KindEmailAlreadyInUse,
	KindUsernameAlreadyTaken,
	KindUserWithEmailNotFound,
	KindWrongPassword,
	KindResourceNotFound,
	KindNoSession,
}

// String returns the public slug for the kind, e.g. "invalid-email".
func (k Kind) String() string {
	if info, ok := kindTable[k]; ok {
		return info.slug
	}
	return "internal-error"
}

// Sentinel returns the sentinel error for the kind, or nil for KindInternal.
func (k Kind) Sentinel() error {
	return kindTable[k].sentinel
}

// KindOf reports the kind of err. A nil error has no kind and reports
// KindInternal; callers check err != nil first.
func KindOf(err error) Kind {
	if err == nil {
		return KindInternal
	}
	for _, k := range classifyOrder {
		if errors.Is(err, kindTable[k].sentinel) {
			return k
		}
	}
	return KindInternal
}

// IsInternal reports whether err is a server-side fault that must be logged
// rather than shown to the caller.
func IsInternal(err error) bool {
	switch KindOf(err) {
	case KindInternal, KindTransactionFailed, KindSessionCreationFailed:
		return true
	default:
		return false
	}
}

// HTTPStatus returns the status code a transport layer should answer with.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if info, ok := kindTable[KindOf(err)]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}

// PublicMessage returns the client-facing slug for err. Internal causes are
// never included.
func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	return KindOf(err).String()
}
