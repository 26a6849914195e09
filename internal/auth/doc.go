// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Figure Contributors

// Package auth provides account registration, sign-in and session issuance.
//
// # Domain Types
//
//   - Account - email, password hash and role
//   - Profile - public identity bound 1:1 to an Account, created in the same transaction
//   - Session - bearer token kept in an ephemeral store, never persisted relationally
//
// # Capabilities
//
// Service depends only on interfaces, implemented by adapters in subpackages:
//   - AccountRepository, ProfileRepository, TransactionManager - auth/postgres
//   - SessionStore - auth/redis
//   - PasswordHasher - Argon2idHasher in this package
//
// # Errors
//
// Every failure wraps one sentinel (ErrInvalidEmail, ErrEmailAlreadyInUse, ...)
// or none when internal. Use KindOf to branch, HTTPStatus and PublicMessage to
// answer clients without leaking internal causes.
package auth
