// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Figure Contributors

package auth

import (
	"regexp"
	"strings"

	"github.com/rivo/uniseg"
	"github.com/samber/oops"
)

// Length limits, in grapheme clusters.
const (
	MinEmailLength    = 3
	MaxEmailLength    = 60
	MinPasswordLength = 8
	MaxPasswordLength = 128
	MinUsernameLength = 3
	MaxUsernameLength = 15
)

// emailPattern is the OWASP email pattern: a dotted local part, one or more
// domain labels and an alphabetic TLD of at least two characters.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_+&*-]+(?:\.[a-zA-Z0-9_+&*-]+)*@(?:[a-zA-Z0-9-]+\.)+[a-zA-Z]{2,}$`)

// usernamePattern matches letters and digits, with combining marks allowed
// after a base character, and at most one hyphen between two alphanumeric runs.
var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{M}\p{N}]*(?:-[\p{L}\p{N}][\p{L}\p{M}\p{N}]*)?$`)

// graphemeLen counts user-perceived characters.
func graphemeLen(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// NormalizeEmail returns the canonical stored form of an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(email)
}

// ValidateEmail checks the shape and length of an email address.
func ValidateEmail(email string) error {
	n := graphemeLen(email)
	if n < MinEmailLength || n > MaxEmailLength {
		return oops.Code("AUTH_INVALID_EMAIL").
			With("length", n).
			With("min", MinEmailLength).
			With("max", MaxEmailLength).
			Wrap(ErrInvalidEmail)
	}
	if !emailPattern.MatchString(email) {
		return oops.Code("AUTH_INVALID_EMAIL").Wrap(ErrInvalidEmail)
	}
	return nil
}

// ValidatePassword checks password length.
func ValidatePassword(password string) error {
	n := graphemeLen(password)
	if n < MinPasswordLength {
		return oops.Code("AUTH_PASSWORD_TOO_SHORT").
			With("min", MinPasswordLength).
			Wrap(ErrPasswordTooShort)
	}
	if n > MaxPasswordLength {
		return oops.Code("AUTH_PASSWORD_TOO_LONG").
			With("max", MaxPasswordLength).
			Wrap(ErrPasswordTooLong)
	}
	return nil
}

// ValidateUsername checks the shape and length of a username.
func ValidateUsername(username string) error {
	n := graphemeLen(username)
	if n < MinUsernameLength || n > MaxUsernameLength {
		return oops.Code("AUTH_INVALID_USERNAME").
			With("length", n).
			With("min", MinUsernameLength).
			With("max", MaxUsernameLength).
			Wrap(ErrInvalidUsername)
	}
	if !usernamePattern.MatchString(username) {
		return oops.Code("AUTH_INVALID_USERNAME").Wrap(ErrInvalidUsername)
	}
	return nil
}

// ValidateRegistration runs every registration check, returning the first
// failure in the order email, password, username.
func ValidateRegistration(email, password, username string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if err := ValidatePassword(password); err != nil {
		return err
	}
	return ValidateUsername(username)
}
