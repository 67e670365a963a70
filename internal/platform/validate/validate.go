// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// Every rule runs; the caller receives all violations at once rather than
// the first one. Handlers validate payload shape, services validate policy.
package validate

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/apperr"
)

// # Account Policies

const (
	// PasswordMinLength is the inclusive lower bound of a password length.
	PasswordMinLength = 12
	// PasswordMaxLength is the exclusive upper bound of a password length.
	PasswordMaxLength = 128
	// PasswordSpecials lists the accepted special characters.
	PasswordSpecials = "!@#$%^&*()"
)

var (
	// nicknameRegex is a letter followed by 3 to 12 word characters.
	nicknameRegex = regexp.MustCompile(`^[A-Za-z]\w{3,12}$`)

	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.InvalidParameters("Invalid JSON payload")
)

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "This field is required")
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// MinLen fails if the Unicode character count is below min.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	if utf8.RuneCountInString(value) < min {
		v.add(field, fmt.Sprintf("Minimum %d characters", min))
	}
	return v
}

// Email fails if the value is not a bare RFC 5322 address.
func (v *Validator) Email(field, value string) *Validator {
	address, err := mail.ParseAddress(value)
	if err != nil || address.Address != value {
		v.add(field, "Must be a valid email address")
	}
	return v
}

// Nickname fails unless value is a letter followed by 3 to 12 word characters.
func (v *Validator) Nickname(field, value string) *Validator {
	if !nicknameRegex.MatchString(value) {
		v.add(field, "Must start with a letter followed by 3 to 12 letters, digits or underscores")
	}
	return v
}

// Password enforces the account password policy.
//
// # Policy
//
// At least 12 and fewer than 128 characters, with one ASCII uppercase
// letter, one ASCII lowercase letter, one digit and one of !@#$%^&*().
func (v *Validator) Password(field, value string) *Validator {
	length := utf8.RuneCountInString(value)
	if length < PasswordMinLength || length >= PasswordMaxLength {
		v.add(field, fmt.Sprintf("Must be at least %d and fewer than %d characters", PasswordMinLength, PasswordMaxLength))
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range value {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(PasswordSpecials, r):
			hasSpecial = true
		}
	}

	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		v.add(field, "Must contain an uppercase letter, a lowercase letter, a digit and one of "+PasswordSpecials)
	}
	return v
}

// OneOf fails if the value is not in the allowed set of strings.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.add(field, fmt.Sprintf("Must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("game_version", present && version == "", "Must not be empty")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns an InvalidParameters [apperr.AppError] if any rules failed,
// or nil if all rules passed. The message lists every violation so the
// client sees the original reasons.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}

	reasons := make([]string, 0, len(v.errs))
	for _, fieldError := range v.errs {
		reasons = append(reasons, fieldError.Field+": "+fieldError.Message)
	}

	return apperr.InvalidParameters(strings.Join(reasons, "; "), v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}
