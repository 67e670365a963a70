// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/apperr"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "email", "alice@x.edu", false},
		{"empty_string", "email", "", true},
		{"whitespace_only", "email", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, apperr.KindInvalidParameters, ae.Kind)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Email checks the email format validation rule.
*/
func TestValidator_Email(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		isValid bool
	}{
		{"valid_email", "alice@x.edu", true},
		{"invalid_format", "invalid-email", false},
		{"missing_domain", "test@", false},
		{"display_name", "Alice <alice@x.edu>", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Email("email", tt.email)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Password exercises every branch of the password policy.
*/
func TestValidator_Password(t *testing.T) {
	tests := []struct {
		name     string
		password string
		isValid  bool
	}{
		{"valid", "Alpha!2345678", true},
		{"exactly_twelve", "Alpha!234567", true},
		{"eleven_chars", "Alpha!23456", false},
		{"too_long", "Aa1!" + strings.Repeat("x", 124), false},
		{"longest_allowed", "Aa1!" + strings.Repeat("x", 123), true},
		{"no_upper", "alpha!2345678", false},
		{"no_lower", "ALPHA!2345678", false},
		{"no_digit", "Alpha!abcdefg", false},
		{"no_special", "Alpha12345678", false},
		{"unlisted_special", "Alpha-2345678", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Password("password", tt.password)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Nickname checks the nickname pattern boundaries.
*/
func TestValidator_Nickname(t *testing.T) {
	tests := []struct {
		nickname string
		isValid  bool
	}{
		{"alicia", true},
		{"a_b1", true},
		{"abc", false},
		{"1alice", false},
		{"alice_in_wonder", false},
		{"aliceinwonde", true},
		{"alice!", false},
	}

	for _, tt := range tests {
		t.Run(tt.nickname, func(t *testing.T) {
			v := &validate.Validator{}
			v.Nickname("nickname", tt.nickname)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("nickname", "alicia").
		Nickname("nickname", "alicia").
		Email("email", "alice@x.edu").
		Password("password", "Alpha!2345678").
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("nickname", "").
		MinLen("nickname", "a", 4).
		Email("email", "not-an-email").
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors and carry every reason in the message
	assert.Len(t, ae.Details, 3)
	assert.Contains(t, ae.Message, "email: Must be a valid email address")
	assert.Contains(t, ae.Message, "nickname: This field is required")
}
