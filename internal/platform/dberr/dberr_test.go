// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

package dberr_test

import (
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/apperr"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/dberr"
)

/*
TestWrap classifies driver errors.
*/
func TestWrap(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "noop"))

	notFound := dberr.Wrap(pgx.ErrNoRows, "find user")
	assert.True(t, dberr.IsNotFound(notFound))
	assert.False(t, apperr.IsAppError(notFound))

	malformedID := dberr.Wrap(&pgconn.PgError{Code: pgerrcode.InvalidTextRepresentation}, "find user")
	assert.True(t, dberr.IsNotFound(malformedID))

	failure := dberr.Wrap(errors.New("connection reset"), "find user")
	assert.Equal(t, apperr.KindDatabase, apperr.KindOf(failure))
	assert.Contains(t, apperr.As(failure).Cause.Error(), "find user: connection reset")

	classified := apperr.UserAlreadyExists()
	assert.Same(t, classified, dberr.Wrap(classified, "insert user"))
}

/*
TestIsUniqueViolation matches SQLSTATE 23505 only.
*/
func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, dberr.IsUniqueViolation(&pgconn.PgError{Code: pgerrcode.UniqueViolation}))
	assert.False(t, dberr.IsUniqueViolation(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}))
	assert.False(t, dberr.IsUniqueViolation(errors.New("duplicate")))
}
