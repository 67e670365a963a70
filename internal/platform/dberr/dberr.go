// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/apperr"
)

// ErrNotFound marks a query that matched no row. Callers decide what absence means.
var ErrNotFound = errors.New("dberr: row not found")

// Wrap inspects a database error and classifies it.
//
//   - pgx.ErrNoRows becomes [ErrNotFound] (wrapped with the action).
//   - An argument that cannot be cast to the key type (SQLSTATE 22P02, e.g.
//     a non-uuid id) also becomes [ErrNotFound]: no row can match it.
//   - Everything else becomes an [apperr.KindDatabase] error whose cause keeps
//     the driver message for logging.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
		return fmt.Errorf("%s: %w", action, ErrNotFound)
	}

	// 2. Already classified
	if apperr.IsAppError(err) {
		return err
	}

	// 3. Unknown query errors become Database errors
	return apperr.Database(fmt.Errorf("%s: %w", action, err))
}

// IsUniqueViolation reports whether err is a SQLSTATE 23505 violation.
func IsUniqueViolation(err error) bool {
	var pgError *pgconn.PgError
	return errors.As(err, &pgError) && pgError.Code == pgerrcode.UniqueViolation
}

func isInvalidText(err error) bool {
	var pgError *pgconn.PgError
	return errors.As(err, &pgError) && pgError.Code == pgerrcode.InvalidTextRepresentation
}

// IsNotFound reports whether err came from a query that matched no row.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, pgx.ErrNoRows)
}
