// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Write failures the admin API maps to client errors.
var (
	// ErrNotFound: the row to update or delete does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidReference: the row names a wedding type or colour that does
	// not exist, or a restricted colour where one is not allowed.
	ErrInvalidReference = errors.New("invalid reference")
)

// ReferenceError explains an ErrInvalidReference failure in terms an API
// client can act on. Err holds the driver error, if there was one.
type ReferenceError struct {
	Reason string
	Err    error
}

func (e *ReferenceError) Error() string {
	if e.Err != nil {
		return e.Reason + ": " + e.Err.Error()
	}
	return e.Reason
}

// Is makes errors.Is(err, ErrInvalidReference) hold.
func (e *ReferenceError) Is(target error) bool {
	return target == ErrInvalidReference
}

func (e *ReferenceError) Unwrap() error {
	return e.Err
}

// PostgreSQL SQLSTATE codes.
const (
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// classify turns constraint violations into store sentinels. Other
// errors are returned unchanged.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgForeignKeyViolation:
		return &ReferenceError{Reason: "wedding type does not exist", Err: err}
	case pgCheckViolation:
		return &ReferenceError{Reason: "value violates " + pgErr.ConstraintName, Err: err}
	}
	return err
}
