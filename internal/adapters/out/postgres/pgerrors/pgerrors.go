// Package pgerrors recognizes PostgreSQL error codes behind gorm errors.
package pgerrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation = "23505"
	codeCheckViolation  = "23514"
)

// IsUniqueViolation reports whether err is a unique violation of constraint.
// An empty constraint matches any unique violation.
func IsUniqueViolation(err error, constraint string) bool {
	return is(err, codeUniqueViolation, constraint)
}

// IsCheckViolation reports whether err is a violation of check constraint.
func IsCheckViolation(err error, constraint string) bool {
	return is(err, codeCheckViolation, constraint)
}

func is(err error, code, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	return pgErr.Code == code && (constraint == "" || pgErr.ConstraintName == constraint)
}
