// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file classifies raw store errors into a small,
// driver-agnostic set of kinds so the HTTP layer can map them to statuses
// without knowing which database produced them.
package repo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrInvalidInput mirrors the store's "invalid input syntax" failure for
// identifiers that are not integers. It is produced before any statement is
// sent, since bound int64 parameters can never trigger it at the store.
var ErrInvalidInput = errors.New("invalid input syntax")

// ErrorKind is the classification of a store failure.
type ErrorKind int

const (
	// KindOther covers every failure that has no dedicated mapping.
	KindOther ErrorKind = iota
	// KindInvalidInput is a value of the wrong type/shape (Postgres 22P02).
	KindInvalidInput
	// KindNotNull is a NOT NULL constraint violation (Postgres 23502).
	KindNotNull
	// KindForeignKey is a foreign key violation (Postgres 23503).
	KindForeignKey
)

// String returns a stable label used in logs and metrics.
func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindNotNull:
		return "not_null_violation"
	case KindForeignKey:
		return "foreign_key_violation"
	default:
		return "other"
	}
}

// Postgres SQLSTATE codes.
const (
	pgInvalidTextRepresentation = "22P02"
	pgNotNullViolation          = "23502"
	pgForeignKeyViolation       = "23503"
)

// SQLite extended result codes.
const (
	sqliteConstraintForeignKey = 787
	sqliteConstraintNotNull    = 1299
)

// sqliteCoder matches the error type of the pure-Go SQLite driver without
// importing it.
type sqliteCoder interface {
	Code() int
}

// Classify maps err to an ErrorKind. A nil error is KindOther.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindOther
	}
	if errors.Is(err, ErrInvalidInput) {
		return KindInvalidInput
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgInvalidTextRepresentation:
			return KindInvalidInput
		case pgNotNullViolation:
			return KindNotNull
		case pgForeignKeyViolation:
			return KindForeignKey
		}
		return KindOther
	}

	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return KindForeignKey
	}

	var sc sqliteCoder
	if errors.As(err, &sc) {
		switch sc.Code() {
		case sqliteConstraintForeignKey:
			return KindForeignKey
		case sqliteConstraintNotNull:
			return KindNotNull
		}
	}

	// glebarez/sqlite sometimes surfaces plain-text constraint errors.
	low := strings.ToLower(err.Error())
	switch {
	case strings.Contains(low, "foreign key constraint failed"):
		return KindForeignKey
	case strings.Contains(low, "not null constraint failed"):
		return KindNotNull
	}
	return KindOther
}

// ParseID parses a path identifier the way the store would cast it to an
// integer column. Failures wrap ErrInvalidInput.
func ParseID(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w for type integer: %q", ErrInvalidInput, s)
	}
	return n, nil
}
