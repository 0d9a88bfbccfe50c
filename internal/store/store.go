// Package store is the PostgreSQL persistence layer. It offers point lookups
// by the unique keys the reconciliation logic needs (filename, fingerprint,
// check identifier, (check, product name)), plain inserts, and the aggregate
// queries behind the statistics endpoint.
//
// Uniqueness is enforced authoritatively by unique indexes, not by the
// application: when two concurrent uploads race past their lookups and both
// insert, the loser's constraint violation is surfaced as a conflict error
// rather than a duplicate row.
package store

import (
	"context"
	"errors"

	"github.com/mkovtun/receiptd/internal/apperr"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Store executes queries against the given connection source.
type Store struct {
	db DBTX
}

// New creates a Store backed by db.
func New(db DBTX) *Store {
	return &Store{db: db}
}

// uniqueViolation is the SQLSTATE for unique constraint violations.
const uniqueViolation = "23505"

// mapConstraint converts a unique-violation error into a conflict the caller
// can classify; anything else passes through unchanged.
func mapConstraint(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return apperr.Wrap(apperr.KindConflict,
			"a concurrent upload already created this record", err)
	}
	return err
}
