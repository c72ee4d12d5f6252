// Package database holds the persistence gateway primitives shared by every
// repository: the pgx connection-or-transaction abstraction and the
// transaction manager used by the domain services.
package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the SQLSTATE Postgres reports for a broken UNIQUE index.
const uniqueViolation = "23505"

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx, so repository
// code can run the same statement inside or outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TransactionManager starts transactions for the domain services.
type TransactionManager interface {
	BeginTx(ctx context.Context) (pgx.Tx, error)
}

// IsUniqueViolation reports whether err was caused by a UNIQUE constraint,
// optionally restricted to a single named constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code != uniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
