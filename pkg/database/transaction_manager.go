package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresTransactionManager implements TransactionManager using pgx
type PostgresTransactionManager struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
}

// NewPostgresTransactionManager creates a new PostgreSQL transaction manager.
// lockTimeout bounds how long a transaction waits on a row lock (0 = no limit).
func NewPostgresTransactionManager(pool *pgxpool.Pool, lockTimeout time.Duration) *PostgresTransactionManager {
	return &PostgresTransactionManager{
		pool:        pool,
		lockTimeout: lockTimeout,
	}
}

// BeginTx starts a new transaction with the configured lock timeout applied locally.
func (m *PostgresTransactionManager) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	if m.lockTimeout > 0 {
		timeout := fmt.Sprintf("%dms", m.lockTimeout.Milliseconds())
		// set_config(..., true) is the parameterized form of SET LOCAL
		if _, err := tx.Exec(ctx, "SELECT set_config('lock_timeout', $1, true)", timeout); err != nil {
			_ = tx.Rollback(ctx)
			return nil, fmt.Errorf("failed to set lock timeout: %w", err)
		}
	}

	return tx, nil
}
