package testhelpers

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/floroz/gavel-auctions/migrations"
	"github.com/floroz/gavel-auctions/pkg/database"
)

// TestDatabase represents a migrated Postgres container and a pool connected to it
type TestDatabase struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// NewTestDatabase starts a Postgres container and applies the embedded migrations.
// The container is terminated when the test finishes.
func NewTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err, "Failed to start postgres container")

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err, "Failed to create connection pool")
	require.NoError(t, pool.Ping(ctx), "Failed to ping database")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, database.Migrate(ctx, pool, migrations.FS, logger), "Failed to run migrations")

	td := &TestDatabase{Container: pgContainer, Pool: pool, ConnStr: connStr}
	t.Cleanup(td.Close)
	return td
}

func (td *TestDatabase) Close() {
	td.Pool.Close()
	if err := td.Container.Terminate(context.Background()); err != nil {
		slog.Warn("Failed to terminate postgres container", "error", err)
	}
}

// CleanDatabase truncates all mutable tables to reset state between tests.
// Seeded categories are kept.
func CleanDatabase(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		"TRUNCATE TABLE bids, auctions, users, outbox_events RESTART IDENTITY CASCADE")
	require.NoError(t, err, "Failed to truncate tables")
}

// InsertUser adds a user with a throwaway password hash and returns its id.
func InsertUser(t *testing.T, pool *pgxpool.Pool, firstName, lastName, email string) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO users (email, first_name, last_name, password_hash) VALUES ($1, $2, $3, 'x') RETURNING id`,
		email, firstName, lastName).Scan(&id)
	require.NoError(t, err, "Failed to insert user")
	return id
}
