package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/floroz/gavel-auctions/internal/domain/users"
	pkgdb "github.com/floroz/gavel-auctions/pkg/database"
)

const userColumns = `id, email, first_name, last_name, password_hash, image_filename, created_at`

// PostgresUserRepository implements users.UserRepository using pgx
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// CreateUser relies on the unique email index rather than a prior lookup, so
// two concurrent registrations cannot both succeed.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, tx pgx.Tx, user *users.User) error {
	query := `
		INSERT INTO users (email, first_name, last_name, password_hash)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO NOTHING
		RETURNING id, created_at
	`
	err := tx.QueryRow(ctx, query, user.Email, user.FirstName, user.LastName, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return users.ErrEmailInUse
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id int64) (*users.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (*users.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *PostgresUserRepository) getUser(ctx context.Context, query string, arg any) (*users.User, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[users.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return user, nil
}

func (r *PostgresUserRepository) UpdateUser(ctx context.Context, user *users.User) error {
	query := `
		UPDATE users
		SET email = $1, first_name = $2, last_name = $3, password_hash = $4
		WHERE id = $5
	`
	result, err := r.pool.Exec(ctx, query, user.Email, user.FirstName, user.LastName, user.PasswordHash, user.ID)
	if err != nil {
		if pkgdb.IsUniqueViolation(err, "users_email_key") {
			return users.ErrEmailInUse
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return users.ErrUserNotFound
	}
	return nil
}

func (r *PostgresUserRepository) SetTokenHash(ctx context.Context, id int64, tokenHash []byte) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET auth_token_hash = $1 WHERE id = $2`, tokenHash, id)
	if err != nil {
		return fmt.Errorf("failed to set token: %w", err)
	}
	return nil
}

func (r *PostgresUserRepository) GetUserIDByTokenHash(ctx context.Context, tokenHash []byte) (int64, bool, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `SELECT id FROM users WHERE auth_token_hash = $1`, tokenHash).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to resolve token: %w", err)
	}
	return id, true, nil
}

func (r *PostgresUserRepository) SetImageFilename(ctx context.Context, id int64, filename *string) error {
	result, err := r.pool.Exec(ctx, `UPDATE users SET image_filename = $1 WHERE id = $2`, filename, id)
	if err != nil {
		return fmt.Errorf("failed to set user image: %w", err)
	}
	if result.RowsAffected() == 0 {
		return users.ErrUserNotFound
	}
	return nil
}
