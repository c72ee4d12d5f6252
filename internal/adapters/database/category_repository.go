package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/floroz/gavel-auctions/internal/domain/auctions"
)

// PostgresCategoryRepository implements auctions.CategoryRepository using pgx
type PostgresCategoryRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresCategoryRepository(pool *pgxpool.Pool) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{pool: pool}
}

func (r *PostgresCategoryRepository) ListCategories(ctx context.Context) ([]*auctions.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	categories, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[auctions.Category])
	if err != nil {
		return nil, fmt.Errorf("failed to scan categories: %w", err)
	}
	return categories, nil
}

// CategoriesExist reports whether every id in ids names a category. Duplicates are ignored.
func (r *PostgresCategoryRepository) CategoriesExist(ctx context.Context, ids []int64) (bool, error) {
	unique := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}

	var found int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM categories WHERE id = ANY($1)`, ids).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("failed to check categories: %w", err)
	}
	return found == len(unique), nil
}
