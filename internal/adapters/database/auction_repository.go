package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/floroz/gavel-auctions/internal/domain/auctions"
)

// PostgresAuctionRepository implements auctions.AuctionRepository and
// bids.AuctionRepository using pgx
type PostgresAuctionRepository struct {
	pool *pgxpool.Pool // Keep pool for non-transactional reads
}

// NewPostgresAuctionRepository creates a new PostgreSQL auction repository
func NewPostgresAuctionRepository(pool *pgxpool.Pool) *PostgresAuctionRepository {
	return &PostgresAuctionRepository{pool: pool}
}

func (r *PostgresAuctionRepository) Search(ctx context.Context, q auctions.SearchQuery) ([]*auctions.Auction, error) {
	sql, args := buildSearchQuery(q)

	rows, err := r.pool.Query(ctx, sql, args)
	if err != nil {
		return nil, fmt.Errorf("failed to query auctions: %w", err)
	}
	found, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[auctions.Auction])
	if err != nil {
		return nil, fmt.Errorf("failed to scan auctions: %w", err)
	}
	return found, nil
}

func (r *PostgresAuctionRepository) CountMatching(ctx context.Context, q auctions.SearchQuery) (int, error) {
	sql, args := buildCountQuery(q)

	var count int
	if err := r.pool.QueryRow(ctx, sql, args).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count auctions: %w", err)
	}
	return count, nil
}

// GetAuction retrieves an auction with its seller and bid aggregates (non-transactional read)
func (r *PostgresAuctionRepository) GetAuction(ctx context.Context, id int64) (*auctions.Auction, error) {
	rows, err := r.pool.Query(ctx, auctionSelect+"\n\tWHERE a.id = @id", pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to get auction: %w", err)
	}
	auction, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[auctions.Auction])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auctions.ErrAuctionNotFound
		}
		return nil, fmt.Errorf("failed to get auction: %w", err)
	}
	return auction, nil
}

// GetAuctionForUpdate locks the auction row and reads its bid aggregates
// under that lock. FOR UPDATE cannot be combined with GROUP BY, hence two statements.
func (r *PostgresAuctionRepository) GetAuctionForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*auctions.Auction, error) {
	query := `
		SELECT id, title, description, reserve, category_id, seller_id, end_date, image_filename, created_at
		FROM auctions
		WHERE id = $1
		FOR UPDATE
	`
	var a auctions.Auction
	err := tx.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.Title,
		&a.Description,
		&a.Reserve,
		&a.CategoryID,
		&a.SellerID,
		&a.EndDate,
		&a.ImageFilename,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auctions.ErrAuctionNotFound
		}
		return nil, fmt.Errorf("failed to lock auction: %w", err)
	}

	err = tx.QueryRow(ctx, `SELECT COUNT(*), MAX(amount) FROM bids WHERE auction_id = $1`, id).
		Scan(&a.NumBids, &a.HighestBid)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate bids: %w", err)
	}
	return &a, nil
}

func (r *PostgresAuctionRepository) CreateAuction(ctx context.Context, tx pgx.Tx, auction *auctions.Auction) error {
	query := `
		INSERT INTO auctions (title, description, reserve, category_id, seller_id, end_date)
		VALUES (@title, @description, @reserve, @category_id, @seller_id, @end_date)
		RETURNING id, created_at
	`
	err := tx.QueryRow(ctx, query, pgx.NamedArgs{
		"title":       auction.Title,
		"description": auction.Description,
		"reserve":     auction.Reserve,
		"category_id": auction.CategoryID,
		"seller_id":   auction.SellerID,
		"end_date":    auction.EndDate,
	}).Scan(&auction.ID, &auction.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert auction: %w", err)
	}
	return nil
}

func (r *PostgresAuctionRepository) UpdateAuction(ctx context.Context, tx pgx.Tx, auction *auctions.Auction) error {
	query := `
		UPDATE auctions
		SET title = @title, description = @description, reserve = @reserve,
		    category_id = @category_id, seller_id = @seller_id, end_date = @end_date
		WHERE id = @id
	`
	result, err := tx.Exec(ctx, query, pgx.NamedArgs{
		"id":          auction.ID,
		"title":       auction.Title,
		"description": auction.Description,
		"reserve":     auction.Reserve,
		"category_id": auction.CategoryID,
		"seller_id":   auction.SellerID,
		"end_date":    auction.EndDate,
	})
	if err != nil {
		return fmt.Errorf("failed to update auction: %w", err)
	}
	if result.RowsAffected() == 0 {
		return auctions.ErrAuctionNotFound
	}
	return nil
}

func (r *PostgresAuctionRepository) DeleteAuction(ctx context.Context, tx pgx.Tx, id int64) error {
	result, err := tx.Exec(ctx, `DELETE FROM auctions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete auction: %w", err)
	}
	if result.RowsAffected() == 0 {
		return auctions.ErrAuctionNotFound
	}
	return nil
}

func (r *PostgresAuctionRepository) SetImageFilename(ctx context.Context, tx pgx.Tx, id int64, filename *string) error {
	result, err := tx.Exec(ctx, `UPDATE auctions SET image_filename = $1 WHERE id = $2`, filename, id)
	if err != nil {
		return fmt.Errorf("failed to set auction image: %w", err)
	}
	if result.RowsAffected() == 0 {
		return auctions.ErrAuctionNotFound
	}
	return nil
}
