package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/floroz/gavel-auctions/internal/domain/bids"
)

// PostgresBidRepository implements bids.BidRepository using pgx
type PostgresBidRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresBidRepository creates a new PostgreSQL bid repository
func NewPostgresBidRepository(pool *pgxpool.Pool) *PostgresBidRepository {
	return &PostgresBidRepository{pool: pool}
}

// SaveBid appends a bid within a transaction. The timestamp never goes
// backwards within an auction, even if the server clock does.
func (r *PostgresBidRepository) SaveBid(ctx context.Context, tx pgx.Tx, bid *bids.Bid) error {
	query := `
		INSERT INTO bids (auction_id, user_id, amount, created_at)
		VALUES (
			@auction_id, @user_id, @amount,
			GREATEST(clock_timestamp(), (SELECT MAX(created_at) FROM bids WHERE auction_id = @auction_id))
		)
		RETURNING id, created_at
	`
	err := tx.QueryRow(ctx, query, pgx.NamedArgs{
		"auction_id": bid.AuctionID,
		"user_id":    bid.BidderID,
		"amount":     bid.Amount,
	}).Scan(&bid.ID, &bid.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert bid: %w", err)
	}
	return nil
}

// GetBidsByAuctionID retrieves all bids for an auction, highest first
func (r *PostgresBidRepository) GetBidsByAuctionID(ctx context.Context, auctionID int64) ([]*bids.Bid, error) {
	query := `
		SELECT b.id, b.auction_id, b.user_id, u.first_name, u.last_name, b.amount, b.created_at
		FROM bids b
		JOIN users u ON u.id = b.user_id
		WHERE b.auction_id = $1
		ORDER BY b.amount DESC, b.created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, auctionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bids: %w", err)
	}
	result, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[bids.Bid])
	if err != nil {
		return nil, fmt.Errorf("failed to scan bids: %w", err)
	}
	return result, nil
}
