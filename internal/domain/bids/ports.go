package bids

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/floroz/gavel-auctions/internal/domain/auctions"
	"github.com/floroz/gavel-auctions/pkg/events"
)

// BidRepository defines the interface for bid persistence
type BidRepository interface {
	// SaveBid inserts the bid within a transaction and sets its ID and
	// server-assigned CreatedAt.
	SaveBid(ctx context.Context, tx pgx.Tx, bid *Bid) error

	// GetBidsByAuctionID returns bids highest amount first.
	GetBidsByAuctionID(ctx context.Context, auctionID int64) ([]*Bid, error)
}

// AuctionRepository is the subset of auction persistence the ledger needs
type AuctionRepository interface {
	// GetAuction returns auctions.ErrAuctionNotFound when no auction has the id.
	GetAuction(ctx context.Context, id int64) (*auctions.Auction, error)

	// GetAuctionForUpdate locks the auction row so concurrent bids on the
	// same auction are serialized. Must be called within a transaction.
	GetAuctionForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*auctions.Auction, error)
}

// OutboxRepository stores domain events in the caller's transaction
type OutboxRepository = events.OutboxWriter
