package auctions

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/floroz/gavel-auctions/pkg/events"
)

// AuctionRepository defines the interface for auction persistence
type AuctionRepository interface {
	// Search returns one page of auctions matching q, with bid aggregates.
	Search(ctx context.Context, q SearchQuery) ([]*Auction, error)

	// CountMatching returns the number of auctions matching q's filters, ignoring paging.
	CountMatching(ctx context.Context, q SearchQuery) (int, error)

	// GetAuction returns ErrAuctionNotFound when no auction has the id.
	GetAuction(ctx context.Context, id int64) (*Auction, error)

	// GetAuctionForUpdate locks the auction row until tx ends and returns it
	// with its bid aggregates. Must be called within a transaction.
	GetAuctionForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*Auction, error)

	// CreateAuction inserts the auction and sets its ID and CreatedAt.
	CreateAuction(ctx context.Context, tx pgx.Tx, auction *Auction) error

	UpdateAuction(ctx context.Context, tx pgx.Tx, auction *Auction) error

	DeleteAuction(ctx context.Context, tx pgx.Tx, id int64) error

	SetImageFilename(ctx context.Context, tx pgx.Tx, id int64, filename *string) error
}

// CategoryRepository defines the interface for the read-only category table
type CategoryRepository interface {
	ListCategories(ctx context.Context) ([]*Category, error)

	// CategoriesExist reports whether every id names a category.
	CategoriesExist(ctx context.Context, ids []int64) (bool, error)
}

// OutboxRepository stores domain events in the caller's transaction
type OutboxRepository = events.OutboxWriter
