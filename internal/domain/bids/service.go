package bids

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/floroz/gavel-auctions/internal/domain/auctions"
	"github.com/floroz/gavel-auctions/pkg/database"
	"github.com/floroz/gavel-auctions/pkg/events"
	"github.com/floroz/gavel-auctions/pkg/metrics"
)

// validateBidAmount checks if the bid amount is higher than the current highest bid
func validateBidAmount(bidAmount, currentHighest int64) error {
	if bidAmount <= 0 {
		return ErrInvalidBidAmount
	}
	if bidAmount <= currentHighest {
		return ErrBidTooLow
	}
	return nil
}

// validateAuctionOpen checks that the auction end date has not passed
func validateAuctionOpen(endDate, now time.Time) error {
	if !endDate.After(now) {
		return ErrAuctionClosed
	}
	return nil
}

// Service implements the bid ledger
type Service struct {
	txManager   database.TransactionManager
	bidRepo     BidRepository
	auctionRepo AuctionRepository
	outboxRepo  OutboxRepository
	logger      *slog.Logger
	now         func() time.Time
}

// NewService creates a new bid service
func NewService(
	txManager database.TransactionManager,
	bidRepo BidRepository,
	auctionRepo AuctionRepository,
	outboxRepo OutboxRepository,
	logger *slog.Logger,
) *Service {
	return &Service{
		txManager:   txManager,
		bidRepo:     bidRepo,
		auctionRepo: auctionRepo,
		outboxRepo:  outboxRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// GetBids lists the bids on an auction, highest first.
func (s *Service) GetBids(ctx context.Context, auctionID int64) ([]*Bid, error) {
	if _, err := s.auctionRepo.GetAuction(ctx, auctionID); err != nil {
		return nil, err
	}

	bids, err := s.bidRepo.GetBidsByAuctionID(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bids: %w", err)
	}
	return bids, nil
}

// PlaceBid appends a bid and its bid.placed event in one transaction.
func (s *Service) PlaceBid(ctx context.Context, cmd PlaceBidCommand) (*Bid, error) {
	bid, err := s.placeBid(ctx, cmd)
	metrics.RecordBid(bidOutcome(err))
	return bid, err
}

func (s *Service) placeBid(ctx context.Context, cmd PlaceBidCommand) (*Bid, error) {
	tx, err := s.txManager.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx) // Rollback if commit is not called
	}()

	// Lock the auction row; concurrent bids on it wait here
	auction, err := s.auctionRepo.GetAuctionForUpdate(ctx, tx, cmd.AuctionID)
	if err != nil {
		return nil, err
	}

	if auction.SellerID == cmd.BidderID {
		return nil, ErrSellerCannotBid
	}

	if valErr := validateAuctionOpen(auction.EndDate, s.now()); valErr != nil {
		return nil, valErr
	}

	if valErr := validateBidAmount(cmd.Amount, auction.CurrentHighestBid()); valErr != nil {
		return nil, valErr
	}

	bid := &Bid{
		AuctionID: cmd.AuctionID,
		BidderID:  cmd.BidderID,
		Amount:    cmd.Amount,
	}
	if saveErr := s.bidRepo.SaveBid(ctx, tx, bid); saveErr != nil {
		return nil, fmt.Errorf("failed to save bid: %w", saveErr)
	}

	event, err := events.NewOutboxEvent(events.EventTypeBidPlaced, events.BidPlaced{
		BidID:     bid.ID,
		AuctionID: bid.AuctionID,
		BidderID:  bid.BidderID,
		Amount:    bid.Amount,
		Timestamp: bid.CreatedAt,
	})
	if err != nil {
		return nil, err
	}
	if saveErr := s.outboxRepo.SaveEvent(ctx, tx, event); saveErr != nil {
		return nil, fmt.Errorf("failed to save outbox event: %w", saveErr)
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", commitErr)
	}

	s.logger.Info("Bid placed", "bid_id", bid.ID, "auction_id", bid.AuctionID, "amount", bid.Amount)
	return bid, nil
}

func bidOutcome(err error) string {
	switch {
	case err == nil:
		return "accepted"
	case errors.Is(err, auctions.ErrAuctionNotFound):
		return "not_found"
	case errors.Is(err, ErrSellerCannotBid):
		return "seller"
	case errors.Is(err, ErrAuctionClosed):
		return "closed"
	case errors.Is(err, ErrBidTooLow), errors.Is(err, ErrInvalidBidAmount):
		return "too_low"
	default:
		return "error"
	}
}
