package bids

import (
	"errors"
	"time"
)

// Validation errors
var (
	ErrBidTooLow        = errors.New("bid amount must be higher than current highest bid")
	ErrAuctionClosed    = errors.New("auction has ended")
	ErrInvalidBidAmount = errors.New("bid amount must be positive")
	ErrSellerCannotBid  = errors.New("seller cannot bid on their own auction")
)

// Bid represents an auction bid. Bids are append-only.
type Bid struct {
	ID              int64     `db:"id"`
	AuctionID       int64     `db:"auction_id"`
	BidderID        int64     `db:"user_id"`
	BidderFirstName string    `db:"first_name"`
	BidderLastName  string    `db:"last_name"`
	Amount          int64     `db:"amount"`
	CreatedAt       time.Time `db:"created_at"`
}

type PlaceBidCommand struct {
	AuctionID int64
	BidderID  int64
	Amount    int64
}
