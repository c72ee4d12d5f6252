package events

import "time"

// EventType is used as the routing key on the events exchange.
type EventType string

const (
	EventTypeAuctionCreated EventType = "auction.created"
	EventTypeAuctionUpdated EventType = "auction.updated"
	EventTypeAuctionDeleted EventType = "auction.deleted"
	EventTypeBidPlaced      EventType = "bid.placed"
	EventTypeUserRegistered EventType = "user.registered"
)

// String returns the string representation of the event type
func (e EventType) String() string {
	return string(e)
}

// IsValid checks if the event type is one this service emits
func (e EventType) IsValid() bool {
	switch e {
	case EventTypeAuctionCreated, EventTypeAuctionUpdated, EventTypeAuctionDeleted,
		EventTypeBidPlaced, EventTypeUserRegistered:
		return true
	default:
		return false
	}
}

type AuctionCreated struct {
	AuctionID  int64     `json:"auctionId"`
	SellerID   int64     `json:"sellerId"`
	CategoryID int64     `json:"categoryId"`
	Title      string    `json:"title"`
	Reserve    int64     `json:"reserve"`
	EndDate    time.Time `json:"endDate"`
}

type AuctionUpdated struct {
	AuctionID  int64     `json:"auctionId"`
	SellerID   int64     `json:"sellerId"`
	CategoryID int64     `json:"categoryId"`
	Title      string    `json:"title"`
	Reserve    int64     `json:"reserve"`
	EndDate    time.Time `json:"endDate"`
}

type AuctionDeleted struct {
	AuctionID int64 `json:"auctionId"`
	SellerID  int64 `json:"sellerId"`
}

type BidPlaced struct {
	BidID     int64     `json:"bidId"`
	AuctionID int64     `json:"auctionId"`
	BidderID  int64     `json:"bidderId"`
	Amount    int64     `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

type UserRegistered struct {
	UserID    int64     `json:"userId"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}
