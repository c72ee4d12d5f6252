package auctions

import (
	"errors"
	"time"
)

var (
	ErrAuctionNotFound = errors.New("auction not found")
	ErrUnknownCategory = errors.New("unknown category")
	ErrInvalidEndDate  = errors.New("end date must be in the future")
	ErrInvalidReserve  = errors.New("reserve must be at least 1")
	ErrInvalidInput    = errors.New("invalid auction data")
	ErrAuctionLocked   = errors.New("auction has bids and can no longer be changed")
	ErrNotSeller       = errors.New("only the seller can change this auction")
	ErrInvalidSortBy   = errors.New("invalid sort order")
)

// DefaultReserve applies when an auction is created without a reserve.
const DefaultReserve int64 = 1

// State is derived from the bid count and end date; it is never stored.
type State string

const (
	StateOpen   State = "OPEN"
	StateActive State = "ACTIVE"
	StateClosed State = "CLOSED"
)

// Auction is an auction row joined with its seller's name and bid aggregates.
type Auction struct {
	ID              int64     `db:"id"`
	Title           string    `db:"title"`
	Description     string    `db:"description"`
	Reserve         int64     `db:"reserve"`
	CategoryID      int64     `db:"category_id"`
	SellerID        int64     `db:"seller_id"`
	SellerFirstName string    `db:"seller_first_name"`
	SellerLastName  string    `db:"seller_last_name"`
	EndDate         time.Time `db:"end_date"`
	ImageFilename   *string   `db:"image_filename"`
	CreatedAt       time.Time `db:"created_at"`

	NumBids    int64  `db:"num_bids"`
	HighestBid *int64 `db:"highest_bid"`
}

// IsLocked reports whether the auction has received a bid. Locked auctions
// can be neither modified nor deleted.
func (a *Auction) IsLocked() bool {
	return a.NumBids > 0
}

// State returns the lifecycle state at now.
func (a *Auction) State(now time.Time) State {
	switch {
	case !a.EndDate.After(now):
		return StateClosed
	case a.NumBids > 0:
		return StateActive
	default:
		return StateOpen
	}
}

// CurrentHighestBid is the amount a new bid must exceed.
func (a *Auction) CurrentHighestBid() int64 {
	if a.HighestBid == nil {
		return 0
	}
	return *a.HighestBid
}

type Category struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// SortBy selects the listing order. Every order is tie-broken by title then id.
type SortBy string

const (
	SortAlphabeticalAsc  SortBy = "ALPHABETICAL_ASC"
	SortAlphabeticalDesc SortBy = "ALPHABETICAL_DESC"
	SortClosingSoon      SortBy = "CLOSING_SOON"
	SortClosingLast      SortBy = "CLOSING_LAST"
	SortBidsAsc          SortBy = "BIDS_ASC"
	SortBidsDesc         SortBy = "BIDS_DESC"
	SortReserveAsc       SortBy = "RESERVE_ASC"
	SortReserveDesc      SortBy = "RESERVE_DESC"
)

// DefaultSort is used when a search names no order.
const DefaultSort = SortClosingSoon

func (s SortBy) IsValid() bool {
	switch s {
	case SortAlphabeticalAsc, SortAlphabeticalDesc, SortClosingSoon, SortClosingLast,
		SortBidsAsc, SortBidsDesc, SortReserveAsc, SortReserveDesc:
		return true
	default:
		return false
	}
}

// SearchQuery filters, orders and pages the auction listing.
// Nil pointers mean the filter is not applied.
type SearchQuery struct {
	Q           string
	CategoryIDs []int64
	SellerID    *int64
	BidderID    *int64
	SortBy      SortBy
	Count       *int
	StartIndex  int
}

// SearchResult holds one page of auctions and the number of auctions
// matching the filters across all pages.
type SearchResult struct {
	Count    int
	Auctions []*Auction
}

type CreateAuctionCommand struct {
	SellerID    int64
	Title       string
	Description string
	Reserve     *int64
	CategoryID  int64
	EndDate     time.Time
}

// AuctionPatch carries the fields of a partial update; nil means unchanged.
type AuctionPatch struct {
	Title       *string
	Description *string
	Reserve     *int64
	CategoryID  *int64
	EndDate     *time.Time
}

type UpdateAuctionCommand struct {
	AuctionID   int64
	RequesterID int64
	Patch       AuctionPatch
}

type DeleteAuctionCommand struct {
	AuctionID   int64
	RequesterID int64
}

type SetImageCommand struct {
	AuctionID   int64
	RequesterID int64
	ContentType string
	Data        []byte
}
