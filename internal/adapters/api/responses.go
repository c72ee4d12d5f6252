package api

import (
	"time"

	"github.com/floroz/gavel-auctions/internal/domain/auctions"
	"github.com/floroz/gavel-auctions/internal/domain/bids"
	"github.com/floroz/gavel-auctions/internal/domain/users"
)

type auctionResponse struct {
	AuctionID       int64     `json:"auctionId"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	CategoryID      int64     `json:"categoryId"`
	SellerID        int64     `json:"sellerId"`
	SellerFirstName string    `json:"sellerFirstName"`
	SellerLastName  string    `json:"sellerLastName"`
	Reserve         int64     `json:"reserve"`
	NumBids         int64     `json:"numBids"`
	HighestBid      *int64    `json:"highestBid"`
	EndDate         time.Time `json:"endDate"`
}

type searchResponse struct {
	Count    int               `json:"count"`
	Auctions []auctionResponse `json:"auctions"`
}

type categoryResponse struct {
	CategoryID int64  `json:"categoryId"`
	Name       string `json:"name"`
}

type bidResponse struct {
	BidderID  int64     `json:"bidderId"`
	Amount    int64     `json:"amount"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Timestamp time.Time `json:"timestamp"`
}

type userResponse struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     *string `json:"email,omitempty"`
}

type registerResponse struct {
	UserID int64 `json:"userId"`
}

type loginResponse struct {
	UserID int64  `json:"userId"`
	Token  string `json:"token"`
}

// toAuctionSummary omits the description, which only the detail view carries.
func toAuctionSummary(a *auctions.Auction) auctionResponse {
	return auctionResponse{
		AuctionID:       a.ID,
		Title:           a.Title,
		CategoryID:      a.CategoryID,
		SellerID:        a.SellerID,
		SellerFirstName: a.SellerFirstName,
		SellerLastName:  a.SellerLastName,
		Reserve:         a.Reserve,
		NumBids:         a.NumBids,
		HighestBid:      a.HighestBid,
		EndDate:         a.EndDate.UTC(),
	}
}

func toAuctionDetail(a *auctions.Auction) auctionResponse {
	resp := toAuctionSummary(a)
	resp.Description = a.Description
	return resp
}

func toSearchResponse(r *auctions.SearchResult) searchResponse {
	out := searchResponse{Count: r.Count, Auctions: make([]auctionResponse, 0, len(r.Auctions))}
	for _, a := range r.Auctions {
		out.Auctions = append(out.Auctions, toAuctionSummary(a))
	}
	return out
}

func toCategoryResponses(categories []*auctions.Category) []categoryResponse {
	out := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, categoryResponse{CategoryID: c.ID, Name: c.Name})
	}
	return out
}

func toBidResponses(list []*bids.Bid) []bidResponse {
	out := make([]bidResponse, 0, len(list))
	for _, b := range list {
		out = append(out, toBidResponse(b))
	}
	return out
}

func toBidResponse(b *bids.Bid) bidResponse {
	return bidResponse{
		BidderID:  b.BidderID,
		Amount:    b.Amount,
		FirstName: b.BidderFirstName,
		LastName:  b.BidderLastName,
		Timestamp: b.CreatedAt.UTC(),
	}
}

func toUserResponse(p *users.Profile) userResponse {
	return userResponse{FirstName: p.FirstName, LastName: p.LastName, Email: p.Email}
}
