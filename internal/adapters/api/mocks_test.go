package api

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/floroz/gavel-auctions/internal/domain/auctions"
	"github.com/floroz/gavel-auctions/internal/domain/bids"
	"github.com/floroz/gavel-auctions/internal/domain/images"
	"github.com/floroz/gavel-auctions/internal/domain/users"
)

type MockAuctionService struct {
	mock.Mock
}

func (m *MockAuctionService) Search(ctx context.Context, q auctions.SearchQuery) (*auctions.SearchResult, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auctions.SearchResult), args.Error(1)
}

func (m *MockAuctionService) GetAuction(ctx context.Context, id int64) (*auctions.Auction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auctions.Auction), args.Error(1)
}

func (m *MockAuctionService) ListCategories(ctx context.Context) ([]*auctions.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*auctions.Category), args.Error(1)
}

func (m *MockAuctionService) CreateAuction(ctx context.Context, cmd auctions.CreateAuctionCommand) (*auctions.Auction, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auctions.Auction), args.Error(1)
}

func (m *MockAuctionService) UpdateAuction(ctx context.Context, cmd auctions.UpdateAuctionCommand) (*auctions.Auction, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auctions.Auction), args.Error(1)
}

func (m *MockAuctionService) DeleteAuction(ctx context.Context, cmd auctions.DeleteAuctionCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

func (m *MockAuctionService) GetAuctionImage(ctx context.Context, id int64) (*images.Image, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*images.Image), args.Error(1)
}

func (m *MockAuctionService) SetAuctionImage(ctx context.Context, cmd auctions.SetImageCommand) (bool, error) {
	args := m.Called(ctx, cmd)
	return args.Bool(0), args.Error(1)
}

type MockBidService struct {
	mock.Mock
}

func (m *MockBidService) GetBids(ctx context.Context, auctionID int64) ([]*bids.Bid, error) {
	args := m.Called(ctx, auctionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*bids.Bid), args.Error(1)
}

func (m *MockBidService) PlaceBid(ctx context.Context, cmd bids.PlaceBidCommand) (*bids.Bid, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bids.Bid), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) ResolveToken(ctx context.Context, token string) (int64, bool, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockUserService) Register(ctx context.Context, cmd users.RegisterCommand) (int64, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (*users.LoginResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.LoginResult), args.Error(1)
}

func (m *MockUserService) Logout(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockUserService) GetUser(ctx context.Context, id, viewerID int64) (*users.Profile, error) {
	args := m.Called(ctx, id, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.Profile), args.Error(1)
}

func (m *MockUserService) ModifyUser(ctx context.Context, cmd users.ModifyUserCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

func (m *MockUserService) GetUserImage(ctx context.Context, id int64) (*images.Image, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*images.Image), args.Error(1)
}

func (m *MockUserService) SetUserImage(ctx context.Context, cmd users.SetImageCommand) (bool, error) {
	args := m.Called(ctx, cmd)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserService) DeleteUserImage(ctx context.Context, userID, requesterID int64) error {
	return m.Called(ctx, userID, requesterID).Error(0)
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error { return p.err }
