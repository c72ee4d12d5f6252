package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/floroz/gavel-auctions/internal/domain/auctions"
	"github.com/floroz/gavel-auctions/internal/domain/bids"
	"github.com/floroz/gavel-auctions/internal/domain/images"
	"github.com/floroz/gavel-auctions/internal/domain/users"
)

const (
	testToken  = "good-token"
	testUserID = int64(7)
)

type testAPI struct {
	router   *gin.Engine
	auctions *MockAuctionService
	bids     *MockBidService
	users    *MockUserService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	a := &testAPI{
		auctions: new(MockAuctionService),
		bids:     new(MockBidService),
		users:    new(MockUserService),
	}
	a.users.On("ResolveToken", mock.Anything, testToken).Return(testUserID, true, nil).Maybe()
	a.users.On("ResolveToken", mock.Anything, mock.Anything).Return(int64(0), false, nil).Maybe()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	a.router = NewRouter("/api/v1", Services{Auctions: a.auctions, Bids: a.bids, Users: a.users}, stubPinger{}, logger)

	t.Cleanup(func() {
		a.auctions.AssertExpectations(t)
		a.bids.AssertExpectations(t)
		a.users.AssertExpectations(t)
	})
	return a
}

type request struct {
	method      string
	path        string
	body        string
	token       string
	contentType string
}

func (a *testAPI) do(r request) *httptest.ResponseRecorder {
	var body io.Reader
	if r.body != "" {
		body = strings.NewReader(r.body)
	}
	req := httptest.NewRequest(r.method, r.path, body)
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	} else if r.body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.token != "" {
		req.Header.Set("X-Authorization", r.token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var out ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out.Error
}

func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int       { return &v }

func sampleAuction() *auctions.Auction {
	return &auctions.Auction{
		ID:              3,
		Title:           "Bike",
		Description:     "Road bike",
		Reserve:         1,
		CategoryID:      7,
		SellerID:        testUserID,
		SellerFirstName: "Sam",
		SellerLastName:  "Seller",
		EndDate:         time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSearchAuctions(t *testing.T) {
	t.Run("maps query parameters", func(t *testing.T) {
		a := newTestAPI(t)
		expected := auctions.SearchQuery{
			Q:           "bike",
			CategoryIDs: []int64{1, 2},
			SellerID:    int64Ptr(4),
			SortBy:      auctions.SortBidsDesc,
			Count:       intPtr(5),
			StartIndex:  10,
		}
		highest := int64(50)
		listed := sampleAuction()
		listed.NumBids = 2
		listed.HighestBid = &highest
		a.auctions.On("Search", mock.Anything, expected).
			Return(&auctions.SearchResult{Count: 12, Auctions: []*auctions.Auction{listed}}, nil)

		w := a.do(request{method: http.MethodGet,
			path: "/api/v1/auctions?q=bike&categoryIds=1&categoryIds=2&sellerId=4&sortBy=BIDS_DESC&count=5&startIndex=10"})

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, float64(12), body["count"])
		list := body["auctions"].([]any)
		require.Len(t, list, 1)
		item := list[0].(map[string]any)
		assert.Equal(t, float64(3), item["auctionId"])
		assert.Equal(t, float64(2), item["numBids"])
		assert.Equal(t, float64(50), item["highestBid"])
		assert.Equal(t, "Sam", item["sellerFirstName"])
		assert.NotContains(t, item, "description")
	})

	t.Run("zero bids serialise highestBid as null", func(t *testing.T) {
		a := newTestAPI(t)
		a.auctions.On("Search", mock.Anything, auctions.SearchQuery{}).
			Return(&auctions.SearchResult{Count: 1, Auctions: []*auctions.Auction{sampleAuction()}}, nil)

		w := a.do(request{method: http.MethodGet, path: "/api/v1/auctions"})

		require.Equal(t, http.StatusOK, w.Code)
		item := decodeBody(t, w)["auctions"].([]any)[0].(map[string]any)
		assert.Equal(t, float64(0), item["numBids"])
		assert.Contains(t, item, "highestBid")
		assert.Nil(t, item["highestBid"])
	})

	t.Run("empty result is an empty array", func(t *testing.T) {
		a := newTestAPI(t)
		a.auctions.On("Search", mock.Anything, auctions.SearchQuery{}).
			Return(&auctions.SearchResult{}, nil)

		w := a.do(request{method: http.MethodGet, path: "/api/v1/auctions"})

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"count":0,"auctions":[]}`, w.Body.String())
	})

	badQueries := map[string]string{
		"unknown parameter": "/api/v1/auctions?colour=red",
		"non-numeric count": "/api/v1/auctions?count=ten",
		"negative index":    "/api/v1/auctions?startIndex=-1",
		"zero seller":       "/api/v1/auctions?sellerId=0",
	}
	for name, path := range badQueries {
		t.Run(name, func(t *testing.T) {
			a := newTestAPI(t)
			w := a.do(request{method: http.MethodGet, path: path})
			assert.Equal(t, http.StatusBadRequest, w.Code)
			a.auctions.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
		})
	}

	t.Run("unknown category is a 400", func(t *testing.T) {
		a := newTestAPI(t)
		a.auctions.On("Search", mock.Anything, mock.Anything).Return(nil, auctions.ErrUnknownCategory)

		w := a.do(request{method: http.MethodGet, path: "/api/v1/auctions?categoryIds=999"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetAuction(t *testing.T) {
	t.Run("returns detail with description", func(t *testing.T) {
		a := newTestAPI(t)
		a.auctions.On("GetAuction", mock.Anything, int64(3)).Return(sampleAuction(), nil)

		w := a.do(request{method: http.MethodGet, path: "/api/v1/auctions/3"})

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Road bike", body["description"])
		assert.Equal(t, "2030-01-01T12:00:00Z", body["endDate"])
	})

	t.Run("missing auction is a 404", func(t *testing.T) {
		a := newTestAPI(t)
		a.auctions.On("GetAuction", mock.Anything, int64(99)).Return(nil, auctions.ErrAuctionNotFound)

		w := a.do(request{method: http.MethodGet, path: "/api/v1/auctions/99"})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Auction not found", errorMessage(t, w))
	})

	for _, id := range []string{"abc", "0", "-4"} {
		t.Run("invalid id "+id, func(t *testing.T) {
			a := newTestAPI(t)
			w := a.do(request{method: http.MethodGet, path: "/api/v1/auctions/" + id})
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	t.Run("categories", func(t *testing.T) {
		a := newTestAPI(t)
		a.auctions.On("ListCategories", mock.Anything).
			Return([]*auctions.Category{{ID: 1, Name: "Smartphones"}}, nil)

		w := a.do(request{method: http.MethodGet, path: "/api/v1/auctions/categories"})

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[{"categoryId":1,"name":"Smartphones"}]`, w.Body.String())
	})
}

func TestCreateAuction(t *testing.T) {
	t.Run("creates with the caller as seller", func(t *testing.T) {
		a := newTestAPI(t)
		a.auctions.On("CreateAuction", mock.Anything, mock.MatchedBy(func(cmd auctions.CreateAuctionCommand) bool {
			return cmd.SellerID == testUserID &&
				cmd.Title == "Bike" &&
				cmd.Reserve == nil &&
				cmd.CategoryID == 7 &&
				cmd.EndDate.Equal(time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC))
		})).Return(sampleAuction(), nil)

		w := a.do(request{
			method: http.MethodPost,
			path:   "/api/v1/auctions",
			token:  testToken,
			body:   `{"title":"Bike","description":"Road bike","categoryId":7,"endDate":"2030-01-01 12:00:00"}`,
		})

		require.Equal(t, http.StatusCreated, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, float64(3), body["auctionId"])
		assert.Equal(t, float64(1), body["reserve"])
	})

	t.Run("accepts RFC 3339 end dates", func(t *testing.T) {
		a := newTestAPI(t)
		a.auctions.On("CreateAuction", mock.Anything, mock.MatchedBy(func(cmd auctions.CreateAuctionCommand) bool {
			return cmd.EndDate.Equal(time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)) && *cmd.Reserve == 20
		})).Return(sampleAuction(), nil)

		w := a.do(request{
			method: http.MethodPost,
			path:   "/api/v1/auctions",
			token:  testToken,
			body:   `{"title":"Bike","description":"Road bike","categoryId":7,"reserve":20,"endDate":"2030-01-01T12:00:00+02:00"}`,
		})

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("requires login", func(t *testing.T) {
		a := newTestAPI(t)
		w := a.do(request{method: http.MethodPost, path: "/api/v1/auctions", body: `{}`})
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = a.do(request{method: http.MethodPost, path: "/api/v1/auctions", body: `{}`, token: "stale"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	badBodies := map[string]string{
		"unknown field":     `{"title":"Bike","description":"d","categoryId":7,"endDate":"2030-01-01 12:00:00","colour":"red"}`,
		"missing end date":  `{"title":"Bike","description":"d","categoryId":7}`,
		"missing category":  `{"title":"Bike","description":"d","endDate":"2030-01-01 12:00:00"}`,
		"garbled date":      `{"title":"Bike","description":"d","categoryId":7,"endDate":"next tuesday"}`,
		"fractional amount": `{"title":"Bike","description":"d","categoryId":7,"reserve":1.5,"endDate":"2030-01-01 12:00:00"}`,
		"not json":          `title=Bike`,
	}
	for name, body := range badBodies {
		t.Run(name, func(t *testing.T) {
			a := newTestAPI(t)
			w := a.do(request{method: http.MethodPost, path: "/api/v1/auctions", token: testToken, body: body})
			assert.Equal(t, http.StatusBadRequest, w.Code)
			a.auctions.AssertNotCalled(t, "CreateAuction", mock.Anything, mock.Anything)
		})
	}

	t.Run("past end date is a 400", func(t *testing.T) {
		a := newTestAPI(t)
		a.auctions.On("CreateAuction", mock.Anything, mock.Anything).Return(nil, auctions.ErrInvalidEndDate)

		w := a.do(request{
			method: http.MethodPost,
			path:   "/api/v1/auctions",
			token:  testToken,
			body:   `{"title":"Bike","description":"d","categoryId":7,"endDate":"2001-01-01 12:00:00"}`,
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateAndDeleteAuction(t *testing.T) {
	t.Run("partial update", func(t *testing.T) {
		a := newTestAPI(t)
		title := "Faster bike"
		a.auctions.On("UpdateAuction", mock.Anything, auctions.UpdateAuctionCommand{
			AuctionID:   3,
			RequesterID: testUserID,
			Patch:       auctions.AuctionPatch{Title: &title},
		}).Return(sampleAuction(), nil)

		w := a.do(request{method: http.MethodPatch, path: "/api/v1/auctions/3", token: testToken, body: `{"title":"Faster bike"}`})

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("locked auction is a 403", func(t *testing.T) {
		a := newTestAPI(t)
		a.auctions.On("UpdateAuction", mock.Anything, mock.Anything).Return(nil, auctions.ErrAuctionLocked)

		w := a.do(request{method: http.MethodPatch, path: "/api/v1/auctions/3", token: testToken, body: `{"title":"x"}`})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("delete by seller", func(t *testing.T) {
		a := newTestAPI(t)
		a.auctions.On("DeleteAuction", mock.Anything, auctions.DeleteAuctionCommand{AuctionID: 3, RequesterID: testUserID}).Return(nil)

		w := a.do(request{method: http.MethodDelete, path: "/api/v1/auctions/3", token: testToken})

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("delete by someone else", func(t *testing.T) {
		a := newTestAPI(t)
		a.auctions.On("DeleteAuction", mock.Anything, mock.Anything).Return(auctions.ErrNotSeller)

		w := a.do(request{method: http.MethodDelete, path: "/api/v1/auctions/3", token: testToken})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestBids(t *testing.T) {
	t.Run("lists bids", func(t *testing.T) {
		a := newTestAPI(t)
		at := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)
		a.bids.On("GetBids", mock.Anything, int64(3)).Return([]*bids.Bid{
			{ID: 2, AuctionID: 3, BidderID: 8, BidderFirstName: "Bea", BidderLastName: "Bidder", Amount: 60, CreatedAt: at},
		}, nil)

		w := a.do(request{method: http.MethodGet, path: "/api/v1/auctions/3/bids"})

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[{"bidderId":8,"amount":60,"firstName":"Bea","lastName":"Bidder","timestamp":"2030-01-01T09:00:00Z"}]`, w.Body.String())
	})

	t.Run("places a bid", func(t *testing.T) {
		a := newTestAPI(t)
		a.bids.On("PlaceBid", mock.Anything, bids.PlaceBidCommand{AuctionID: 3, BidderID: testUserID, Amount: 50}).
			Return(&bids.Bid{ID: 1, AuctionID: 3, BidderID: testUserID, Amount: 50}, nil)

		w := a.do(request{method: http.MethodPost, path: "/api/v1/auctions/3/bids", token: testToken, body: `{"amount":50}`})

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	rejections := []struct {
		err     error
		status  int
		message string
	}{
		{bids.ErrBidTooLow, http.StatusBadRequest, "Bid too low"},
		{bids.ErrSellerCannotBid, http.StatusForbidden, "Cannot bid on your own auction"},
		{bids.ErrAuctionClosed, http.StatusForbidden, "Auction closed"},
		{auctions.ErrAuctionNotFound, http.StatusNotFound, "Auction not found"},
	}
	for _, tc := range rejections {
		t.Run(tc.message, func(t *testing.T) {
			a := newTestAPI(t)
			a.bids.On("PlaceBid", mock.Anything, mock.Anything).Return(nil, tc.err)

			w := a.do(request{method: http.MethodPost, path: "/api/v1/auctions/3/bids", token: testToken, body: `{"amount":40}`})

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.message, errorMessage(t, w))
		})
	}

	t.Run("missing amount", func(t *testing.T) {
		a := newTestAPI(t)
		w := a.do(request{method: http.MethodPost, path: "/api/v1/auctions/3/bids", token: testToken, body: `{}`})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUsers(t *testing.T) {
	t.Run("register", func(t *testing.T) {
		a := newTestAPI(t)
		a.users.On("Register", mock.Anything, users.RegisterCommand{
			FirstName: "Bea", LastName: "Bidder", Email: "bea@example.com", Password: "secret",
		}).Return(int64(11), nil)

		w := a.do(request{method: http.MethodPost, path: "/api/v1/users/register",
			body: `{"firstName":"Bea","lastName":"Bidder","email":"bea@example.com","password":"secret"}`})

		require.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"userId":11}`, w.Body.String())
	})

	t.Run("register with a taken email", func(t *testing.T) {
		a := newTestAPI(t)
		a.users.On("Register", mock.Anything, mock.Anything).Return(int64(0), users.ErrEmailInUse)

		w := a.do(request{method: http.MethodPost, path: "/api/v1/users/register",
			body: `{"firstName":"Bea","lastName":"Bidder","email":"bea@example.com","password":"secret"}`})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Email already in-use", errorMessage(t, w))
	})

	t.Run("login", func(t *testing.T) {
		a := newTestAPI(t)
		a.users.On("Login", mock.Anything, "bea@example.com", "secret").
			Return(&users.LoginResult{UserID: 11, Token: "tok"}, nil)

		w := a.do(request{method: http.MethodPost, path: "/api/v1/users/login", body: `{"email":"bea@example.com","password":"secret"}`})

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"userId":11,"token":"tok"}`, w.Body.String())
	})

	t.Run("login failure", func(t *testing.T) {
		a := newTestAPI(t)
		a.users.On("Login", mock.Anything, mock.Anything, mock.Anything).Return(nil, users.ErrInvalidCredentials)

		w := a.do(request{method: http.MethodPost, path: "/api/v1/users/login", body: `{"email":"x@example.com","password":"nope"}`})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("logout", func(t *testing.T) {
		a := newTestAPI(t)
		a.users.On("Logout", mock.Anything, testUserID).Return(nil)

		w := a.do(request{method: http.MethodPost, path: "/api/v1/users/logout", token: testToken})

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("profile viewed anonymously", func(t *testing.T) {
		a := newTestAPI(t)
		a.users.On("GetUser", mock.Anything, int64(11), int64(0)).
			Return(&users.Profile{ID: 11, FirstName: "Bea", LastName: "Bidder"}, nil)

		w := a.do(request{method: http.MethodGet, path: "/api/v1/users/11"})

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"firstName":"Bea","lastName":"Bidder"}`, w.Body.String())
	})

	t.Run("profile viewed by owner", func(t *testing.T) {
		a := newTestAPI(t)
		email := "sam@example.com"
		a.users.On("GetUser", mock.Anything, testUserID, testUserID).
			Return(&users.Profile{ID: testUserID, FirstName: "Sam", LastName: "Seller", Email: &email}, nil)

		w := a.do(request{method: http.MethodGet, path: "/api/v1/users/7", token: testToken})

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"firstName":"Sam","lastName":"Seller","email":"sam@example.com"}`, w.Body.String())
	})

	t.Run("modify", func(t *testing.T) {
		a := newTestAPI(t)
		password, current := "new-secret", "old-secret"
		a.users.On("ModifyUser", mock.Anything, users.ModifyUserCommand{
			UserID:          testUserID,
			RequesterID:     testUserID,
			Patch:           users.UserPatch{Password: &password},
			CurrentPassword: &current,
		}).Return(nil)

		w := a.do(request{method: http.MethodPatch, path: "/api/v1/users/7", token: testToken,
			body: `{"password":"new-secret","currentPassword":"old-secret"}`})

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("modify someone else", func(t *testing.T) {
		a := newTestAPI(t)
		a.users.On("ModifyUser", mock.Anything, mock.Anything).Return(users.ErrForbidden)

		w := a.do(request{method: http.MethodPatch, path: "/api/v1/users/8", token: testToken, body: `{"firstName":"X"}`})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestImages(t *testing.T) {
	t.Run("first upload is a 201", func(t *testing.T) {
		a := newTestAPI(t)
		a.auctions.On("SetAuctionImage", mock.Anything, auctions.SetImageCommand{
			AuctionID: 3, RequesterID: testUserID, ContentType: "image/png", Data: []byte("png-bytes"),
		}).Return(true, nil)

		w := a.do(request{method: http.MethodPut, path: "/api/v1/auctions/3/image", token: testToken,
			body: "png-bytes", contentType: "image/png"})

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("replacement is a 200", func(t *testing.T) {
		a := newTestAPI(t)
		a.users.On("SetUserImage", mock.Anything, mock.Anything).Return(false, nil)

		w := a.do(request{method: http.MethodPut, path: "/api/v1/users/7/image", token: testToken,
			body: "gif-bytes", contentType: "image/gif"})

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unsupported type", func(t *testing.T) {
		a := newTestAPI(t)
		a.auctions.On("SetAuctionImage", mock.Anything, mock.Anything).Return(false, images.ErrUnsupportedImageType)

		w := a.do(request{method: http.MethodPut, path: "/api/v1/auctions/3/image", token: testToken,
			body: "text", contentType: "text/plain"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("download", func(t *testing.T) {
		a := newTestAPI(t)
		a.users.On("GetUserImage", mock.Anything, int64(7)).
			Return(&images.Image{Data: []byte("jpeg-bytes"), ContentType: "image/jpeg"}, nil)

		w := a.do(request{method: http.MethodGet, path: "/api/v1/users/7/image"})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
		assert.Equal(t, "jpeg-bytes", w.Body.String())
	})

	t.Run("delete missing image", func(t *testing.T) {
		a := newTestAPI(t)
		a.users.On("DeleteUserImage", mock.Anything, testUserID, testUserID).Return(images.ErrImageNotFound)

		w := a.do(request{method: http.MethodDelete, path: "/api/v1/users/7/image", token: testToken})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestInternalErrorsAreOpaque(t *testing.T) {
	a := newTestAPI(t)
	a.auctions.On("GetAuction", mock.Anything, int64(3)).Return(nil, errors.New("connection reset by peer"))

	w := a.do(request{method: http.MethodGet, path: "/api/v1/auctions/3"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal Server Error", errorMessage(t, w))
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ok := NewRouter("/api/v1", Services{Users: new(MockUserService)}, stubPinger{}, logger)
	w := httptest.NewRecorder()
	ok.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	down := NewRouter("/api/v1", Services{Users: new(MockUserService)}, stubPinger{err: errors.New("down")}, logger)
	w = httptest.NewRecorder()
	down.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
