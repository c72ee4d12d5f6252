package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/floroz/gavel-auctions/internal/domain/auctions"
	"github.com/floroz/gavel-auctions/internal/domain/bids"
	"github.com/floroz/gavel-auctions/internal/domain/images"
	"github.com/floroz/gavel-auctions/internal/domain/users"
)

const internalErrorMessage = "Internal Server Error"

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

type apiError struct {
	status  int
	message string
}

// errorTable maps domain sentinels to a status code and a stable message.
var errorTable = []struct {
	err error
	apiError
}{
	{auctions.ErrAuctionNotFound, apiError{http.StatusNotFound, "Auction not found"}},
	{users.ErrUserNotFound, apiError{http.StatusNotFound, "User not found"}},
	{images.ErrImageNotFound, apiError{http.StatusNotFound, "Image not found"}},

	{auctions.ErrInvalidInput, apiError{http.StatusBadRequest, "Invalid auction data"}},
	{auctions.ErrUnknownCategory, apiError{http.StatusBadRequest, "Unknown category"}},
	{auctions.ErrInvalidEndDate, apiError{http.StatusBadRequest, "End date must be in the future"}},
	{auctions.ErrInvalidReserve, apiError{http.StatusBadRequest, "Reserve must be at least 1"}},
	{auctions.ErrInvalidSortBy, apiError{http.StatusBadRequest, "Invalid sortBy"}},
	{bids.ErrBidTooLow, apiError{http.StatusBadRequest, "Bid too low"}},
	{bids.ErrInvalidBidAmount, apiError{http.StatusBadRequest, "Bid amount must be positive"}},
	{users.ErrEmailInUse, apiError{http.StatusBadRequest, "Email already in-use"}},
	{users.ErrInvalidCredentials, apiError{http.StatusBadRequest, "Incorrect email/password"}},
	{users.ErrInvalidInput, apiError{http.StatusBadRequest, "Invalid user data"}},
	{users.ErrNoChanges, apiError{http.StatusBadRequest, "No changes supplied"}},
	{images.ErrUnsupportedImageType, apiError{http.StatusBadRequest, "Image must be image/jpeg, image/png or image/gif"}},

	{bids.ErrSellerCannotBid, apiError{http.StatusForbidden, "Cannot bid on your own auction"}},
	{bids.ErrAuctionClosed, apiError{http.StatusForbidden, "Auction closed"}},
	{auctions.ErrAuctionLocked, apiError{http.StatusForbidden, "Cannot change an auction that has bids"}},
	{auctions.ErrNotSeller, apiError{http.StatusForbidden, "Only the seller can change this auction"}},
	{users.ErrForbidden, apiError{http.StatusForbidden, "Cannot change another user's details"}},
	{users.ErrIncorrectPassword, apiError{http.StatusForbidden, "Incorrect current password"}},
}

// mapError translates a service error into a status code and message.
// Unknown errors become an opaque 500.
func mapError(err error) (int, string) {
	for _, e := range errorTable {
		if errors.Is(err, e.err) {
			return e.status, e.message
		}
	}
	return http.StatusInternalServerError, internalErrorMessage
}

// writeError aborts the request with the mapped error. 500s are logged.
func writeError(c *gin.Context, logger *slog.Logger, err error) {
	status, message := mapError(err)
	if status == http.StatusInternalServerError {
		logger.ErrorContext(c.Request.Context(), "Request failed",
			"method", c.Request.Method,
			"route", c.FullPath(),
			"error", err,
		)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}

func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: message})
}
