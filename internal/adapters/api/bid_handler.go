package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/floroz/gavel-auctions/internal/domain/bids"
	"github.com/floroz/gavel-auctions/pkg/auth"
)

// BidService is the subset of bids.Service the HTTP layer uses.
type BidService interface {
	GetBids(ctx context.Context, auctionID int64) ([]*bids.Bid, error)
	PlaceBid(ctx context.Context, cmd bids.PlaceBidCommand) (*bids.Bid, error)
}

type BidHandler struct {
	svc    BidService
	logger *slog.Logger
}

func NewBidHandler(svc BidService, logger *slog.Logger) *BidHandler {
	return &BidHandler{svc: svc, logger: logger}
}

func (h *BidHandler) Register(r gin.IRoutes, requireLogin gin.HandlerFunc) {
	r.GET("/auctions/:id/bids", h.list)
	r.POST("/auctions/:id/bids", requireLogin, h.place)
}

func (h *BidHandler) list(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		badRequest(c, "Invalid auction id")
		return
	}
	list, err := h.svc.GetBids(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toBidResponses(list))
}

func (h *BidHandler) place(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		badRequest(c, "Invalid auction id")
		return
	}
	var req placeBidRequest
	if err := bindJSON(c, &req); err != nil {
		badRequest(c, "Invalid bid")
		return
	}
	userID, _ := auth.GetUserID(c.Request.Context())

	_, err := h.svc.PlaceBid(c.Request.Context(), bids.PlaceBidCommand{
		AuctionID: id,
		BidderID:  userID,
		Amount:    *req.Amount,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusCreated)
}
